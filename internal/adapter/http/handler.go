package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"driveyard/internal/app/auth"
	"driveyard/internal/app/observe"
	"driveyard/internal/app/ports"
	"driveyard/internal/app/replay"
	"driveyard/internal/app/status"
	"driveyard/internal/app/tick"
	"driveyard/internal/domain/field"
	"driveyard/internal/domain/grid"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const driveIDHeader = "X-Drive-ID"
const driveKeyHeader = "X-Drive-Key"

type Handler struct {
	RegisterUC auth.RegisterUseCase
	AuthUC     auth.VerifyUseCase
	TickUC     tick.UseCase
	ObserveUC  observe.UseCase
	StatusUC   status.UseCase
	ReplayUC   replay.UseCase
	KPI        kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	drv := s.Group("/api/drive")
	drv.POST("/register", h.register)
	drv.POST("/tick", h.tick)
	drv.POST("/observe", h.observe)
	drv.POST("/status", h.status)
	drv.GET("/replay", h.replay)

	s.GET("/ops/kpi", h.kpi)
}

type registerRequest struct {
	Mode  string      `json:"mode,omitempty"`
	Start *grid.State `json:"start,omitempty"`
}

type tickRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
}

func (h Handler) register(c context.Context, ctx *app.RequestContext) {
	var body registerRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.RegisterUC.Execute(c, auth.RegisterRequest{
		Mode:  body.Mode,
		Start: body.Start,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) tick(c context.Context, ctx *app.RequestContext) {
	driveID, err := h.requireAuthenticatedDrive(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var body tickRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.TickUC.Execute(c, tick.Request{
		DriveID:        driveID,
		IdempotencyKey: body.IdempotencyKey,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) observe(c context.Context, ctx *app.RequestContext) {
	driveID, err := h.requireAuthenticatedDrive(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	resp, err := h.ObserveUC.Execute(c, observe.Request{DriveID: driveID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	driveID, err := h.requireAuthenticatedDrive(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	resp, err := h.StatusUC.Execute(c, status.Request{DriveID: driveID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	driveID, err := h.requireAuthenticatedDrive(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	occurredFrom, _ := strconv.ParseInt(string(ctx.Query("occurred_from")), 10, 64)
	occurredTo, _ := strconv.ParseInt(string(ctx.Query("occurred_to")), 10, 64)
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		DriveID:      driveID,
		Limit:        limit,
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

var ErrMissingDriveIDHeader = errors.New("missing x-drive-id header")
var ErrMissingDriveKeyHeader = errors.New("missing x-drive-key header")
var ErrMissingDriveCredentials = errors.New("missing drive credentials")

func (h Handler) requireAuthenticatedDrive(c context.Context, ctx *app.RequestContext) (string, error) {
	driveID := strings.TrimSpace(string(ctx.GetHeader(driveIDHeader)))
	driveKey := strings.TrimSpace(string(ctx.GetHeader(driveKeyHeader)))
	if driveID == "" && driveKey == "" {
		return "", ErrMissingDriveCredentials
	}
	if driveID == "" {
		return "", ErrMissingDriveIDHeader
	}
	if driveKey == "" {
		return "", ErrMissingDriveKeyHeader
	}
	if err := h.AuthUC.Execute(c, auth.VerifyRequest{
		DriveID:  driveID,
		DriveKey: driveKey,
	}); err != nil {
		return "", err
	}
	return driveID, nil
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingDriveCredentials):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_drive_credentials", err.Error())
	case errors.Is(err, ErrMissingDriveIDHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_drive_id", err.Error())
	case errors.Is(err, ErrMissingDriveKeyHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_drive_key", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErrorBody(ctx, consts.StatusUnauthorized, "invalid_drive_credentials", err.Error())
	case errors.Is(err, tick.ErrInvalidRequest),
		errors.Is(err, auth.ErrInvalidRequest),
		errors.Is(err, observe.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest),
		errors.Is(err, field.ErrInvalidLayout):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
