package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	fieldruntime "driveyard/internal/adapter/field/runtime"
	httpadapter "driveyard/internal/adapter/http"
	metricsinmem "driveyard/internal/adapter/metrics/inmemory"
	gormrepo "driveyard/internal/adapter/repo/gorm"
	"driveyard/internal/adapter/repo/memory"
	"driveyard/internal/app/auth"
	"driveyard/internal/app/observe"
	"driveyard/internal/app/ports"
	"driveyard/internal/app/replay"
	"driveyard/internal/app/status"
	"driveyard/internal/app/tick"
	"driveyard/internal/domain/drive"
	"driveyard/internal/domain/grid"

	"github.com/cloudwego/hertz/pkg/app/server"
)

type repos struct {
	state   ports.DriveStateRepository
	ticks   ports.TickExecutionRepository
	events  ports.EventRepository
	creds   ports.DriveCredentialRepository
	layouts ports.FieldLayoutRepository
	tx      ports.TxManager
}

func main() {
	r := mustBuildRepos()
	provider := mustBuildFieldProvider(r.layouts)
	kpiRecorder := metricsinmem.NewRecorder()

	planner := drive.Planner{MaxExpansions: intEnv("PLANNER_MAX_EXPANSIONS", drive.DefaultMaxExpansions)}
	agents := drive.NewRegistry(planner)

	seedDemoDrive(r.state)

	h := httpadapter.Handler{
		RegisterUC: auth.RegisterUseCase{
			Credentials: r.creds,
			StateRepo:   r.state,
			TxManager:   r.tx,
			Now:         time.Now,
		},
		AuthUC: auth.VerifyUseCase{Credentials: r.creds},
		TickUC: tick.UseCase{
			TxManager: r.tx,
			StateRepo: r.state,
			TickRepo:  r.ticks,
			EventRepo: r.events,
			Field:     provider,
			Metrics:   kpiRecorder,
			Agents:    agents,
			Now:       time.Now,
		},
		ObserveUC: observe.UseCase{StateRepo: r.state, Field: provider},
		StatusUC:  status.UseCase{StateRepo: r.state, Plans: agents},
		ReplayUC:  replay.UseCase{Events: r.events},
		KPI:       kpiRecorder,
	}

	addr := strings.TrimSpace(os.Getenv("DRIVEYARD_ADDR"))
	if addr == "" {
		addr = ":8080"
	}
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("driveyard server listening on %s (demo drive: demo-drive)", addr)
	s.Spin()
}

func mustBuildRepos() repos {
	dsn := strings.TrimSpace(os.Getenv("DRIVEYARD_DB_DSN"))
	if dsn == "" {
		log.Println("DRIVEYARD_DB_DSN not set, using in-memory store")
		store := memory.NewStore()
		return repos{
			state:   memory.NewDriveStateRepo(store),
			ticks:   memory.NewTickExecutionRepo(store),
			events:  memory.NewEventRepo(store),
			creds:   memory.NewDriveCredentialRepo(store),
			layouts: memory.NewFieldLayoutRepo(store),
			tx:      memory.NewTxManager(store),
		}
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if dir := strings.TrimSpace(os.Getenv("DRIVEYARD_MIGRATIONS_DIR")); dir != "" {
		if err := gormrepo.ApplyMigrations(context.Background(), db, dir); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
	}
	return repos{
		state:   gormrepo.NewDriveStateRepo(db),
		ticks:   gormrepo.NewTickExecutionRepo(db),
		events:  gormrepo.NewEventRepo(db),
		creds:   gormrepo.NewDriveCredentialRepo(db),
		layouts: gormrepo.NewFieldLayoutRepo(db),
		tx:      gormrepo.NewTxManager(db),
	}
}

func mustBuildFieldProvider(layouts ports.FieldLayoutRepository) ports.FieldProvider {
	layout := fieldruntime.DefaultLayout()
	if path := strings.TrimSpace(os.Getenv("FIELD_LAYOUT_PATH")); path != "" {
		loaded, err := fieldruntime.LoadLayout(path)
		if err != nil {
			log.Fatalf("load field layout: %v", err)
		}
		layout = loaded
	}
	provider, err := fieldruntime.NewProvider(fieldruntime.Config{
		Layout:      layout,
		LayoutStore: layouts,
	})
	if err != nil {
		log.Fatalf("build field provider: %v", err)
	}
	if err := provider.EnsureLayout(context.Background()); err != nil {
		log.Fatalf("ensure field layout: %v", err)
	}
	return provider
}

func seedDemoDrive(stateRepo ports.DriveStateRepository) {
	_, err := stateRepo.GetByDriveID(context.Background(), "demo-drive")
	if err == nil {
		return
	}
	if !errors.Is(err, ports.ErrNotFound) {
		log.Fatalf("load demo drive: %v (did you run SQL migrations manually?)", err)
	}
	seed := drive.StateAggregate{
		DriveID:   "demo-drive",
		Mode:      drive.ModeBasic,
		Pos:       grid.State{X: 0, Y: 0},
		Version:   1,
		UpdatedAt: time.Now().UTC(),
	}
	if saveErr := stateRepo.SaveWithVersion(context.Background(), seed, 0); saveErr != nil {
		log.Fatalf("seed demo drive: %v (did you run SQL migrations manually?)", saveErr)
	}
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
