package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"driveyard/internal/app/ports"
	"driveyard/internal/domain/drive"
	"driveyard/internal/domain/grid"
)

const (
	CredentialStatusActive = "active"
)

var (
	ErrInvalidRequest     = errors.New("invalid auth request")
	ErrInvalidCredentials = errors.New("invalid drive credentials")
)

type RegisterRequest struct {
	Mode  string
	Start *grid.State
}

type RegisterResponse struct {
	DriveID   string `json:"drive_id"`
	DriveKey  string `json:"drive_key"`
	SessionID string `json:"session_id"`
	Mode      string `json:"mode"`
	IssuedAt  string `json:"issued_at"`
}

type VerifyRequest struct {
	DriveID  string
	DriveKey string
}

type RegisterUseCase struct {
	Credentials ports.DriveCredentialRepository
	StateRepo   ports.DriveStateRepository
	TxManager   ports.TxManager
	Now         func() time.Time
}

type VerifyUseCase struct {
	Credentials ports.DriveCredentialRepository
}

func (u RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	if u.Credentials == nil || u.StateRepo == nil || u.TxManager == nil {
		return RegisterResponse{}, ErrInvalidRequest
	}
	mode, err := parseMode(req.Mode)
	if err != nil {
		return RegisterResponse{}, err
	}
	start := grid.State{}
	if req.Start != nil {
		start = *req.Start
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn().UTC()

	for i := 0; i < 3; i++ {
		driveID, err := newDriveID(now)
		if err != nil {
			return RegisterResponse{}, err
		}
		driveKey, err := randomToken(32)
		if err != nil {
			return RegisterResponse{}, err
		}
		salt, err := randomBytes(16)
		if err != nil {
			return RegisterResponse{}, err
		}
		hash := credentialHash(salt, driveKey)
		sessionID := uuid.NewString()

		err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
			if err := u.Credentials.Create(txCtx, ports.DriveCredentialRecord{
				DriveID:   driveID,
				KeySalt:   salt,
				KeyHash:   hash,
				Status:    CredentialStatusActive,
				CreatedAt: now,
			}); err != nil {
				return err
			}
			seed := drive.StateAggregate{
				DriveID:   driveID,
				SessionID: sessionID,
				Mode:      mode,
				Pos:       start,
				Tick:      0,
				Version:   1,
				UpdatedAt: now,
			}
			return u.StateRepo.SaveWithVersion(txCtx, seed, 0)
		})
		if errors.Is(err, ports.ErrConflict) {
			continue
		}
		if err != nil {
			return RegisterResponse{}, err
		}
		return RegisterResponse{
			DriveID:   driveID,
			DriveKey:  driveKey,
			SessionID: sessionID,
			Mode:      string(mode),
			IssuedAt:  now.Format(time.RFC3339),
		}, nil
	}

	return RegisterResponse{}, ports.ErrConflict
}

func (u VerifyUseCase) Execute(ctx context.Context, req VerifyRequest) error {
	req.DriveID = strings.TrimSpace(req.DriveID)
	req.DriveKey = strings.TrimSpace(req.DriveKey)
	if req.DriveID == "" || req.DriveKey == "" || u.Credentials == nil {
		return ErrInvalidRequest
	}

	cred, err := u.Credentials.GetByDriveID(ctx, req.DriveID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if cred.Status != CredentialStatusActive {
		return ErrInvalidCredentials
	}

	got := credentialHash(cred.KeySalt, req.DriveKey)
	if subtle.ConstantTimeCompare(got, cred.KeyHash) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

func parseMode(raw string) (drive.Mode, error) {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "", string(drive.ModeBasic):
		return drive.ModeBasic, nil
	case string(drive.ModeAdvanced):
		return drive.ModeAdvanced, nil
	default:
		return "", ErrInvalidRequest
	}
}

func credentialHash(salt []byte, key string) []byte {
	b := make([]byte, 0, len(salt)+len(key))
	b = append(b, salt...)
	b = append(b, key...)
	sum := sha256.Sum256(b)
	return sum[:]
}

func newDriveID(now time.Time) (string, error) {
	randPart, err := randomToken(9)
	if err != nil {
		return "", err
	}
	return "drv_" + now.Format("20060102") + "_" + randPart, nil
}

func randomToken(n int) (string, error) {
	b, err := randomBytes(n)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
