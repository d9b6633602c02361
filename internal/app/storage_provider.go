package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yungbote/pagebridge/internal/platform/logger"
	"github.com/yungbote/pagebridge/internal/platform/storage"
)

var newMediaStorage = storage.New

type StorageBootstrapErrorCode string

const (
	StorageBootstrapErrorInvalidMode   StorageBootstrapErrorCode = "invalid_mode"
	StorageBootstrapErrorMissingConfig StorageBootstrapErrorCode = "missing_config"
	StorageBootstrapErrorConnectFailed StorageBootstrapErrorCode = "connect_failed"
)

type StorageBootstrapError struct {
	Code  StorageBootstrapErrorCode
	Mode  string
	Cause error
}

func (e *StorageBootstrapError) Error() string {
	if e == nil {
		return "media storage bootstrap failed"
	}
	return fmt.Sprintf("media storage bootstrap failed (code=%s mode=%q): %v", e.Code, e.Mode, e.Cause)
}

func (e *StorageBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func resolveMediaStorage(ctx context.Context, log *logger.Logger, cfg storage.Config) (storage.URLResolver, error) {
	switch cfg.Mode {
	case "", storage.ModeLocal, storage.ModeGCS, storage.ModeGCSEmulator, storage.ModeS3:
	default:
		err := &StorageBootstrapError{
			Code:  StorageBootstrapErrorInvalidMode,
			Mode:  string(cfg.Mode),
			Cause: fmt.Errorf("unsupported media storage mode %q", cfg.Mode),
		}
		log.Error("Media storage selection failed", "mode", cfg.Mode, "error_code", err.Code, "error", err)
		return nil, err
	}

	log.Info("Selecting media storage", "mode", cfg.Mode, "emulator_host", cfg.GCSEmulator, "s3_endpoint", cfg.S3Endpoint)
	r, err := newMediaStorage(ctx, cfg, log)
	if err != nil {
		classified := classifyStorageBootstrapError(cfg, err)
		log.Error("Media storage bootstrap failed", "mode", cfg.Mode, "error_code", storageBootstrapErrorCode(classified), "error", classified)
		return nil, classified
	}
	return r, nil
}

// classifyStorageBootstrapError separates configuration mistakes from
// failures to reach the backend.
func classifyStorageBootstrapError(cfg storage.Config, err error) error {
	code := StorageBootstrapErrorConnectFailed
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unknown media_storage_mode"):
		code = StorageBootstrapErrorInvalidMode
	case strings.Contains(msg, "missing env var"),
		strings.Contains(msg, "requires"),
		strings.Contains(msg, "is required"),
		strings.Contains(msg, "are required"):
		code = StorageBootstrapErrorMissingConfig
	}
	return &StorageBootstrapError{Code: code, Mode: string(cfg.Mode), Cause: err}
}

func storageBootstrapErrorCode(err error) StorageBootstrapErrorCode {
	var bootstrapErr *StorageBootstrapError
	if errors.As(err, &bootstrapErr) && bootstrapErr.Code != "" {
		return bootstrapErr.Code
	}
	return StorageBootstrapErrorConnectFailed
}
