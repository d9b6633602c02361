package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/pagebridge/internal/platform/envutil"
	"github.com/yungbote/pagebridge/internal/platform/logger"
)

type Mode string

const (
	ModeLocal       Mode = "local"
	ModeGCS         Mode = "gcs"
	ModeGCSEmulator Mode = "gcs_emulator"
	ModeS3          Mode = "s3"
)

// URLResolver maps a stored file key (e.g. "documents/report.pdf") to a URL
// clients can download it from. Relative results are resolved against the
// request's host by the caller.
type URLResolver interface {
	URL(ctx context.Context, key string) (string, error)
	Mode() Mode
}

type Config struct {
	Mode Mode

	// local
	MediaURL string

	// gcs / gcs_emulator
	GCSBucket     string
	GCSCDNDomain  string
	GCSEmulator   string
	PublicBaseURL string
	SignURLs      bool

	// s3
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool

	SignedURLTTL time.Duration
}

func ConfigFromEnv() Config {
	return Config{
		Mode:          Mode(strings.ToLower(envutil.String("MEDIA_STORAGE_MODE", string(ModeLocal)))),
		MediaURL:      envutil.String("MEDIA_URL", "/media/"),
		GCSBucket:     envutil.String("MEDIA_GCS_BUCKET_NAME", ""),
		GCSCDNDomain:  envutil.String("MEDIA_CDN_DOMAIN", ""),
		GCSEmulator:   envutil.String("STORAGE_EMULATOR_HOST", ""),
		PublicBaseURL: strings.TrimRight(envutil.String("OBJECT_STORAGE_PUBLIC_BASE_URL", ""), "/"),
		SignURLs:      envutil.Bool("MEDIA_SIGN_URLS", false),
		S3Endpoint:    envutil.String("S3_ENDPOINT", ""),
		S3Region:      envutil.String("S3_REGION", "us-east-1"),
		S3AccessKey:   envutil.String("S3_ACCESS_KEY", ""),
		S3SecretKey:   envutil.String("S3_SECRET_KEY", ""),
		S3Bucket:      envutil.String("S3_BUCKET", ""),
		S3UseSSL:      envutil.Bool("S3_USE_SSL", false),
		SignedURLTTL:  envutil.Duration("MEDIA_SIGNED_URL_TTL", 15*time.Minute),
	}
}

func New(ctx context.Context, cfg Config, baseLog *logger.Logger) (URLResolver, error) {
	serviceLog := baseLog.With("service", "MediaStorage")
	var (
		r   URLResolver
		err error
	)
	switch cfg.Mode {
	case "", ModeLocal:
		r = NewLocal(cfg.MediaURL)
	case ModeGCS, ModeGCSEmulator:
		r, err = NewGCS(ctx, cfg)
	case ModeS3:
		r, err = NewS3(cfg)
	default:
		return nil, fmt.Errorf("unknown MEDIA_STORAGE_MODE %q", cfg.Mode)
	}
	if err != nil {
		return nil, err
	}
	serviceLog.Info("media storage initialized", "mode", r.Mode())
	return r, nil
}

func cleanKey(key string) string {
	return strings.TrimLeft(strings.TrimSpace(key), "/")
}
