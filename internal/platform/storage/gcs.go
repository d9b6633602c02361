package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type gcsResolver struct {
	client    *gcs.Client
	mode      Mode
	bucket    string
	cdnDomain string
	emulator  string
	baseURL   string
	sign      bool
	ttl       time.Duration
}

func NewGCS(ctx context.Context, cfg Config) (URLResolver, error) {
	if strings.TrimSpace(cfg.GCSBucket) == "" {
		return nil, fmt.Errorf("missing env var MEDIA_GCS_BUCKET_NAME")
	}
	var opts []option.ClientOption
	emulator := strings.TrimRight(strings.TrimSpace(cfg.GCSEmulator), "/")
	if cfg.Mode == ModeGCSEmulator {
		if emulator == "" {
			return nil, fmt.Errorf("gcs_emulator mode requires STORAGE_EMULATOR_HOST")
		}
		_ = os.Setenv("STORAGE_EMULATOR_HOST", emulator)
		opts = append(opts, option.WithoutAuthentication())
	} else {
		opts = append(opts, clientOptionsFromEnv()...)
		opts = append(opts, option.WithScopes(gcs.ScopeReadOnly))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &gcsResolver{
		client:    client,
		mode:      cfg.Mode,
		bucket:    cfg.GCSBucket,
		cdnDomain: strings.TrimSpace(cfg.GCSCDNDomain),
		emulator:  emulator,
		baseURL:   strings.TrimRight(cfg.PublicBaseURL, "/"),
		sign:      cfg.SignURLs && cfg.Mode == ModeGCS,
		ttl:       cfg.SignedURLTTL,
	}, nil
}

func clientOptionsFromEnv() []option.ClientOption {
	creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}

func (g *gcsResolver) Mode() Mode { return g.mode }

func (g *gcsResolver) URL(_ context.Context, key string) (string, error) {
	key = cleanKey(key)
	if g.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", g.cdnDomain, key), nil
	}
	if g.sign {
		ttl := g.ttl
		if ttl <= 0 {
			ttl = 15 * time.Minute
		}
		u, err := g.client.Bucket(g.bucket).SignedURL(key, &gcs.SignedURLOptions{
			Method:  "GET",
			Expires: time.Now().Add(ttl),
			Scheme:  gcs.SigningSchemeV4,
		})
		if err != nil {
			return "", fmt.Errorf("sign %s: %w", key, err)
		}
		return u, nil
	}
	return publicGCSURL(g.mode, g.bucket, key, g.baseURL, g.emulator), nil
}

func publicGCSURL(mode Mode, bucket, key, baseURL, emulator string) string {
	if mode == ModeGCSEmulator {
		base := baseURL
		if base == "" {
			base = emulator
		}
		return fmt.Sprintf("%s/storage/v1/b/%s/o/%s?alt=media", base, url.PathEscape(bucket), url.PathEscape(key))
	}
	if baseURL != "" {
		return fmt.Sprintf("%s/%s/%s", baseURL, bucket, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, key)
}
