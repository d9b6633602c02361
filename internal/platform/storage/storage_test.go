package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/yungbote/pagebridge/internal/platform/logger"
)

func TestLocalURL(t *testing.T) {
	r := NewLocal("https://cdn.example.com/media")
	got, err := r.URL(context.Background(), "/documents/report.pdf")
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if got != "https://cdn.example.com/media/documents/report.pdf" {
		t.Fatalf("URL: got=%q", got)
	}
	if r.Mode() != ModeLocal {
		t.Fatalf("Mode: got=%q", r.Mode())
	}
}

func TestPublicGCSURL(t *testing.T) {
	if got := publicGCSURL(ModeGCS, "media", "images/cat.jpg", "", ""); got != "https://storage.googleapis.com/media/images/cat.jpg" {
		t.Fatalf("default: got=%q", got)
	}
	if got := publicGCSURL(ModeGCS, "media", "images/cat.jpg", "http://localhost:4443", ""); got != "http://localhost:4443/media/images/cat.jpg" {
		t.Fatalf("base url: got=%q", got)
	}
	want := "http://fake-gcs:4443/storage/v1/b/media/o/images%2Fcat.jpg?alt=media"
	if got := publicGCSURL(ModeGCSEmulator, "media", "images/cat.jpg", "", "http://fake-gcs:4443"); got != want {
		t.Fatalf("emulator: got=%q want=%q", got, want)
	}
}

func TestGCSEmulatorResolver(t *testing.T) {
	t.Setenv("STORAGE_EMULATOR_HOST", "")
	r, err := New(context.Background(), Config{
		Mode:        ModeGCSEmulator,
		GCSBucket:   "media",
		GCSEmulator: "http://fake-gcs:4443/",
	}, logger.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := r.URL(context.Background(), "documents/a.pdf")
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if got != "http://fake-gcs:4443/storage/v1/b/media/o/documents%2Fa.pdf?alt=media" {
		t.Fatalf("URL: got=%q", got)
	}
}

func TestGCSCDN(t *testing.T) {
	g := &gcsResolver{mode: ModeGCS, bucket: "media", cdnDomain: "cdn.example.com"}
	got, _ := g.URL(context.Background(), "/a/b.png")
	if got != "https://cdn.example.com/a/b.png" {
		t.Fatalf("cdn: got=%q", got)
	}
}

func TestS3Presign(t *testing.T) {
	r, err := New(context.Background(), Config{
		Mode:         ModeS3,
		S3Endpoint:   "localhost:9000",
		S3Region:     "us-east-1",
		S3AccessKey:  "minio",
		S3SecretKey:  "minio123",
		S3Bucket:     "media",
		SignedURLTTL: time.Minute,
	}, logger.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := r.URL(context.Background(), "documents/report.pdf")
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if !strings.HasPrefix(got, "http://localhost:9000/media/documents/report.pdf?") || !strings.Contains(got, "X-Amz-Signature=") {
		t.Fatalf("presigned URL: got=%q", got)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cases := []Config{
		{Mode: "ftp"},
		{Mode: ModeS3},
		{Mode: ModeGCS},
		{Mode: ModeGCSEmulator, GCSBucket: "media"},
	}
	for _, c := range cases {
		if _, err := New(context.Background(), c, logger.Nop()); err == nil {
			t.Fatalf("expected error for %+v", c)
		}
	}
}
