package storage

import (
	"context"
	"strings"
)

type local struct {
	mediaURL string
}

// NewLocal serves files from a media URL prefix, absolute or site-relative.
func NewLocal(mediaURL string) URLResolver {
	mediaURL = strings.TrimSpace(mediaURL)
	if mediaURL == "" {
		mediaURL = "/media/"
	}
	if !strings.HasSuffix(mediaURL, "/") {
		mediaURL += "/"
	}
	return &local{mediaURL: mediaURL}
}

func (l *local) Mode() Mode { return ModeLocal }

func (l *local) URL(_ context.Context, key string) (string, error) {
	return l.mediaURL + cleanKey(key), nil
}
