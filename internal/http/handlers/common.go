package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/pagebridge/internal/domain"
	pkgerrors "github.com/yungbote/pagebridge/internal/pkg/errors"
	"github.com/yungbote/pagebridge/internal/services"
)

func requestURLs(c *gin.Context, apiBase string) services.RequestURLs {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if p := strings.TrimSpace(c.GetHeader("X-Forwarded-Proto")); p != "" {
		scheme = strings.ToLower(strings.Split(p, ",")[0])
	}
	origin := scheme + "://" + c.Request.Host
	base := "/" + strings.Trim(apiBase, "/")
	if base == "/" {
		base = ""
	}
	return services.RequestURLs{Origin: origin, APIBase: origin + base}
}

func resolveSite(c *gin.Context, sites services.SiteService) (*types.Site, error) {
	return sites.Resolve(c.Request.Context(), c.Query("site"), c.Request.Host)
}

func queryInt(c *gin.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", pkgerrors.ErrInvalidArgument, name)
	}
	return n, nil
}

func pathID(c *gin.Context, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: %s", pkgerrors.ErrNotFound, name)
	}
	return uint(n), nil
}
