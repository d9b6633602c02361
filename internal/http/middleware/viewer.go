package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/pagebridge/internal/platform/ctxutil"
	"github.com/yungbote/pagebridge/internal/platform/logger"
)

const headerPagePassword = "X-Page-Password"

// ViewerClaims are the bearer token claims the API understands.
type ViewerClaims struct {
	Groups []string `json:"groups,omitempty"`
	jwt.RegisteredClaims
}

type ViewerMiddleware struct {
	log    *logger.Logger
	secret []byte
}

// NewViewerMiddleware verifies optional HS256 bearer tokens. With an empty
// secret every request is anonymous.
func NewViewerMiddleware(log *logger.Logger, secret string) *ViewerMiddleware {
	return &ViewerMiddleware{log: log.With("middleware", "ViewerMiddleware"), secret: []byte(secret)}
}

// AttachViewer never requires auth: anonymous requests simply see fewer
// pages. A token that is present but invalid is rejected.
func (vm *ViewerMiddleware) AttachViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := &ctxutil.Viewer{}
		if pw := c.GetHeader(headerPagePassword); pw != "" {
			viewer.Passwords = append(viewer.Passwords, pw)
		}
		if token := bearerToken(c); token != "" && len(vm.secret) > 0 {
			claims, err := vm.parse(token)
			if err != nil {
				vm.log.Debug("rejecting bearer token", "error", err)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": gin.H{"message": "invalid or expired token", "code": "unauthorized"},
				})
				return
			}
			viewer.Subject = claims.Subject
			viewer.Groups = claims.Groups
		}
		c.Request = c.Request.WithContext(ctxutil.WithViewer(c.Request.Context(), viewer))
		c.Next()
	}
}

func (vm *ViewerMiddleware) parse(token string) (*ViewerClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &ViewerClaims{}, func(t *jwt.Token) (interface{}, error) {
		return vm.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := parsed.Claims.(*ViewerClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
