package session

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/madhurinidan/clinic-web/pkg/jwt"
	"github.com/madhurinidan/clinic-web/pkg/logger"
	"go.uber.org/zap"
)

// CookieName is the cookie holding the signed session
const CookieName = "clinic_session"

// CookieBackend keeps the whole session inside a signed cookie
type CookieBackend struct {
	tokens  *jwt.TokenManager
	options CookieOptions
}

// NewCookieBackend creates a cookie backend signing with tokens
func NewCookieBackend(tokens *jwt.TokenManager, options CookieOptions) *CookieBackend {
	return &CookieBackend{tokens: tokens, options: options}
}

func (b *CookieBackend) Name() string {
	return "cookie"
}

func (b *CookieBackend) Load(c *gin.Context) map[string]string {
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return map[string]string{}
	}

	values, err := b.tokens.Parse(raw)
	if err != nil {
		if !errors.Is(err, jwt.ErrExpiredToken) {
			logger.Warn("Discarding invalid session cookie",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
		}
		b.options.clear(c, CookieName)
		return map[string]string{}
	}
	if values == nil {
		values = map[string]string{}
	}
	return values
}

func (b *CookieBackend) Save(c *gin.Context, values map[string]string) error {
	signed, err := b.tokens.Sign(values)
	if err != nil {
		return err
	}
	b.options.set(c, CookieName, signed)
	return nil
}

func (b *CookieBackend) Remove(c *gin.Context) error {
	b.options.clear(c, CookieName)
	return nil
}
