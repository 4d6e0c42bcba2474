package webserver

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const emailContextKey = "auth-email"

// TokenExpiry is the lifetime of issued bearer tokens.
const TokenExpiry = 24 * time.Hour

// TokenClaims is the bearer token payload: an email identity claim plus the
// registered expiry.
type TokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// IssueToken mints an HS256 bearer token carrying the email claim.
func IssueToken(email, secret string, ttl time.Duration) (string, error) {
	claims := &TokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// EmailFromContext returns the verified email claim set by BearerAuth, or ""
// on unauthenticated routes.
func EmailFromContext(c echo.Context) string {
	email, _ := c.Get(emailContextKey).(string)
	return email
}

// BearerAuth verifies the Authorization bearer token. A missing header denies
// with 401; a malformed, badly signed or expired token denies with 403. On
// success the email claim is stored on the request context.
func (s *WebServer) BearerAuth() echo.MiddlewareFunc {
	secret := s.cfg.Web.Secret
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(TokenClaims)
		},
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			if claims, ok := token.Claims.(*TokenClaims); ok {
				c.Set(emailContextKey, claims.Email)
			}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"code":    "UNAUTHORIZED",
					"message": "Missing authorization header",
				})
			}
			return c.JSON(http.StatusForbidden, echo.Map{
				"code":    "FORBIDDEN",
				"message": "Invalid or expired token",
			})
		},
	})
}
