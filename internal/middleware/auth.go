package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/klsociety/governance-records-api/internal/authz"
	"github.com/klsociety/governance-records-api/internal/constants"
	apierrors "github.com/klsociety/governance-records-api/internal/errors"
	"github.com/klsociety/governance-records-api/internal/models"
)

// TokenTTL is the lifetime of issued bearer tokens.
const TokenTTL = 24 * time.Hour

// Claims is the JWT claims structure carried by bearer credentials.
type Claims struct {
	UserID      uint64 `json:"uid"`
	UserType    int    `json:"utype"`
	InstituteID uint64 `json:"iid,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed bearer token for a user.
func GenerateToken(user *models.User, secret string) (string, error) {
	var instituteID uint64
	if user.InstituteID != nil {
		instituteID = *user.InstituteID
	}

	now := time.Now()
	claims := &Claims{
		UserID:      user.ID,
		UserType:    int(user.UserType),
		InstituteID: instituteID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// RequireAuth validates the bearer token in the Authorization header and
// stores the caller identity in the request context.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Unauthorized(c, "missing bearer token")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			apierrors.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			apierrors.Unauthorized(c, "invalid claims")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyIdentity, authz.Identity{
			UserID:      claims.UserID,
			Tier:        authz.Tier(claims.UserType),
			InstituteID: claims.InstituteID,
		})
		c.Next()
	}
}

// GetIdentity retrieves the caller identity from the request context.
func GetIdentity(c *gin.Context) (authz.Identity, bool) {
	value, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return authz.Identity{}, false
	}

	identity, ok := value.(authz.Identity)
	return identity, ok
}
