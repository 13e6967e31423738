package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/klsociety/governance-records-api/internal/models"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireAuth(testSecret), func(c *gin.Context) {
		identity, _ := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"user_id": identity.UserID})
	})
	return r
}

func getMe(t *testing.T, r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req, err := http.NewRequest("GET", "/me", nil)
	require.NoError(t, err)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_ValidToken(t *testing.T) {
	r := newAuthRouter()

	token, err := GenerateToken(&models.User{ID: 42, UserType: models.UserTypeAdmin}, testSecret)
	require.NoError(t, err)

	w := getMe(t, r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"user_id":42`)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	r := newAuthRouter()

	w := getMe(t, r, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

// Only HS256 tokens are accepted; an unsigned token must not get through
// even though its claims parse.
func TestRequireAuth_RejectsUnsignedToken(t *testing.T) {
	r := newAuthRouter()

	claims := &Claims{
		UserID:   42,
		UserType: int(models.UserTypeAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenStr, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	w := getMe(t, r, "Bearer "+tokenStr)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	r := newAuthRouter()

	claims := &Claims{
		UserID:   42,
		UserType: int(models.UserTypeAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	w := getMe(t, r, "Bearer "+tokenStr)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
