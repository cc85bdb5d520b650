// internal/middleware/identity_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swellapp/swell-backend/internal/config"
)

func TestPlaintextVerifier(t *testing.T) {
	verifier := PlaintextVerifier{}

	id, err := verifier.Verify("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = verifier.Verify("not-a-number")
	assert.ErrorIs(t, err, ErrBadToken)

	_, err = verifier.Verify("")
	assert.ErrorIs(t, err, ErrBadToken)
}

func TestJWTVerifier(t *testing.T) {
	secret := "test-secret"
	verifier := NewJWTVerifier(secret)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	id, err := verifier.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = verifier.Verify("garbage")
	assert.ErrorIs(t, err, ErrBadToken)

	// Wrong signing key
	wrong, err := token.SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = verifier.Verify(wrong)
	assert.ErrorIs(t, err, ErrBadToken)
}

func TestJWTVerifierNonNumericSubject(t *testing.T) {
	secret := "test-secret"
	verifier := NewJWTVerifier(secret)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "alice",
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, ErrBadToken)
}

func TestVerifierFor(t *testing.T) {
	cfg := &config.Config{Auth: config.AuthConfig{Mode: "plaintext"}}
	_, ok := VerifierFor(cfg).(PlaintextVerifier)
	assert.True(t, ok)

	cfg = &config.Config{Auth: config.AuthConfig{Mode: "jwt", JWTSecret: "s"}}
	_, ok = VerifierFor(cfg).(*JWTVerifier)
	assert.True(t, ok)
}

func TestIdentityMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Identity(PlaintextVerifier{}))
	r.GET("/whoami", func(c *gin.Context) {
		id, ok := CallerID(c)
		if !ok {
			c.Status(http.StatusForbidden)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":42}`, w.Body.String())

	// Malformed header: the id is simply absent, the handler decides.
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "bogus")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
