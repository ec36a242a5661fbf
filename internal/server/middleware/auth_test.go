package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClaims struct {
	externalID string
}

func (c *fakeClaims) GetExternalID() string { return c.externalID }

type fakeValidator struct {
	subject string
	err     error
}

func (v *fakeValidator) ValidateToken(tokenString string) (SubjectGetter, error) {
	if v.err != nil {
		return nil, v.err
	}
	return &fakeClaims{externalID: v.subject}, nil
}

func protected(t *testing.T, validator TokenValidator) http.Handler {
	t.Helper()
	return Auth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		externalID, err := GetExternalID(r)
		require.NoError(t, err)
		w.Write([]byte(externalID))
	}))
}

func TestAuthValidToken(t *testing.T) {
	handler := protected(t, &fakeValidator{subject: "user_abc"})

	req := httptest.NewRequest("GET", "/users/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user_abc", rec.Body.String())
}

func TestAuthMissingHeader(t *testing.T) {
	handler := protected(t, &fakeValidator{subject: "user_abc"})

	req := httptest.NewRequest("GET", "/users/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMalformedHeader(t *testing.T) {
	handler := protected(t, &fakeValidator{subject: "user_abc"})

	for _, header := range []string{"good-token", "Basic abc", "Bearer", "Bearer a b"} {
		req := httptest.NewRequest("GET", "/users/me", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthCaseInsensitiveBearer(t *testing.T) {
	handler := protected(t, &fakeValidator{subject: "user_abc"})

	req := httptest.NewRequest("GET", "/users/me", nil)
	req.Header.Set("Authorization", "bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthInvalidToken(t *testing.T) {
	handler := protected(t, &fakeValidator{err: fmt.Errorf("token expired")})

	req := httptest.NewRequest("GET", "/users/me", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthEmptySubject(t *testing.T) {
	handler := protected(t, &fakeValidator{subject: ""})

	req := httptest.NewRequest("GET", "/users/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetExternalIDMissing(t *testing.T) {
	req := httptest.NewRequest("GET", "/users/me", nil)
	_, err := GetExternalID(req)
	assert.Error(t, err)
}
