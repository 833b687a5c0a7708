package admin_login

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/service/auth"
	"github.com/m04kA/SMC-MobileDiagnostics/pkg/logger"
)

type stubAuth struct {
	session *auth.Session
	err     error
}

func (s *stubAuth) Login(string, string) (*auth.Session, error) {
	return s.session, s.err
}

var cookie = handlers.CookieSettings{Name: "md_admin_session", Secure: true}

func TestHandle_SetsCookie(t *testing.T) {
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	h := NewHandler(&stubAuth{session: &auth.Session{Token: "jwt", Username: "tech", ExpiresAt: expires}}, cookie, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"username":"tech","password":"secret"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"authenticated":true,"username":"tech"}`, rec.Body.String())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "md_admin_session", cookies[0].Name)
	assert.Equal(t, "jwt", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
}

func TestHandle_InvalidCredentials(t *testing.T) {
	h := NewHandler(&stubAuth{err: auth.ErrInvalidCredentials}, cookie, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"username":"tech","password":"nope"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}
