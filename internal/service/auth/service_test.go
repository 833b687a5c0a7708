package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-MobileDiagnostics/pkg/logger"
)

func newService(t *testing.T) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	svc, err := NewService(Config{
		Secret: "test-secret",
		TTL:    time.Hour,
		Users:  map[string]string{"Tech": string(hash)},
	}, logger.NewNop())
	require.NoError(t, err)
	return svc
}

func TestLoginAndVerify(t *testing.T) {
	svc := newService(t)

	session, err := svc.Login(" tech ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "tech", session.Username)

	name, err := svc.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "tech", name)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := newService(t)

	_, err := svc.Login("tech", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerify_Expired(t *testing.T) {
	svc := newService(t)
	start := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	session, err := svc.Login("tech", "correct horse")
	require.NoError(t, err)

	svc.now = func() time.Time { return start.Add(2 * time.Hour) }
	_, err = svc.Verify(session.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestVerify_ForeignSecret(t *testing.T) {
	svc := newService(t)
	session, err := svc.Login("tech", "correct horse")
	require.NoError(t, err)

	other := newService(t)
	other.secret = []byte("another-secret")

	_, err = other.Verify(session.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = svc.Verify("")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestNewService_RequiresSecret(t *testing.T) {
	_, err := NewService(Config{TTL: time.Hour}, logger.NewNop())
	assert.ErrorIs(t, err, ErrInternal)
}
