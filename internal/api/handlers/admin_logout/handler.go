package admin_logout

import (
	"net/http"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers"
)

type Logger interface {
	Info(format string, v ...interface{})
}

type Handler struct {
	cookie handlers.CookieSettings
	logger Logger
}

func NewHandler(cookie handlers.CookieSettings, logger Logger) *Handler {
	return &Handler{cookie: cookie, logger: logger}
}

// Handle POST /api/admin/logout
// JWT не отзывается: удаляем cookie, токен истекает по TTL
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.ClearSessionCookie(w, h.cookie)

	h.logger.Info("POST /admin/logout - Signed out")
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"authenticated": false})
}
