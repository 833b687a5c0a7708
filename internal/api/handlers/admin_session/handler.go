package admin_session

import (
	"net/http"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers"
)

// SessionResponse HTTP response model
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

type Handler struct {
	verifier SessionVerifier
	cookie   handlers.CookieSettings
	logger   Logger
}

func NewHandler(verifier SessionVerifier, cookie handlers.CookieSettings, logger Logger) *Handler {
	return &Handler{
		verifier: verifier,
		cookie:   cookie,
		logger:   logger,
	}
}

// Handle GET /api/admin/session
// Всегда 200: клиент по полю authenticated решает, показывать ли форму входа
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(h.cookie.Name)
	if err != nil || cookie.Value == "" {
		handlers.RespondJSON(w, http.StatusOK, SessionResponse{})
		return
	}

	username, err := h.verifier.Verify(cookie.Value)
	if err != nil {
		h.logger.Warn("GET /admin/session - Invalid session: %v", err)
		handlers.ClearSessionCookie(w, h.cookie)
		handlers.RespondJSON(w, http.StatusOK, SessionResponse{})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, SessionResponse{Authenticated: true, Username: username})
}
