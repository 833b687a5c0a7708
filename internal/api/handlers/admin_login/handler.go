package admin_login

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-MobileDiagnostics/internal/api/handlers"
	"github.com/m04kA/SMC-MobileDiagnostics/internal/service/auth"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidCredentials = "Incorrect username or password"
)

type Handler struct {
	service AuthService
	cookie  handlers.CookieSettings
	logger  Logger
}

func NewHandler(service AuthService, cookie handlers.CookieSettings, logger Logger) *Handler {
	return &Handler{
		service: service,
		cookie:  cookie,
		logger:  logger,
	}
}

// Handle POST /api/admin/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.Login(strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			h.logger.Warn("POST /admin/login - Invalid credentials: username=%q", req.Username)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		default:
			h.logger.Error("POST /admin/login - Failed to create session: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.SetSessionCookie(w, h.cookie, session.Token, session.ExpiresAt)

	h.logger.Info("POST /admin/login - Signed in: username=%s", session.Username)
	handlers.RespondJSON(w, http.StatusOK, SessionResponse{Authenticated: true, Username: session.Username})
}
