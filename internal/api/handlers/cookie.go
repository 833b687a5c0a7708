package handlers

import (
	"net/http"
	"time"
)

// CookieSettings параметры cookie админской сессии
type CookieSettings struct {
	Name   string
	Secure bool
}

// SetSessionCookie выставляет HttpOnly cookie с токеном сессии
func SetSessionCookie(w http.ResponseWriter, s CookieSettings, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie удаляет cookie сессии
func ClearSessionCookie(w http.ResponseWriter, s CookieSettings) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
