package admin_login

import "github.com/m04kA/SMC-MobileDiagnostics/internal/service/auth"

type AuthService interface {
	Login(username, password string) (*auth.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
