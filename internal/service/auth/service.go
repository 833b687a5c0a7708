package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "mobile-diagnostics-admin"

// Config настройки входа в админку
type Config struct {
	Secret string
	TTL    time.Duration
	// Users логин -> bcrypt хэш пароля
	Users map[string]string
}

// Session подписанная сессия администратора
type Session struct {
	Token     string
	Username  string
	ExpiresAt time.Time
}

// Service вход в админку и проверка сессий
type Service struct {
	secret    []byte
	ttl       time.Duration
	users     map[string][]byte
	dummyHash []byte
	now       func() time.Time
	logger    Logger
}

// NewService создает сервис авторизации
func NewService(cfg Config, logger Logger) (*Service, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("%w: empty session secret", ErrInternal)
	}

	users := make(map[string][]byte, len(cfg.Users))
	for name, hash := range cfg.Users {
		users[strings.ToLower(strings.TrimSpace(name))] = []byte(hash)
	}

	// Сравнение с фиктивным хэшем выравнивает время ответа для неизвестных логинов
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: generate dummy hash: %v", ErrInternal, err)
	}

	return &Service{
		secret:    []byte(cfg.Secret),
		ttl:       cfg.TTL,
		users:     users,
		dummyHash: dummy,
		now:       time.Now,
		logger:    logger,
	}, nil
}

// Login проверяет пароль и выдает сессию
func (s *Service) Login(username, password string) (*Session, error) {
	name := strings.ToLower(strings.TrimSpace(username))

	hash, ok := s.users[name]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		s.logger.Warn("Login: unknown admin user %q", name)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		s.logger.Warn("Login: wrong password for %q", name)
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	expires := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   name,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.logger.Error("Login: failed to sign token: %v", err)
		return nil, fmt.Errorf("%w: sign token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: admin %q signed in", name)
	return &Session{Token: token, Username: name, ExpiresAt: expires}, nil
}

// Verify проверяет токен сессии и возвращает имя администратора
func (s *Service) Verify(token string) (string, error) {
	if token == "" {
		return "", ErrInvalidSession
	}

	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidSession
	}

	// Пользователь мог быть удален из конфигурации
	if _, ok := s.users[claims.Subject]; !ok {
		return "", ErrInvalidSession
	}

	return claims.Subject, nil
}

// TTL время жизни сессии
func (s *Service) TTL() time.Duration {
	return s.ttl
}
