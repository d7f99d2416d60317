package auth

import (
	"crypto/subtle"
	"fmt"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sarvaliya/folio/internal/config"
)

// RoleAnon is the role carried by the publicly embedded client key.
const RoleAnon = "anon"

var allowedRoles = []string{RoleAnon, "authenticated", "service_role"}

// Claims describes the caller identified by a bearer token.
type Claims struct {
	Role    string
	Subject string
}

// Service checks bearer tokens presented by clients. The anon key is not a
// secret: it ships inside the client bundle.
type Service struct {
	cfg    config.AuthConfig
	parser *jwt.Parser
}

// NewService creates a Service from the auth configuration.
func NewService(cfg config.AuthConfig) *Service {
	return &Service{
		cfg:    cfg,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name})),
	}
}

// Enabled reports whether requests must carry a token.
func (s *Service) Enabled() bool {
	return !s.cfg.Disabled
}

// Verify accepts either the configured anon key verbatim or an HS256 JWT
// signed with the configured secret whose role claim is permitted.
func (s *Service) Verify(token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, ErrUnauthorized
	}

	if s.cfg.AnonKey != "" && subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.AnonKey)) == 1 {
		return Claims{Role: RoleAnon}, nil
	}

	if s.cfg.JWTSecret == "" {
		return Claims{}, ErrUnauthorized
	}
	return s.verifyJWT(token)
}

func (s *Service) verifyJWT(tokenString string) (Claims, error) {
	parsed, err := s.parser.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, ErrUnauthorized
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrUnauthorized
	}

	role, _ := claims["role"].(string)
	if !slices.Contains(allowedRoles, role) {
		return Claims{}, ErrForbiddenRole
	}
	sub, _ := claims["sub"].(string)

	return Claims{Role: role, Subject: sub}, nil
}
