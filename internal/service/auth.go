package service

import (
	"github.com/clerk/clerk-sdk-go/v2"

	"github.com/fitquest/backend/internal/server"
)

// AuthService configures the Clerk SDK used by the auth middleware.
type AuthService struct {
	server *server.Server
}

func NewAuthService(s *server.Server) *AuthService {
	if s.Config.Auth.Enabled {
		clerk.SetKey(s.Config.Auth.SecretKey)
	}
	return &AuthService{
		server: s,
	}
}

// Enabled reports whether write routes require a Clerk session.
func (a *AuthService) Enabled() bool {
	return a.server.Config.Auth.Enabled
}
