package client

import (
	"context"

	"github.com/Shivamkillarikar/CityGuardian/internal/api"
)

// Client is the subset of the CityGuardian API the terminal client talks to.
type Client interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Profile(ctx context.Context, token string) (*api.User, error)
	Health(ctx context.Context) (*api.HealthResponse, error)
}
