package ports

import "context"

type AuthGateway interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
}

type AuthService interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
}
