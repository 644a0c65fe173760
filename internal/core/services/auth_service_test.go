package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/forumvote/internal/core/domain"
)

type fakeAuth struct {
	logins  []string
	logouts int
	err     error
}

func (a *fakeAuth) Login(ctx context.Context, username, password string) error {
	a.logins = append(a.logins, username)
	return a.err
}

func (a *fakeAuth) Logout(ctx context.Context) error {
	a.logouts++
	return a.err
}

func TestAuthService(t *testing.T) {
	gw := &fakeAuth{}
	svc := NewAuthService(gw, nil)

	assert.Error(t, svc.Login(context.Background(), "", "pw"))
	assert.Empty(t, gw.logins)

	require.NoError(t, svc.Login(context.Background(), "ana", "pw"))
	assert.Equal(t, []string{"ana"}, gw.logins)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Equal(t, 1, gw.logouts)

	gw.err = domain.ErrInvalidCredentials
	assert.ErrorIs(t, svc.Login(context.Background(), "ana", "bad"), domain.ErrInvalidCredentials)
}
