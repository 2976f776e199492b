package database

import (
	"context"
	"testing"

	"github.com/ubuntu-bounty/crm/internal/common/cnst"
	"github.com/ubuntu-bounty/crm/internal/common/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestEnsureSuperAdmin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cfg := &config.SuperAdminConfig{Email: "admin@ubuntubounty.com", PIN: "2025"}
	require.NoError(t, EnsureSuperAdmin(ctx, s, cfg))

	admin, err := s.GetUserByEmail(ctx, "admin@ubuntubounty.com")
	require.NoError(t, err)
	assert.Equal(t, cnst.RoleSuperAdmin, admin.UserType)
	assert.True(t, admin.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.LoginPIN), []byte("2025")))

	// second run leaves the existing account untouched
	require.NoError(t, EnsureSuperAdmin(ctx, s, cfg))
	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestEnsureSuperAdminDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, EnsureSuperAdmin(ctx, s, &config.SuperAdminConfig{}))
	admin, err := s.GetUserByEmail(ctx, "admin@ubuntubounty.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.LoginPIN), []byte(cnst.DefaultLoginPIN)))
}
