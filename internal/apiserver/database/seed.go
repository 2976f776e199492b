package database

import (
	"context"
	"errors"

	"github.com/ubuntu-bounty/crm/internal/common/cnst"
	"github.com/ubuntu-bounty/crm/internal/common/config"

	"golang.org/x/crypto/bcrypt"
)

// EnsureSuperAdmin creates the configured super admin account on first
// start so the system is administrable. Existing accounts are left
// untouched.
func EnsureSuperAdmin(ctx context.Context, s Store, cfg *config.SuperAdminConfig) error {
	email := cfg.Email
	if email == "" {
		email = "admin@ubuntubounty.com"
	}
	pin := cfg.PIN
	if pin == "" {
		pin = cnst.DefaultLoginPIN
	}

	_, err := s.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &SystemUser{
		Name:     "System",
		Surname:  "Administrator",
		Email:    email,
		UserType: cnst.RoleSuperAdmin,
		LoginPIN: string(hashed),
		IsActive: true,
	}
	return s.CreateUser(ctx, admin)
}
