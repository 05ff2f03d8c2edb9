package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	types "github.com/tanujaya/user-directory/internal/domain"
)

// SeedUser inserts a user with a full address.
func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, firstname string) *types.User {
	tb.Helper()
	u := &types.User{
		Firstname: firstname,
		Lastname:  "Tester",
		Birthdate: "1990-01-01",
		Address: &types.Address{
			Street:     "1 Main",
			City:       "Springfield",
			Province:   "IL",
			PostalCode: "62701",
		},
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedBareUser inserts a user without an address row.
func SeedBareUser(tb testing.TB, ctx context.Context, tx *gorm.DB, firstname string) *types.User {
	tb.Helper()
	u := &types.User{
		Firstname: firstname,
		Lastname:  "Tester",
		Birthdate: "1990-01-01",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed bare user: %v", err)
	}
	return u
}
