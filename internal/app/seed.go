package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
)

// bootstrapEmail is the email of the seeded administrator account.
const bootstrapEmail = "admin@example.com"

// permissionCatalog is the full set of grantable capabilities. Each managed
// resource exposes view/create/update/delete actions; the wildcard action
// grants everything and is reserved for the Administrator role.
func permissionCatalog() []domain.Permission {
	resources := []string{
		"dashboard",
		"admin",
		"role",
		"user",
		"wallet",
		"transaction",
		"verification",
		"product",
	}
	actions := []string{"view", "create", "update", "delete"}

	perms := make([]domain.Permission, 0, len(resources)*len(actions)+1)
	for _, r := range resources {
		for _, a := range actions {
			perms = append(perms, domain.Permission{Action: r + "." + a})
		}
	}
	perms = append(perms, domain.Permission{Action: "*"})
	return perms
}

// seed populates the permission catalog, the Administrator role, and a
// bootstrap admin account. It is idempotent: existing rows are left alone.
func seed(ctx context.Context, db *gorm.DB, log *slog.Logger) error {
	perms := permissionCatalog()
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&perms).Error
	if err != nil {
		return fmt.Errorf("seed permissions: %w", err)
	}

	var role domain.Role
	err = db.WithContext(ctx).Where("slug = ?", "administrator").First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var wildcard domain.Permission
		if err := db.WithContext(ctx).Where("action = ?", "*").First(&wildcard).Error; err != nil {
			return fmt.Errorf("seed administrator role: %w", err)
		}

		role = domain.Role{
			Name:        "Administrator",
			Slug:        "administrator",
			Description: "Full access to every resource",
			IsActive:    true,
			Permissions: []domain.Permission{wildcard},
		}
		if err := db.WithContext(ctx).Create(&role).Error; err != nil {
			return fmt.Errorf("seed administrator role: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("seed administrator role: %w", err)
	}

	var count int64
	if err := db.WithContext(ctx).Model(&domain.Admin{}).Count(&count).Error; err != nil {
		return fmt.Errorf("seed bootstrap admin: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bootstrap admin: %w", err)
	}

	admin := domain.Admin{
		FirstName:    "System",
		LastName:     "Administrator",
		Username:     "admin",
		Email:        bootstrapEmail,
		PasswordHash: string(hash),
		IsActive:     true,
		Roles:        []domain.Role{role},
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return fmt.Errorf("seed bootstrap admin: %w", err)
	}

	log.Warn("seeded bootstrap admin with default password, change it before going live",
		slog.String("email", bootstrapEmail))
	return nil
}
