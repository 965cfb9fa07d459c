package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
	"github.com/ledgerdesk/ledgerdesk/internal/module/role"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Permission{}, &domain.Role{}, &domain.Admin{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T) (domain.AdminService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewAdminService(NewAdminRepository(db), role.NewRoleRepository(db)), db
}

func seedRole(t *testing.T, db *gorm.DB, name string) *domain.Role {
	t.Helper()
	r := domain.Role{Name: name, Slug: name, IsActive: true}
	if err := db.Create(&r).Error; err != nil {
		t.Fatalf("seed role: %v", err)
	}
	return &r
}

func validInput(roleIDs ...uint) domain.CreateAdminInput {
	return domain.CreateAdminInput{
		FirstName: "Ada",
		Username:  "ada",
		Email:     "ada@example.com",
		Password:  "s3cret-pass",
		RoleIDs:   roleIDs,
	}
}

func TestCreateAdmin(t *testing.T) {
	svc, db := newTestService(t)
	r := seedRole(t, db, "support")

	admin, err := svc.CreateAdmin(context.Background(), validInput(r.ID))
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	if admin.ID == 0 || !admin.IsActive {
		t.Errorf("admin = %+v, want persisted active account", admin)
	}
	if len(admin.Roles) != 1 || admin.Roles[0].Slug != "support" {
		t.Errorf("roles = %v, want the assigned role", admin.Roles)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestCreateAdmin_Validation(t *testing.T) {
	svc, db := newTestService(t)
	seedRole(t, db, "support")

	tests := []struct {
		name   string
		mutate func(*domain.CreateAdminInput)
	}{
		{"short username", func(in *domain.CreateAdminInput) { in.Username = "ab" }},
		{"invalid email", func(in *domain.CreateAdminInput) { in.Email = "not-an-email" }},
		{"short password", func(in *domain.CreateAdminInput) { in.Password = "short" }},
		{"unknown role", func(in *domain.CreateAdminInput) { in.RoleIDs = []uint{999} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)
			_, err := svc.CreateAdmin(context.Background(), input)
			var appErr *domain.AppError
			if !errors.As(err, &appErr) || appErr.Code != domain.CodeValidation {
				t.Errorf("error = %v, want validation error", err)
			}
		})
	}
}

func TestCreateAdmin_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.CreateAdmin(context.Background(), validInput()); err != nil {
		t.Fatalf("first CreateAdmin: %v", err)
	}

	dup := validInput()
	dup.Username = "other"
	if _, err := svc.CreateAdmin(context.Background(), dup); !domain.IsAlreadyExists(err) {
		t.Errorf("error = %v, want already exists", err)
	}
}

func TestUpdateAdmin_RolesReplacedOnlyWhenGiven(t *testing.T) {
	svc, db := newTestService(t)
	support := seedRole(t, db, "support")
	compliance := seedRole(t, db, "compliance")

	admin, err := svc.CreateAdmin(context.Background(), validInput(support.ID))
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}

	// nil role IDs leave assignments untouched.
	if _, err := svc.UpdateAdmin(context.Background(), admin.ID, domain.UpdateAdminInput{FirstName: "Ada"}); err != nil {
		t.Fatalf("UpdateAdmin: %v", err)
	}
	got, err := svc.GetAdmin(context.Background(), admin.ID)
	if err != nil {
		t.Fatalf("GetAdmin: %v", err)
	}
	if len(got.Roles) != 1 || got.Roles[0].Slug != "support" {
		t.Errorf("roles = %v, want untouched support", got.Roles)
	}

	// An explicit list replaces them.
	_, err = svc.UpdateAdmin(context.Background(), admin.ID, domain.UpdateAdminInput{
		FirstName: "Ada",
		RoleIDs:   []uint{compliance.ID},
	})
	if err != nil {
		t.Fatalf("UpdateAdmin: %v", err)
	}
	got, err = svc.GetAdmin(context.Background(), admin.ID)
	if err != nil {
		t.Fatalf("GetAdmin: %v", err)
	}
	if len(got.Roles) != 1 || got.Roles[0].Slug != "compliance" {
		t.Errorf("roles = %v, want replaced with compliance", got.Roles)
	}
}

func TestToggleAdminStatus(t *testing.T) {
	svc, _ := newTestService(t)
	admin, err := svc.CreateAdmin(context.Background(), validInput())
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}

	toggled, err := svc.ToggleAdminStatus(context.Background(), admin.ID)
	if err != nil {
		t.Fatalf("ToggleAdminStatus: %v", err)
	}
	if toggled.IsActive {
		t.Error("expected admin deactivated")
	}
}

func TestDeleteAdmin(t *testing.T) {
	svc, _ := newTestService(t)
	admin, err := svc.CreateAdmin(context.Background(), validInput())
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	if err := svc.DeleteAdmin(context.Background(), admin.ID); err != nil {
		t.Fatalf("DeleteAdmin: %v", err)
	}
	if _, err := svc.GetAdmin(context.Background(), admin.ID); !domain.IsNotFound(err) {
		t.Errorf("error = %v, want not found after delete", err)
	}
}
