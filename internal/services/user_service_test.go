package services

import (
	"context"
	"errors"
	"testing"

	"skyward-va/concourse/internal/constants"
	models "skyward-va/concourse/internal/models/gorm"
)

func TestUserService_UpdateRoles(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	seedUser(t, db, "u1", 0)

	user, err := svc.UpdateRoles(ctx, "u1", true, false)
	if err != nil {
		t.Fatalf("UpdateRoles failed: %v", err)
	}
	if !user.IsStaff || user.IsAdmin {
		t.Errorf("roles = staff:%v admin:%v, want staff only", user.IsStaff, user.IsAdmin)
	}

	// Flags can be revoked as well as granted.
	user, err = svc.UpdateRoles(ctx, "u1", false, false)
	if err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if user.IsStaff {
		t.Error("staff flag survived revocation")
	}

	if _, err := svc.UpdateRoles(ctx, "ghost", true, true); !errors.Is(err, constants.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestUserService_EarlyBirdHolders(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	seedUser(t, db, "u1", 0)
	holder := seedUser(t, db, "u2", 0)
	holder.HasEarlyBird = true
	if err := db.Save(holder).Error; err != nil {
		t.Fatalf("save holder: %v", err)
	}

	users, err := svc.EarlyBirdHolders(ctx)
	if err != nil {
		t.Fatalf("EarlyBirdHolders failed: %v", err)
	}
	if len(users) != 1 || users[0].ID != "u2" {
		t.Errorf("holders = %v, want just u2", users)
	}
}

func TestUserService_IsLinked(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	seedUser(t, db, "u1", 0)
	if err := db.Model(&models.User{}).Where("id = ?", "u1").
		UpdateColumn("linked", false).Error; err != nil {
		t.Fatalf("unlink user: %v", err)
	}

	linked, err := svc.IsLinked(ctx, "u1")
	if err != nil {
		t.Fatalf("IsLinked failed: %v", err)
	}
	if linked {
		t.Error("unlinked user reported as linked")
	}

	if _, err := svc.IsLinked(ctx, "ghost"); !errors.Is(err, constants.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}
