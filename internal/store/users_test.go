package store

import (
	"context"
	"errors"
	"testing"

	"github.com/autimapro/autimapro/internal/domain"
)

func TestUserStore_Upsert(t *testing.T) {
	db := newTestDB(t)
	store := NewUserStore(db)
	ctx := context.Background()

	u, created, err := store.Upsert(ctx, "buyer@example.com")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !created {
		t.Error("Expected first upsert to create the account")
	}
	if u.Role != "" {
		t.Errorf("Expected empty role on a fresh account, got %q", u.Role)
	}

	again, created, err := store.Upsert(ctx, "buyer@example.com")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if created {
		t.Error("Expected second upsert to reuse the account")
	}
	if again.ID != u.ID {
		t.Errorf("Expected stable account id, got %d then %d", u.ID, again.ID)
	}
}

func TestUserStore_IsAdmin(t *testing.T) {
	db := newTestDB(t)
	store := NewUserStore(db)
	ctx := context.Background()

	// Unknown accounts deny cleanly instead of erroring.
	admin, err := store.IsAdmin(ctx, "ghost@example.com")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if admin {
		t.Error("Expected unknown account to not be admin")
	}

	if _, _, err := store.Upsert(ctx, "buyer@example.com"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	admin, err = store.IsAdmin(ctx, "buyer@example.com")
	if err != nil || admin {
		t.Fatalf("Expected plain account to not be admin, got admin=%v err=%v", admin, err)
	}

	if err := store.SetRole(ctx, "buyer@example.com", domain.RoleAdmin); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	admin, err = store.IsAdmin(ctx, "buyer@example.com")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !admin {
		t.Error("Expected promoted account to be admin")
	}
}

func TestUserStore_SetRoleMissing(t *testing.T) {
	db := newTestDB(t)
	store := NewUserStore(db)

	err := store.SetRole(context.Background(), "ghost@example.com", domain.RoleAdmin)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got: %v", err)
	}
}

func TestUserStore_Delete(t *testing.T) {
	db := newTestDB(t)
	store := NewUserStore(db)
	ctx := context.Background()

	if _, _, err := store.Upsert(ctx, "buyer@example.com"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := store.Delete(ctx, "buyer@example.com"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if _, err := store.GetByEmail(ctx, "buyer@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got: %v", err)
	}
	if err := store.Delete(ctx, "buyer@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for repeated delete, got: %v", err)
	}
}
