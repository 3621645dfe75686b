package db_test

import (
	"context"
	"errors"
	"testing"

	"leadsniper/internal/db"
	"leadsniper/internal/models"
	"leadsniper/internal/testutil"
)

func TestGrantEntitlementCreatesRecord(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	e, err := database.GrantEntitlement(ctx, "a@b.com", models.SourceShopifyWebhook)
	if err != nil {
		t.Fatalf("GrantEntitlement failed: %v", err)
	}

	if e.Email != "a@b.com" {
		t.Errorf("Email = %q", e.Email)
	}
	if !e.IsEntitled {
		t.Error("IsEntitled = false")
	}
	if e.SourceTag != models.SourceShopifyWebhook {
		t.Errorf("SourceTag = %q", e.SourceTag)
	}
	if e.GrantedAt.IsZero() {
		t.Error("GrantedAt not set")
	}
}

func TestGrantEntitlementIdempotent(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	first, err := database.GrantEntitlement(ctx, "a@b.com", models.SourceShopifyWebhook)
	if err != nil {
		t.Fatalf("first grant failed: %v", err)
	}
	second, err := database.GrantEntitlement(ctx, "a@b.com", models.SourceShopifyWebhook)
	if err != nil {
		t.Fatalf("second grant failed: %v", err)
	}

	if !second.IsEntitled {
		t.Error("IsEntitled = false after repeat grant")
	}
	if second.GrantedAt.Before(first.GrantedAt) {
		t.Error("repeat grant should refresh the timestamp")
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Error("created_at should survive the merge")
	}

	all, err := database.ListEntitlements(ctx, 10)
	if err != nil {
		t.Fatalf("ListEntitlements failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("got %d records, want exactly 1", len(all))
	}
}

func TestGrantEntitlementEmailCaseSensitive(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := database.GrantEntitlement(ctx, "A@b.com", "test"); err != nil {
		t.Fatal(err)
	}
	if _, err := database.GrantEntitlement(ctx, "a@b.com", "test"); err != nil {
		t.Fatal(err)
	}

	all, err := database.ListEntitlements(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	// Emails are stored case-sensitive as received.
	if len(all) != 2 {
		t.Errorf("got %d records, want 2 distinct emails", len(all))
	}
}

func TestGetEntitlement(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := database.GrantEntitlement(ctx, "x@y.com", "test"); err != nil {
		t.Fatal(err)
	}

	e, err := database.GetEntitlement(ctx, "x@y.com")
	if err != nil {
		t.Fatalf("GetEntitlement failed: %v", err)
	}
	if !e.IsEntitled {
		t.Error("IsEntitled = false")
	}
}

func TestGetEntitlementNotFound(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	_, err := database.GetEntitlement(context.Background(), "missing@y.com")
	if !errors.Is(err, db.ErrEntitlementNotFound) {
		t.Errorf("err = %v, want ErrEntitlementNotFound", err)
	}
}
