package repo

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestIdempotency_CreateGetExpiry(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	rec, err := CreateIdempotency(ctx, db, "u1", "r1", "retry-1", 200, time.Hour)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.ID == "" || rec.ExpiresAt.Before(rec.CreatedAt) {
		t.Fatalf("bad record: %+v", rec)
	}

	got, err := GetIdempotency(ctx, db, "u1", "r1", "retry-1", time.Now().UTC())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != 200 {
		t.Errorf("status = %d", got.Status)
	}

	// Expired records behave as absent.
	if _, err := GetIdempotency(ctx, db, "u1", "r1", "retry-1", time.Now().UTC().Add(2*time.Hour)); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired err = %v", err)
	}
}

func TestIdempotency_DuplicateAndScoping(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	if _, err := CreateIdempotency(ctx, db, "u1", "r1", "k", 200, time.Hour); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := CreateIdempotency(ctx, db, "u1", "r1", "k", 200, time.Hour); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate err = %v", err)
	}

	// Same key for a different user or recipe is a separate operation.
	if _, err := CreateIdempotency(ctx, db, "u2", "r1", "k", 200, time.Hour); err != nil {
		t.Errorf("other user: %v", err)
	}
	if _, err := CreateIdempotency(ctx, db, "u1", "r2", "k", 200, time.Hour); err != nil {
		t.Errorf("other recipe: %v", err)
	}

	// Blank recipe scope never matches.
	if _, err := GetIdempotency(ctx, db, "u1", "", "k", time.Now().UTC()); !errors.Is(err, ErrNotFound) {
		t.Errorf("blank recipe err = %v", err)
	}
}
