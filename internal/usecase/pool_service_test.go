package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/agsmith/run-my-pool/internal/domain/pool"
)

func TestPoolService_Create_DefaultsAndOwnerAdmin(t *testing.T) {
	f := newPickFixture(t, 18)

	p, err := f.poolSvc.Create(t.Context(), CreatePoolInput{
		OwnerID:    "owner-1",
		Name:       "  Office Survivor  ",
		Visibility: "PRIVATE",
	})
	if err != nil {
		t.Fatalf("create pool failed: %v", err)
	}

	if p.Name != "Office Survivor" {
		t.Fatalf("expected trimmed name, got %q", p.Name)
	}
	if p.Visibility != pool.VisibilityPrivate {
		t.Fatalf("expected normalized private visibility, got %q", p.Visibility)
	}
	if p.Rules != pool.DefaultRules() {
		t.Fatalf("expected default rules, got %+v", p.Rules)
	}

	status, err := f.poolSvc.AdminStatus(t.Context(), p.ID, "owner-1")
	if err != nil {
		t.Fatalf("admin status failed: %v", err)
	}
	if !status.IsOwner || !status.HasAdminAccess {
		t.Fatalf("owner must have admin access, got %+v", status)
	}
}

func TestPoolService_Create_Validation(t *testing.T) {
	f := newPickFixture(t, 18)

	if _, err := f.poolSvc.Create(t.Context(), CreatePoolInput{OwnerID: "", Name: "Pool"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized without owner, got %v", err)
	}
	if _, err := f.poolSvc.Create(t.Context(), CreatePoolInput{OwnerID: "owner-1", Name: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}

	bad := pool.Rules{MaxEntriesPerUser: -1}
	if _, err := f.poolSvc.Create(t.Context(), CreatePoolInput{OwnerID: "owner-1", Name: "Pool", Rules: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative entry cap, got %v", err)
	}
}

func TestPoolService_Update_RequiresAdminAccess(t *testing.T) {
	f := newPickFixture(t, 18)
	p := f.mustCreatePool(t, "owner-1", pool.DefaultRules())

	name := "Renamed Pool"
	_, err := f.poolSvc.Update(t.Context(), UpdatePoolInput{CallerID: "stranger", PoolID: p.ID, Name: &name})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for stranger, got %v", err)
	}

	updated, err := f.poolSvc.Update(t.Context(), UpdatePoolInput{CallerID: "owner-1", PoolID: p.ID, Name: &name})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Name != name {
		t.Fatalf("expected renamed pool, got %q", updated.Name)
	}

	// A delegated admin can update too.
	if err := f.pools.AddAdmin(context.Background(), p.ID, "helper-1"); err != nil {
		t.Fatalf("add admin failed: %v", err)
	}
	rules := pool.Rules{TiesCountAsLoss: false, NoPickForfeit: true, MaxEntriesPerUser: 3}
	updated, err = f.poolSvc.Update(t.Context(), UpdatePoolInput{CallerID: "helper-1", PoolID: p.ID, Rules: &rules})
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if updated.Rules != rules {
		t.Fatalf("expected updated rules, got %+v", updated.Rules)
	}
}

func TestPoolService_Delete_OwnerOnlyAndEmptyOnly(t *testing.T) {
	f := newPickFixture(t, 18)
	p := f.mustCreatePool(t, "owner-1", pool.DefaultRules())
	e := f.mustCreateEntry(t, p.ID, "user-1", "Line")

	if err := f.poolSvc.Delete(t.Context(), "user-1", p.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	if err := f.poolSvc.Delete(t.Context(), "owner-1", p.ID); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput while entries exist, got %v", err)
	}

	if err := f.entrySvc.Delete(t.Context(), "user-1", e.ID); err != nil {
		t.Fatalf("delete entry failed: %v", err)
	}
	if err := f.poolSvc.Delete(t.Context(), "owner-1", p.ID); err != nil {
		t.Fatalf("delete pool failed: %v", err)
	}

	if _, err := f.poolSvc.Get(t.Context(), p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestPoolService_ListPublic_HidesPrivatePools(t *testing.T) {
	f := newPickFixture(t, 18)

	if _, err := f.poolSvc.Create(t.Context(), CreatePoolInput{OwnerID: "owner-1", Name: "Open Pool"}); err != nil {
		t.Fatalf("create public pool failed: %v", err)
	}
	if _, err := f.poolSvc.Create(t.Context(), CreatePoolInput{OwnerID: "owner-1", Name: "Closed Pool", Visibility: "private"}); err != nil {
		t.Fatalf("create private pool failed: %v", err)
	}

	public, err := f.poolSvc.ListPublic(t.Context())
	if err != nil {
		t.Fatalf("list public failed: %v", err)
	}
	if len(public) != 1 || public[0].Name != "Open Pool" {
		t.Fatalf("expected only the public pool, got %+v", public)
	}

	mine, err := f.poolSvc.ListMine(t.Context(), "owner-1")
	if err != nil {
		t.Fatalf("list mine failed: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected both owned pools, got %d", len(mine))
	}
}
