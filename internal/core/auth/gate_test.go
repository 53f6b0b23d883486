package auth

import (
	"errors"
	"testing"

	"github.com/pressroom/pressroom-api/internal/core/domain"
)

func adminActor(id int64) domain.Actor {
	return domain.Actor{ID: id, Caps: domain.EffectiveCaps([]string{domain.RoleAdministrator}, nil)}
}

func plainActor(id int64) domain.Actor {
	return domain.Actor{ID: id, Caps: domain.EffectiveCaps([]string{domain.RoleSubscriber}, nil)}
}

func TestGate_List(t *testing.T) {
	g := NewGate()

	if err := g.Require(adminActor(1), ActionList, 0); err != nil {
		t.Fatalf("admin should list: %v", err)
	}

	err := g.Require(plainActor(2), ActionList, 0)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

// Viewing succeeds iff the target is yourself or you hold the list
// capability, regardless of the target's own capabilities.
func TestGate_View_SelfException(t *testing.T) {
	g := NewGate()
	caller := plainActor(7)

	if err := g.Require(caller, ActionView, 7); err != nil {
		t.Fatalf("viewing your own record must always be allowed: %v", err)
	}
	if err := g.Require(caller, ActionView, 8); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for another record, got %v", err)
	}
	if err := g.Require(adminActor(1), ActionView, 8); err != nil {
		t.Fatalf("list capability should allow viewing anyone: %v", err)
	}
}

func TestGate_Create(t *testing.T) {
	g := NewGate()

	if err := g.Require(adminActor(1), ActionCreate, 0); err != nil {
		t.Fatalf("admin should create: %v", err)
	}
	if err := g.Require(plainActor(2), ActionCreate, 0); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestGate_Edit_OwnRecord(t *testing.T) {
	g := NewGate()
	caller := plainActor(5)

	if err := g.Require(caller, ActionEdit, 5); err != nil {
		t.Fatalf("editing your own record should pass the gate: %v", err)
	}
	if err := g.Require(caller, ActionEdit, 6); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestGate_Delete_NoSelfException(t *testing.T) {
	g := NewGate()

	if err := g.Require(plainActor(5), ActionDelete, 5); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("delete has no self exception, got %v", err)
	}
	if err := g.Require(adminActor(1), ActionDelete, 5); err != nil {
		t.Fatalf("admin should delete: %v", err)
	}
}

func TestGate_UnknownAction(t *testing.T) {
	g := NewGate()
	if err := g.Require(adminActor(1), Action("publish"), 0); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("unknown actions must deny, got %v", err)
	}
}

func TestGate_Can(t *testing.T) {
	g := NewGate()
	if !g.Can(adminActor(1), ActionList, 0) {
		t.Fatalf("Can should mirror a nil Require")
	}
	if g.Can(plainActor(2), ActionDelete, 3) {
		t.Fatalf("Can should mirror a denied Require")
	}
}
