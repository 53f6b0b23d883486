// Package auth is the central authorization checkpoint for the user API.
// The Gate maps an intended action, scoped to an optional target user, to an
// allow/deny decision based on the actor's effective capabilities. It holds
// no state and performs no side effects.
package auth

import (
	"fmt"

	"github.com/pressroom/pressroom-api/internal/core/domain"
)

// Action is an operation the gate can authorize.
type Action string

const (
	ActionList   Action = "list"
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Gate decides whether an actor may perform an action on the user resource.
type Gate struct{}

// NewGate returns a ready-to-use Gate.
func NewGate() *Gate {
	return &Gate{}
}

// Require returns nil when the actor may perform action on the target user,
// or a wrapped domain.ErrForbidden with an action-specific message.
// targetID is ignored for List and Create. Viewing your own record is always
// allowed, regardless of the list capability.
func (g *Gate) Require(actor domain.Actor, action Action, targetID int64) error {
	switch action {
	case ActionList:
		if actor.Can(domain.CapListUsers) {
			return nil
		}
		return fmt.Errorf("%w: you are not allowed to list users", domain.ErrForbidden)
	case ActionView:
		if actor.ID != 0 && actor.ID == targetID {
			return nil
		}
		if actor.Can(domain.CapListUsers) {
			return nil
		}
		return fmt.Errorf("%w: you are not allowed to view this user", domain.ErrForbidden)
	case ActionCreate:
		if actor.Can(domain.CapCreateUsers) {
			return nil
		}
		return fmt.Errorf("%w: you are not allowed to create users", domain.ErrForbidden)
	case ActionEdit:
		if actor.CanFor(domain.CapEditUsers, targetID) {
			return nil
		}
		return fmt.Errorf("%w: you are not allowed to edit this user", domain.ErrForbidden)
	case ActionDelete:
		if actor.CanFor(domain.CapDeleteUsers, targetID) {
			return nil
		}
		return fmt.Errorf("%w: you are not allowed to delete this user", domain.ErrForbidden)
	}
	return fmt.Errorf("%w: unknown action %q", domain.ErrForbidden, action)
}

// Can is a convenience wrapper returning a bool instead of an error.
func (g *Gate) Can(actor domain.Actor, action Action, targetID int64) bool {
	return g.Require(actor, action, targetID) == nil
}
