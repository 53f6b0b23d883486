package ports

import (
	"context"

	"github.com/pressroom/pressroom-api/internal/core/domain"
)

// ListUsersFilter carries all query parameters for listing users.
// Results are always ordered by login ascending.
type ListUsersFilter struct {
	Search string // optional: partial match on login, name or email
	Role   string // optional: only users holding this role
	Offset int    // rows to skip (already derived from page × size)
	Limit  int    // max rows per page
}

// UserRepository defines persistence operations for users. The store owns
// identity assignment and uniqueness enforcement on login and email;
// violations surface as domain.ErrLoginExists / domain.ErrEmailExists.
type UserRepository interface {
	// FindByID retrieves a user by id, or domain.ErrUserNotFound.
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// FindByLogin retrieves a user by login, or domain.ErrUserNotFound.
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	// List returns a page of users matching filter, ordered by login.
	// An empty page is a valid result, not an error.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, error)
	// Insert persists a new user and returns its assigned id.
	Insert(ctx context.Context, u *domain.User) (int64, error)
	// Update overwrites the stored record identified by u.ID.
	Update(ctx context.Context, u *domain.User) error
	// Delete removes the user by id. A delete that matches no document
	// returns domain.ErrPersistence.
	Delete(ctx context.Context, id int64) error
}

// AuditRepository persists user mutation events for the audit trail.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.UserEvent) error
}
