package ports

import (
	"context"

	"github.com/pressroom/pressroom-api/internal/core/domain"
)

// Hooks are the extension points of the user service, injected at
// construction. Every field is optional; a nil hook is a no-op.
type Hooks struct {
	// Query may adjust the effective list filter before it is executed.
	Query func(ctx context.Context, filter *ListUsersFilter)
	// PrePersist may veto or mutate a record before it is inserted or
	// updated. A returned error aborts the operation and is propagated
	// unchanged.
	PrePersist func(ctx context.Context, u *domain.User, update bool) error
	// PostPersist is notified after a successful mutation. It is
	// fire-and-forget: it cannot fail the enclosing operation.
	PostPersist func(event domain.UserEvent)
	// Representation may add, remove or override representation fields as
	// the final mapping step. It receives and may replace the whole view.
	Representation func(view *UserView, u *domain.User, vc ViewContext) *UserView
}
