package ports

import (
	"context"
	"time"

	"github.com/pressroom/pressroom-api/internal/core/domain"
)

// ViewContext selects the richness of a user representation.
type ViewContext string

const (
	// ContextView is the public-safe field set.
	ContextView ViewContext = "view"
	// ContextEdit additionally exposes per-record capability overrides.
	ContextEdit ViewContext = "edit"
)

// UserLinks is the navigation block attached to every representation.
type UserLinks struct {
	Self       string `json:"self"`
	Collection string `json:"collection"`
}

// UserView is the external representation of a user. It is derived on every
// read and never persisted. ExtraCaps is present only in edit context.
type UserView struct {
	ID           int64           `json:"id"`
	Login        string          `json:"login"`
	Name         string          `json:"name"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Nickname     string          `json:"nickname"`
	Slug         string          `json:"slug"`
	URL          string          `json:"url"`
	Description  string          `json:"description"`
	Email        string          `json:"email"`
	Registered   time.Time       `json:"registered"`
	Roles        []string        `json:"roles"`
	Capabilities map[string]bool `json:"capabilities"`
	ExtraCaps    map[string]bool `json:"extra_capabilities,omitempty"`
	AvatarURL    string          `json:"avatar_url,omitempty"`
	Links        UserLinks       `json:"_links"`
}

// UserMutation is the inbound sparse payload shared by create and update.
// A nil field means "not supplied". Identity, roles and capabilities are
// never settable through it.
type UserMutation struct {
	ID          int64
	Login       *string
	Password    *string
	Name        *string
	FirstName   *string
	LastName    *string
	Nickname    *string
	Slug        *string
	URL         *string
	Description *string
	Email       *string
}

// ListUsersInput carries all parameters for the list endpoint.
type ListUsersInput struct {
	Actor   domain.Actor
	Search  string
	Role    string
	Context ViewContext
	Page    int // 1-based; values < 1 are treated as 1
	PerPage int // defaults to DefaultPerPage when <= 0
}

// DefaultPerPage is the page size applied when the caller does not specify one.
const DefaultPerPage = 10

// CreateUserResult is returned on successful creation.
type CreateUserResult struct {
	View     *UserView
	Location string // resource path for the Location header
}

// UserService defines the use-case operations of the user resource.
type UserService interface {
	List(ctx context.Context, in ListUsersInput) ([]*UserView, error)
	Get(ctx context.Context, actor domain.Actor, id int64, vc ViewContext) (*UserView, error)
	Create(ctx context.Context, actor domain.Actor, m UserMutation) (*CreateUserResult, error)
	Update(ctx context.Context, actor domain.Actor, id int64, m UserMutation) (*UserView, error)
	Delete(ctx context.Context, actor domain.Actor, id int64, force bool) (string, error)
}

// AuthService authenticates a user and issues a bearer token.
type AuthService interface {
	Login(ctx context.Context, login, password string) (string, *domain.User, error)
}

// AvatarResolver resolves the avatar URL shown in representations.
type AvatarResolver interface {
	Resolve(ctx context.Context, email string) (string, error)
}
