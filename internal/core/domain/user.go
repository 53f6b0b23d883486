package domain

import "time"

// User is the core aggregate: a registered account on the platform.
// PasswordHash is write-only credential material and is never serialised
// into any API representation.
type User struct {
	ID           int64     `json:"id" bson:"_id"`
	Login        string    `json:"login" bson:"login"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Name         string    `json:"name" bson:"name"`
	FirstName    string    `json:"first_name" bson:"first_name"`
	LastName     string    `json:"last_name" bson:"last_name"`
	Nickname     string    `json:"nickname" bson:"nickname"`
	Slug         string    `json:"slug" bson:"slug"`
	URL          string    `json:"url" bson:"url"`
	Description  string    `json:"description" bson:"description"`
	Email        string    `json:"email" bson:"email"`
	Registered   time.Time `json:"registered" bson:"registered"`
	Roles        []string  `json:"roles" bson:"roles"`
	// ExtraCaps holds per-record capability overrides on top of what the
	// roles grant. Effective capabilities are always derived, never stored
	// as a whole.
	ExtraCaps map[string]bool `json:"-" bson:"extra_caps,omitempty"`
}

// EffectiveCaps returns the user's full capability set: role-derived grants
// merged with the record's own overrides (overrides win).
func (u *User) EffectiveCaps() CapabilitySet {
	return EffectiveCaps(u.Roles, u.ExtraCaps)
}

// Actor returns the authorization subject acting as this user.
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Caps: u.EffectiveCaps()}
}
