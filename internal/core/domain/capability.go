package domain

// Capability names recognised by the user API.
const (
	CapListUsers   = "list_users"
	CapCreateUsers = "create_users"
	CapEditUsers   = "edit_users"
	CapDeleteUsers = "delete_users"
)

// Role names assignable to a user.
const (
	RoleAdministrator = "administrator"
	RoleEditor        = "editor"
	RoleAuthor        = "author"
	RoleSubscriber    = "subscriber"
)

// roleGrants defines the capabilities each role confers.
var roleGrants = map[string][]string{
	RoleAdministrator: {CapListUsers, CapCreateUsers, CapEditUsers, CapDeleteUsers},
	RoleEditor:        {CapListUsers},
	RoleAuthor:        {},
	RoleSubscriber:    {},
}

// ValidRole reports whether name is a recognised role.
func ValidRole(name string) bool {
	_, ok := roleGrants[name]
	return ok
}

// CapabilitySet maps capability name to granted/revoked. A missing key means
// not granted; an explicit false revokes a role-derived grant.
type CapabilitySet map[string]bool

// Has reports whether the capability is granted.
func (s CapabilitySet) Has(name string) bool {
	return s[name]
}

// EffectiveCaps derives the full capability set from roles plus per-record
// overrides. Overrides are applied last so an explicit false can revoke a
// role-derived grant.
func EffectiveCaps(roles []string, extra map[string]bool) CapabilitySet {
	caps := make(CapabilitySet)
	for _, role := range roles {
		for _, c := range roleGrants[role] {
			caps[c] = true
		}
	}
	for c, granted := range extra {
		caps[c] = granted
	}
	return caps
}

// Actor is the authenticated caller performing an operation: a numeric
// identity plus its effective capabilities. The zero Actor has no identity
// and no grants.
type Actor struct {
	ID   int64
	Caps CapabilitySet
}

// Can reports whether the actor holds the capability.
func (a Actor) Can(name string) bool {
	return a.Caps.Has(name)
}

// CanFor reports whether the actor holds the capability scoped to a target
// user. Editing your own record is always permitted.
func (a Actor) CanFor(name string, targetID int64) bool {
	if name == CapEditUsers && a.ID != 0 && a.ID == targetID {
		return true
	}
	return a.Caps.Has(name)
}
