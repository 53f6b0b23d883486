package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pressroom/pressroom-api/internal/core/domain"
	"github.com/pressroom/pressroom-api/internal/core/ports"
)

// --- Record → external representation ---

// toView projects a user record into its external representation for the
// given context. Edit context additionally exposes the per-record capability
// overrides; nothing else differs. Credential material is never included.
func toView(u *domain.User, vc ports.ViewContext) *ports.UserView {
	view := &ports.UserView{
		ID:           u.ID,
		Login:        u.Login,
		Name:         u.Name,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Nickname:     u.Nickname,
		Slug:         u.Slug,
		URL:          u.URL,
		Description:  u.Description,
		Email:        u.Email,
		Registered:   u.Registered.UTC(),
		Roles:        append([]string(nil), u.Roles...),
		Capabilities: u.EffectiveCaps(),
		Links: ports.UserLinks{
			Self:       fmt.Sprintf("/v1/users/%d", u.ID),
			Collection: "/v1/users",
		},
	}
	if vc == ports.ContextEdit {
		extras := make(map[string]bool, len(u.ExtraCaps))
		for c, granted := range u.ExtraCaps {
			extras[c] = granted
		}
		view.ExtraCaps = extras
	}
	return view
}

// --- Inbound payload → record mutations ---

// applyMutation applies every supplied allow-listed field of the payload
// onto the record. Absent fields keep their current values. Credential
// material is handled by the upsert step, not here. The only value that can
// fail is a malformed profile URL.
func applyMutation(u *domain.User, m ports.UserMutation) error {
	if m.Login != nil {
		u.Login = strings.TrimSpace(*m.Login)
	}
	if m.Name != nil {
		u.Name = *m.Name
	}
	if m.FirstName != nil {
		u.FirstName = *m.FirstName
	}
	if m.LastName != nil {
		u.LastName = *m.LastName
	}
	if m.Nickname != nil {
		u.Nickname = *m.Nickname
	}
	if m.Slug != nil {
		u.Slug = sanitizeSlug(*m.Slug)
	}
	if m.Description != nil {
		u.Description = *m.Description
	}
	if m.Email != nil {
		u.Email = strings.TrimSpace(*m.Email)
	}
	if m.URL != nil {
		canonical, err := canonicalURL(*m.URL)
		if err != nil {
			return fmt.Errorf("%w: url: %v", domain.ErrInvalidInput, err)
		}
		u.URL = canonical
	}
	return nil
}

// canonicalURL validates and normalises a profile URL. Empty input clears
// the field; anything else must parse as an absolute http(s) URL.
func canonicalURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("malformed url %q", raw)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", fmt.Errorf("url %q must be absolute http(s)", raw)
	}
	return parsed.String(), nil
}

// sanitizeSlug lowercases and strips a slug down to [a-z0-9-].
func sanitizeSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
