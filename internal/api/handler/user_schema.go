package handler

import (
	"github.com/pressroom/pressroom-api/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses.
type errorResponse struct {
	Error string `json:"error"`
}

// userMutationRequest is the sparse payload shared by create and update.
// Pointer fields distinguish "absent" from "set to empty"; unknown JSON keys
// are ignored by construction. Identity, roles and capabilities are not
// bindable through this payload (id is read only to detect misdirected
// creates).
type userMutationRequest struct {
	ID          *int64  `json:"id"`
	Login       *string `json:"login"`
	Password    *string `json:"password"`
	Name        *string `json:"name"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Nickname    *string `json:"nickname"`
	Slug        *string `json:"slug"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
	Email       *string `json:"email" validate:"omitempty,email"`
}

// toMutation converts the request into the service payload.
func (r userMutationRequest) toMutation() ports.UserMutation {
	m := ports.UserMutation{
		Login:       r.Login,
		Password:    r.Password,
		Name:        r.Name,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Nickname:    r.Nickname,
		Slug:        r.Slug,
		URL:         r.URL,
		Description: r.Description,
		Email:       r.Email,
	}
	if r.ID != nil {
		m.ID = *r.ID
	}
	return m
}

// deleteUserResponse confirms a completed deletion.
type deleteUserResponse struct {
	Deleted bool   `json:"deleted"`
	Message string `json:"message"`
}
