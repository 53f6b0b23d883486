package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pressroom/pressroom-api/internal/api/metrics"
	"github.com/pressroom/pressroom-api/internal/core/auth"
	"github.com/pressroom/pressroom-api/internal/core/domain"
	"github.com/pressroom/pressroom-api/internal/core/ports"
)

// UserService implements the user resource controller: each public operation
// is a short pipeline of authorization check, input validation, store
// delegation and response shaping. The service is stateless; all record
// state lives in the repository.
type UserService struct {
	repo   ports.UserRepository
	gate   *auth.Gate
	avatar ports.AvatarResolver
	hooks  ports.Hooks
	logger zerolog.Logger
}

// NewUserService wires the controller. avatar may be nil (no avatar field in
// representations); every hook in hooks is optional.
func NewUserService(repo ports.UserRepository, gate *auth.Gate, avatar ports.AvatarResolver, hooks ports.Hooks, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, gate: gate, avatar: avatar, hooks: hooks, logger: logger}
}

// List returns a page of user representations ordered by login.
// An out-of-range page yields an empty sequence, never an error.
func (s *UserService) List(ctx context.Context, in ports.ListUsersInput) ([]*ports.UserView, error) {
	if err := s.authorize(in.Actor, auth.ActionList, 0); err != nil {
		return nil, err
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	perPage := in.PerPage
	if perPage <= 0 {
		perPage = ports.DefaultPerPage
	}

	filter := ports.ListUsersFilter{
		Search: in.Search,
		Role:   in.Role,
		Offset: (page - 1) * perPage,
		Limit:  perPage,
	}
	if s.hooks.Query != nil {
		s.hooks.Query(ctx, &filter)
	}

	users, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	views := make([]*ports.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, s.represent(ctx, u, s.effectiveContext(in.Actor, in.Context, u.ID)))
	}
	return views, nil
}

// Get returns a single user representation, or domain.ErrUserNotFound.
func (s *UserService) Get(ctx context.Context, actor domain.Actor, id int64, vc ports.ViewContext) (*ports.UserView, error) {
	if err := s.authorize(actor, auth.ActionView, id); err != nil {
		return nil, err
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return s.represent(ctx, u, s.effectiveContext(actor, vc, id)), nil
}

// Create inserts a new user from the mutation payload. A payload carrying a
// nonzero identity is rejected before any persistence attempt.
func (s *UserService) Create(ctx context.Context, actor domain.Actor, m ports.UserMutation) (*ports.CreateUserResult, error) {
	if err := s.authorize(actor, auth.ActionCreate, 0); err != nil {
		return nil, err
	}
	if m.ID != 0 {
		return nil, fmt.Errorf("create user: %w", domain.ErrIDConflict)
	}

	id, err := s.upsert(ctx, actor, m, false)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload created user %d: %w", id, err)
	}

	metrics.UserMutationsTotal.WithLabelValues("create").Inc()
	s.logger.Info().Int64("user_id", id).Str("login", created.Login).Int64("actor_id", actor.ID).Msg("user created")

	return &ports.CreateUserResult{
		View:     s.represent(ctx, created, ports.ContextView),
		Location: fmt.Sprintf("/v1/users/%d", id),
	}, nil
}

// Update applies a mutation payload to an existing user and returns the
// updated representation. The resolved id always wins over any identity
// carried in the payload.
func (s *UserService) Update(ctx context.Context, actor domain.Actor, id int64, m ports.UserMutation) (*ports.UserView, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: user id must be a positive integer", domain.ErrInvalidInput)
	}
	if err := s.authorize(actor, auth.ActionEdit, id); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}

	m.ID = id
	if _, err := s.upsert(ctx, actor, m, true); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload updated user %d: %w", id, err)
	}

	metrics.UserMutationsTotal.WithLabelValues("update").Inc()
	s.logger.Info().Int64("user_id", id).Int64("actor_id", actor.ID).Msg("user updated")

	return s.represent(ctx, updated, s.effectiveContext(actor, ports.ContextEdit, id)), nil
}

// Delete removes a user. force is accepted for forward compatibility with
// content-reassignment semantics and is currently only logged.
func (s *UserService) Delete(ctx context.Context, actor domain.Actor, id int64, force bool) (string, error) {
	if id <= 0 {
		return "", fmt.Errorf("%w: user id must be a positive integer", domain.ErrInvalidInput)
	}
	if err := s.authorize(actor, auth.ActionDelete, id); err != nil {
		return "", err
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("delete user %d: %w", id, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return "", fmt.Errorf("delete user %d: %w", id, err)
	}

	s.notify(domain.UserEvent{
		UserID:    id,
		Login:     u.Login,
		Action:    domain.UserDeleted,
		ActorID:   actor.ID,
		Timestamp: time.Now().UTC(),
	})

	metrics.UserMutationsTotal.WithLabelValues("delete").Inc()
	s.logger.Info().Int64("user_id", id).Str("login", u.Login).Bool("force", force).Int64("actor_id", actor.ID).Msg("user deleted")

	return fmt.Sprintf("user %s deleted", u.Login), nil
}

// upsert is the shared create-or-update procedure. Update mode is selected
// by the caller, not inferred, and re-validates the core identity fields on
// every update: login, password and email must be supplied even when the
// edit does not touch them.
func (s *UserService) upsert(ctx context.Context, actor domain.Actor, m ports.UserMutation, update bool) (int64, error) {
	var record *domain.User

	if update {
		existing, err := s.repo.FindByID(ctx, m.ID)
		if err != nil {
			return 0, fmt.Errorf("upsert user %d: %w", m.ID, err)
		}
		// Redundant with the controller's check, kept so upsert is safe
		// to call from any path.
		if err := s.authorize(actor, auth.ActionEdit, m.ID); err != nil {
			return 0, err
		}
		record = existing
	} else {
		if err := s.authorize(actor, auth.ActionCreate, 0); err != nil {
			return 0, err
		}
		record = &domain.User{
			Registered: time.Now().UTC(),
			Roles:      []string{domain.RoleSubscriber},
		}
	}

	if err := requireCoreFields(m); err != nil {
		return 0, err
	}

	if err := applyMutation(record, m); err != nil {
		return 0, err
	}
	if !update {
		applyCreateDefaults(record)
	}

	if m.Password != nil && *m.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*m.Password), bcrypt.DefaultCost)
		if err != nil {
			return 0, fmt.Errorf("hash password: %w", err)
		}
		record.PasswordHash = string(hash)
	}

	if s.hooks.PrePersist != nil {
		if err := s.hooks.PrePersist(ctx, record, update); err != nil {
			return 0, err
		}
	}

	if update {
		if err := s.repo.Update(ctx, record); err != nil {
			return 0, err
		}
	} else {
		id, err := s.repo.Insert(ctx, record)
		if err != nil {
			return 0, err
		}
		record.ID = id
	}

	action := domain.UserCreated
	if update {
		action = domain.UserUpdated
	}
	s.notify(domain.UserEvent{
		UserID:    record.ID,
		Login:     record.Login,
		Action:    action,
		ActorID:   actor.ID,
		Timestamp: time.Now().UTC(),
	})

	return record.ID, nil
}

// requireCoreFields enforces the conservative re-validation policy: every
// create or update payload must carry non-empty login, password and email.
func requireCoreFields(m ports.UserMutation) error {
	if m.Login == nil || *m.Login == "" {
		return fmt.Errorf("%w: login is required", domain.ErrInvalidInput)
	}
	if m.Password == nil || *m.Password == "" {
		return fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	if m.Email == nil || *m.Email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	return nil
}

// applyCreateDefaults fills display fields a create payload omitted.
func applyCreateDefaults(u *domain.User) {
	if u.Nickname == "" {
		u.Nickname = u.Login
	}
	if u.Name == "" {
		u.Name = u.Login
	}
	if u.Slug == "" {
		u.Slug = sanitizeSlug(u.Login)
	}
}

// authorize consults the gate and counts denials.
func (s *UserService) authorize(actor domain.Actor, action auth.Action, targetID int64) error {
	if err := s.gate.Require(actor, action, targetID); err != nil {
		metrics.AuthDenialsTotal.WithLabelValues(string(action)).Inc()
		return err
	}
	return nil
}

// effectiveContext downgrades a requested edit context to view when the
// actor may not edit the target record.
func (s *UserService) effectiveContext(actor domain.Actor, requested ports.ViewContext, targetID int64) ports.ViewContext {
	if requested == ports.ContextEdit && actor.CanFor(domain.CapEditUsers, targetID) {
		return ports.ContextEdit
	}
	return ports.ContextView
}

// represent maps a record through the representation pipeline: field
// projection, avatar resolution, then the representation hook.
func (s *UserService) represent(ctx context.Context, u *domain.User, vc ports.ViewContext) *ports.UserView {
	view := toView(u, vc)

	if s.avatar != nil && u.Email != "" {
		avatarURL, err := s.avatar.Resolve(ctx, u.Email)
		if err != nil {
			s.logger.Warn().Err(err).Int64("user_id", u.ID).Msg("avatar resolution failed")
		} else {
			view.AvatarURL = avatarURL
		}
	}

	if s.hooks.Representation != nil {
		if replaced := s.hooks.Representation(view, u, vc); replaced != nil {
			view = replaced
		}
	}
	return view
}

// notify dispatches a post-persist event. Hook failures are contained here:
// a panicking or missing hook never fails the enclosing operation.
func (s *UserService) notify(event domain.UserEvent) {
	if s.hooks.PostPersist == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn().Interface("panic", r).Int64("user_id", event.UserID).Msg("post-persist hook panicked")
		}
	}()
	s.hooks.PostPersist(event)
}
