package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pressroom/pressroom-api/internal/api"
	"github.com/pressroom/pressroom-api/internal/api/handler"
	"github.com/pressroom/pressroom-api/internal/core/domain"
	"github.com/pressroom/pressroom-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub service
// ---------------------------------------------------------------------------

type stubUserService struct {
	listFn   func(ctx context.Context, in ports.ListUsersInput) ([]*ports.UserView, error)
	getFn    func(ctx context.Context, actor domain.Actor, id int64, vc ports.ViewContext) (*ports.UserView, error)
	createFn func(ctx context.Context, actor domain.Actor, m ports.UserMutation) (*ports.CreateUserResult, error)
	updateFn func(ctx context.Context, actor domain.Actor, id int64, m ports.UserMutation) (*ports.UserView, error)
	deleteFn func(ctx context.Context, actor domain.Actor, id int64, force bool) (string, error)
}

func (s *stubUserService) List(ctx context.Context, in ports.ListUsersInput) ([]*ports.UserView, error) {
	return s.listFn(ctx, in)
}

func (s *stubUserService) Get(ctx context.Context, actor domain.Actor, id int64, vc ports.ViewContext) (*ports.UserView, error) {
	return s.getFn(ctx, actor, id, vc)
}

func (s *stubUserService) Create(ctx context.Context, actor domain.Actor, m ports.UserMutation) (*ports.CreateUserResult, error) {
	return s.createFn(ctx, actor, m)
}

func (s *stubUserService) Update(ctx context.Context, actor domain.Actor, id int64, m ports.UserMutation) (*ports.UserView, error) {
	return s.updateFn(ctx, actor, id, m)
}

func (s *stubUserService) Delete(ctx context.Context, actor domain.Actor, id int64, force bool) (string, error) {
	return s.deleteFn(ctx, actor, id, force)
}

// newTestServer registers the user routes behind a middleware that injects
// the given claims, mirroring what the Auth middleware does in production.
func newTestServer(svc ports.UserService, userID int64, roles []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	e.Validator = handler.NewValidator()

	claims := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID != 0 {
				c.Set("user_id", userID)
				c.Set("roles", roles)
			}
			return next(c)
		}
	}

	h := handler.NewUserHandler(svc)
	users := e.Group("/v1/users", claims)
	users.GET("", h.List)
	users.POST("", h.Create)
	users.GET("/:id", h.Get)
	users.PUT("/:id", h.Update)
	users.DELETE("/:id", h.Delete)
	return e
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestUserHandler_List(t *testing.T) {
	svc := &stubUserService{
		listFn: func(_ context.Context, in ports.ListUsersInput) ([]*ports.UserView, error) {
			if in.Actor.ID != 1 || in.Page != 2 || in.PerPage != 5 || in.Search != "jo" {
				t.Fatalf("query params not forwarded: %+v", in)
			}
			return []*ports.UserView{{ID: 3, Login: "john"}}, nil
		},
	}
	e := newTestServer(svc, 1, []string{domain.RoleAdministrator})

	rec := doJSON(e, http.MethodGet, "/v1/users?page=2&per_page=5&search=jo", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var views []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &views); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(views) != 1 || views[0]["login"] != "john" {
		t.Fatalf("unexpected body: %s", rec.Body)
	}
}

func TestUserHandler_List_EmptyIsArray(t *testing.T) {
	svc := &stubUserService{
		listFn: func(context.Context, ports.ListUsersInput) ([]*ports.UserView, error) {
			return []*ports.UserView{}, nil
		},
	}
	e := newTestServer(svc, 1, []string{domain.RoleAdministrator})

	rec := doJSON(e, http.MethodGet, "/v1/users", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("empty result must render as []: %d %s", rec.Code, rec.Body)
	}
}

func TestUserHandler_List_BadPage(t *testing.T) {
	e := newTestServer(&stubUserService{}, 1, []string{domain.RoleAdministrator})
	rec := doJSON(e, http.MethodGet, "/v1/users?page=zero", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserHandler_Get_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("get user 9: %w", domain.ErrUserNotFound), http.StatusNotFound},
		{"forbidden", fmt.Errorf("%w: you are not allowed to view this user", domain.ErrForbidden), http.StatusForbidden},
		{"persistence", fmt.Errorf("%w: boom", domain.ErrPersistence), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		svc := &stubUserService{
			getFn: func(context.Context, domain.Actor, int64, ports.ViewContext) (*ports.UserView, error) {
				return nil, tc.err
			},
		}
		e := newTestServer(svc, 1, []string{domain.RoleSubscriber})
		rec := doJSON(e, http.MethodGet, "/v1/users/9", "")
		if rec.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d: %s", tc.name, tc.want, rec.Code, rec.Body)
		}
	}
}

func TestUserHandler_Get_InvalidID(t *testing.T) {
	e := newTestServer(&stubUserService{}, 1, []string{domain.RoleAdministrator})
	for _, id := range []string{"abc", "-4", "0"} {
		rec := doJSON(e, http.MethodGet, "/v1/users/"+id, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("id %q: expected 400, got %d", id, rec.Code)
		}
	}
}

func TestUserHandler_Get_Unauthenticated(t *testing.T) {
	e := newTestServer(&stubUserService{}, 0, nil)
	rec := doJSON(e, http.MethodGet, "/v1/users/1", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %d", rec.Code)
	}
}

func TestUserHandler_Create(t *testing.T) {
	svc := &stubUserService{
		createFn: func(_ context.Context, actor domain.Actor, m ports.UserMutation) (*ports.CreateUserResult, error) {
			if m.Login == nil || *m.Login != "newbie" || m.ID != 0 {
				t.Fatalf("payload not forwarded: %+v", m)
			}
			return &ports.CreateUserResult{
				View:     &ports.UserView{ID: 12, Login: "newbie"},
				Location: "/v1/users/12",
			}, nil
		},
	}
	e := newTestServer(svc, 1, []string{domain.RoleAdministrator})

	body := `{"login":"newbie","password":"hunter22","email":"n@example.com","unknown_key":"ignored"}`
	rec := doJSON(e, http.MethodPost, "/v1/users", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}
	if rec.Header().Get(echo.HeaderLocation) != "/v1/users/12" {
		t.Fatalf("missing Location header: %q", rec.Header().Get(echo.HeaderLocation))
	}
}

func TestUserHandler_Create_Conflict(t *testing.T) {
	svc := &stubUserService{
		createFn: func(_ context.Context, _ domain.Actor, m ports.UserMutation) (*ports.CreateUserResult, error) {
			if m.ID != 3 {
				t.Fatalf("body id must reach the service for conflict detection: %+v", m)
			}
			return nil, fmt.Errorf("create user: %w", domain.ErrIDConflict)
		},
	}
	e := newTestServer(svc, 1, []string{domain.RoleAdministrator})

	rec := doJSON(e, http.MethodPost, "/v1/users", `{"id":3,"login":"x","password":"y","email":"x@example.com"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body)
	}
}

func TestUserHandler_Create_BadEmail(t *testing.T) {
	e := newTestServer(&stubUserService{}, 1, []string{domain.RoleAdministrator})
	rec := doJSON(e, http.MethodPost, "/v1/users", `{"login":"x","password":"y","email":"not-an-email"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body)
	}
}

func TestUserHandler_Update(t *testing.T) {
	svc := &stubUserService{
		updateFn: func(_ context.Context, _ domain.Actor, id int64, m ports.UserMutation) (*ports.UserView, error) {
			if id != 5 || m.Name == nil || *m.Name != "Jane" {
				t.Fatalf("update args not forwarded: id=%d m=%+v", id, m)
			}
			return &ports.UserView{ID: 5, Name: "Jane"}, nil
		},
	}
	e := newTestServer(svc, 1, []string{domain.RoleAdministrator})

	body := `{"login":"jane","password":"pw","email":"jane@example.com","name":"Jane"}`
	rec := doJSON(e, http.MethodPut, "/v1/users/5", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	svc := &stubUserService{
		deleteFn: func(_ context.Context, _ domain.Actor, id int64, force bool) (string, error) {
			if id != 5 || !force {
				t.Fatalf("delete args not forwarded: id=%d force=%v", id, force)
			}
			return "user jane deleted", nil
		},
	}
	e := newTestServer(svc, 1, []string{domain.RoleAdministrator})

	rec := doJSON(e, http.MethodDelete, "/v1/users/5?force=true", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["deleted"] != true || resp["message"] != "user jane deleted" {
		t.Fatalf("unexpected body: %s", rec.Body)
	}
}
