package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pressroom/pressroom-api/internal/core/domain"
	"github.com/pressroom/pressroom-api/internal/core/ports"
)

// UserHandler handles HTTP requests for the user resource. Errors are
// returned to echo and classified by the central HTTP error handler.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /v1/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        search    query     string  false  "Partial match on login, name or email"
// @Param        role      query     string  false  "Only users holding this role"
// @Param        context   query     string  false  "Representation context (view|edit)"
// @Param        page      query     int     false  "1-based page number"
// @Param        per_page  query     int     false  "Page size (default 10)"
// @Success      200       {array}   ports.UserView
// @Failure      400       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	page, err := intParam(c.QueryParam("page"), 1)
	if err != nil {
		return fmt.Errorf("%w: page must be a positive integer", domain.ErrInvalidInput)
	}
	perPage, err := intParam(c.QueryParam("per_page"), ports.DefaultPerPage)
	if err != nil {
		return fmt.Errorf("%w: per_page must be a positive integer", domain.ErrInvalidInput)
	}

	views, err := h.service.List(c.Request().Context(), ports.ListUsersInput{
		Actor:   actor,
		Search:  c.QueryParam("search"),
		Role:    c.QueryParam("role"),
		Context: viewContext(c),
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// Get handles GET /v1/users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int     true   "User id"
// @Param        context  query     string  false  "Representation context (view|edit)"
// @Success      200      {object}  ports.UserView
// @Failure      400      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := userID(c)
	if err != nil {
		return err
	}

	view, err := h.service.Get(c.Request().Context(), actor, id, viewContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Create handles POST /v1/users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      userMutationRequest  true  "User fields"
// @Success      201   {object}  ports.UserView
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req userMutationRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	result, err := h.service.Create(c.Request().Context(), actor, req.toMutation())
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, result.Location)
	return c.JSON(http.StatusCreated, result.View)
}

// Update handles PUT and PATCH /v1/users/:id.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "User id"
// @Param        body  body      userMutationRequest  true  "User fields (id ignored, forced server-side)"
// @Success      200   {object}  ports.UserView
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := userID(c)
	if err != nil {
		return err
	}

	var req userMutationRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	view, err := h.service.Update(c.Request().Context(), actor, id, req.toMutation())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Delete handles DELETE /v1/users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      int   true   "User id"
// @Param        force  query     bool  false  "Reserved for content reassignment semantics"
// @Success      200    {object}  deleteUserResponse
// @Failure      400    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := userID(c)
	if err != nil {
		return err
	}

	force, _ := strconv.ParseBool(c.QueryParam("force"))

	msg, err := h.service.Delete(c.Request().Context(), actor, id, force)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteUserResponse{Deleted: true, Message: msg})
}

// userID parses the :id path parameter as a positive integer.
func userID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: user id must be a positive integer", domain.ErrInvalidInput)
	}
	return id, nil
}

// viewContext reads the ?context= parameter; anything but "edit" is view.
func viewContext(c echo.Context) ports.ViewContext {
	if c.QueryParam("context") == string(ports.ContextEdit) {
		return ports.ContextEdit
	}
	return ports.ContextView
}

// intParam parses an optional positive integer query parameter.
func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("not a positive integer: %q", raw)
	}
	return n, nil
}
