package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pressroom/pressroom-api/internal/core/domain"
)

// ctxActor rebuilds the authorization subject from the claims injected by
// the Auth middleware. A missing or non-positive user id means the
// middleware did not run; fail fast with 401 before any service call.
func ctxActor(c echo.Context) (domain.Actor, error) {
	userID, _ := c.Get("user_id").(int64)
	if userID <= 0 {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	roles, _ := c.Get("roles").([]string)
	return domain.Actor{ID: userID, Caps: domain.EffectiveCaps(roles, nil)}, nil
}
