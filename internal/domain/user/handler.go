package user

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dentalcare/dentalcare/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires login on the public group, the admin-flag probe on
// the authenticated group, and user management on the admin group.
func (h *Handler) RegisterRoutes(public, authed, admin *echo.Group) {
	public.PUT("/users/:email", h.Login)
	authed.GET("/users/admin/:email", h.CheckAdmin)
	admin.GET("/users", h.ListUsers)
	admin.PUT("/users/admin/:email", h.PromoteAdmin)
}

// Login upserts the account and returns a bearer token for it.
func (h *Handler) Login(c echo.Context) error {
	u, token, err := h.svc.Login(c.Request().Context(), c.Param("email"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{
		"user":  u,
		"token": token,
	})
}

func (h *Handler) CheckAdmin(c echo.Context) error {
	ok, err := h.svc.IsAdmin(c.Request().Context(), c.Param("email"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]bool{"isAdmin": ok})
}

func (h *Handler) ListUsers(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) PromoteAdmin(c echo.Context) error {
	if err := h.svc.Promote(c.Request().Context(), c.Param("email")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
