package booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dentalcare/dentalcare/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires the booking endpoints onto the authenticated group.
func (h *Handler) RegisterRoutes(authed *echo.Group) {
	authed.POST("/bookings", h.CreateBooking)
	authed.GET("/bookings", h.ListBookings)
	authed.GET("/bookings/:id", h.GetBooking)
}

func (h *Handler) CreateBooking(c echo.Context) error {
	var b Booking
	if err := c.Bind(&b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.svc.Submit(c.Request().Context(), &b); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, b)
}

// ListBookings returns the caller's own bookings. Asking for another email
// is an identity mismatch, not a missing credential, hence 403.
func (h *Handler) ListBookings(c echo.Context) error {
	email := c.QueryParam("email")
	identity := auth.EmailFromContext(c.Request().Context())
	if email == "" {
		email = identity
	}
	if email != identity {
		return echo.NewHTTPError(http.StatusForbidden, "bookings can only be listed for your own email")
	}

	items, err := h.svc.ListByEmail(c.Request().Context(), email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetBooking(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	b, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "booking not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, b)
}
