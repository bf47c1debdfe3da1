package treatment

import (
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

// RegisterRoutes wires the public availability endpoint and the admin-only
// catalog management endpoints.
func (h *Handler) RegisterRoutes(public *echo.Group, admin *echo.Group) {
	public.GET("/treatments", h.ListAvailability)
	public.GET("/treatments/catalog", h.ListTreatments)
	public.GET("/treatments/:name", h.GetTreatment)
	admin.POST("/treatments", h.CreateTreatment)
}

// ListAvailability returns each treatment with the slots still open on the
// queried date. Without a date the full templates come back unchanged;
// both strategies treat the blank date as matching no bookings.
func (h *Handler) ListAvailability(c echo.Context) error {
	date := c.QueryParam("date")
	strategy := Strategy(c.QueryParam("strategy"))

	items, err := h.svc.Availability(c.Request().Context(), date, strategy)
	if err != nil {
		if strategy != "" && strategy != StrategyMemory && strategy != StrategyQuery {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetTreatment(c echo.Context) error {
	t, err := h.svc.GetByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "treatment not found")
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) CreateTreatment(c echo.Context) error {
	var t Treatment
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, t)
}

// ListTreatments returns the raw catalog (templates, not availability).
func (h *Handler) ListTreatments(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
