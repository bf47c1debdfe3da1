package payment

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dentalcare/dentalcare/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(authed *echo.Group) {
	authed.POST("/payments/intent", h.CreateIntent)
	authed.POST("/payments", h.RecordPayment)
	authed.GET("/payments", h.ListPayments)
}

type intentRequest struct {
	Amount   int64  `json:"amount"` // minor units
	Currency string `json:"currency"`
}

func (h *Handler) CreateIntent(c echo.Context) error {
	var req intentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	secret, err := h.svc.CreateIntent(c.Request().Context(), req.Amount, req.Currency)
	if err != nil {
		if req.Amount <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"clientSecret": secret})
}

func (h *Handler) RecordPayment(c echo.Context) error {
	var p Payment
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if p.Email == "" {
		p.Email = auth.EmailFromContext(c.Request().Context())
	}

	if err := h.svc.Record(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

// ListPayments returns the caller's own payment history.
func (h *Handler) ListPayments(c echo.Context) error {
	email := auth.EmailFromContext(c.Request().Context())
	items, err := h.svc.ListByEmail(c.Request().Context(), email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}
