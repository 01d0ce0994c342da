package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/landsuite/plot-erp/internal/domain"
	"github.com/landsuite/plot-erp/internal/engine"
	"github.com/landsuite/plot-erp/internal/repository"
)

// BookingHandler exposes the booking transitions past the initial hold.
type BookingHandler struct {
	Store    *repository.Store
	Bookings *engine.BookingService
}

func NewBookingHandler(store *repository.Store, bookings *engine.BookingService) *BookingHandler {
	return &BookingHandler{Store: store, Bookings: bookings}
}

// List handles GET /v1/bookings. Optional query param: status.
func (h *BookingHandler) List(c echo.Context) error {
	bookings, err := h.Store.ListBookings(c.Request().Context(), domain.BookingStatus(c.QueryParam("status")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": bookings})
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	booking, err := h.Store.GetBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

// Confirm handles POST /v1/bookings/:id/confirm. Body fields are all
// optional except when the discount crosses the approval threshold, in
// which case approved_by must name a user allowed to edit rates.
func (h *BookingHandler) Confirm(c echo.Context) error {
	user, err := actingUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		TokenAmount  float64 `json:"token_amount"`
		DiscountPct  float64 `json:"discount_pct"`
		ApprovedBy   string  `json:"approved_by"`
		ApprovalNote string  `json:"approval_note"`
		PaymentPlan  string  `json:"payment_plan"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.DiscountPct < 0 || body.DiscountPct > 100 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "discount_pct must be between 0 and 100"})
	}

	booking, err := h.Bookings.Confirm(c.Request().Context(), user, engine.ConfirmBookingInput{
		BookingID:    c.Param("id"),
		TokenAmount:  body.TokenAmount,
		DiscountPct:  body.DiscountPct,
		ApprovedBy:   body.ApprovedBy,
		ApprovalNote: body.ApprovalNote,
		PaymentPlan:  domain.PaymentPlan(body.PaymentPlan),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

// Cancel handles POST /v1/bookings/:id/cancel. Body: {"reason": "...",
// "fee": 0}.
func (h *BookingHandler) Cancel(c echo.Context) error {
	user, err := actingUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Reason string  `json:"reason"`
		Fee    float64 `json:"fee"`
	}
	if err := c.Bind(&body); err != nil || body.Reason == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reason is required"})
	}

	booking, err := h.Bookings.Cancel(c.Request().Context(), user, engine.CancelBookingInput{
		BookingID: c.Param("id"),
		Reason:    body.Reason,
		Fee:       body.Fee,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

// RecordPayment handles POST /v1/bookings/:id/payments.
func (h *BookingHandler) RecordPayment(c echo.Context) error {
	user, err := actingUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Amount float64 `json:"amount"`
		Method string  `json:"method"`
		TxnRef string  `json:"txn_ref"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be positive"})
	}

	payment, err := h.Bookings.RecordPayment(c.Request().Context(), user, engine.RecordPaymentInput{
		BookingID: c.Param("id"),
		Amount:    body.Amount,
		Method:    domain.PaymentMethod(body.Method),
		TxnRef:    body.TxnRef,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, payment)
}

// ListPayments handles GET /v1/bookings/:id/payments.
func (h *BookingHandler) ListPayments(c echo.Context) error {
	ctx := c.Request().Context()
	if _, err := h.Store.GetBooking(ctx, c.Param("id")); err != nil {
		return domainError(c, err)
	}
	payments, err := h.Store.ListPaymentsByBooking(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list payments"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": payments})
}
