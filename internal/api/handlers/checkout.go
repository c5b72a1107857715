package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/quickretail/qpos/internal/api/middleware"
	"github.com/quickretail/qpos/internal/errors"
	"github.com/quickretail/qpos/internal/models"
	service "github.com/quickretail/qpos/internal/services"
	"github.com/quickretail/qpos/internal/utils/response"
)

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		validator:       validator.New(),
	}
}

// checkoutView decorates the raw checkout state with the derived amounts the
// register screen renders.
type checkoutView struct {
	Checkout     *service.Checkout `json:"checkout"`
	RemainingDue float64           `json:"remaining_due"`
	ChangeAmount float64           `json:"change_amount"`
	CanSettle    bool              `json:"can_settle"`
}

func newCheckoutView(c *service.Checkout) *checkoutView {
	return &checkoutView{
		Checkout:     c,
		RemainingDue: c.RemainingDue(),
		ChangeAmount: c.ChangeAmount(),
		CanSettle:    c.CanSettle(),
	}
}

func (h *CheckoutHandler) Begin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		checkout, err := h.checkoutService.Begin(r.Context(), sessionID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, newCheckoutView(checkout))

	}
}

func (h *CheckoutHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		checkout, err := h.checkoutService.Get(sessionID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, newCheckoutView(checkout))

	}
}

func (h *CheckoutHandler) SelectMethod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		var req models.SelectMethodRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		checkout, err := h.checkoutService.SelectMethod(sessionID, service.SelectionMode(req.Method))
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, newCheckoutView(checkout))

	}
}

func (h *CheckoutHandler) EnterTender() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		var req models.TenderRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		checkout, err := h.checkoutService.EnterTender(sessionID, req.AmountTendered)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, newCheckoutView(checkout))

	}
}

func (h *CheckoutHandler) AddSplitEntry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		var req models.SplitEntryRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		checkout, err := h.checkoutService.AddSplitEntry(sessionID, req.Method, req.Amount)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, newCheckoutView(checkout))

	}
}

func (h *CheckoutHandler) RemoveSplitEntry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		entryID := r.PathValue("id")
		if entryID == "" {
			response.Error(w, errors.BadRequestError("Split entry ID is required"))
			return
		}

		checkout, err := h.checkoutService.RemoveSplitEntry(sessionID, entryID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, newCheckoutView(checkout))

	}
}

func (h *CheckoutHandler) Cancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		if err := h.checkoutService.Cancel(sessionID); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]string{"status": "cancelled"})

	}
}

func (h *CheckoutHandler) Confirm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		claims, _ := middleware.ClaimsFromContext(r.Context())

		order, err := h.checkoutService.ConfirmSettlement(r.Context(), sessionID, claims.CashierID)
		if err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Order settled",
			slog.String("orderNumber", order.OrderNumber),
			slog.Float64("totalAmount", order.TotalAmount))
		response.Success(w, http.StatusCreated, models.OrderResponse{Order: order})

	}
}
