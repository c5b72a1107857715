package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/quickretail/qpos/internal/api/middleware"
	"github.com/quickretail/qpos/internal/errors"
	"github.com/quickretail/qpos/internal/models"
	service "github.com/quickretail/qpos/internal/services"
	"github.com/quickretail/qpos/internal/utils/response"
)

type CartHandler struct {
	cartService *service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		summary, err := h.cartService.Summary(r.Context(), sessionID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)

	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		var req models.AddLineRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		summary, err := h.cartService.AddLine(r.Context(), sessionID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)

	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		var req models.UpdateQuantityRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		summary, err := h.cartService.SetQuantity(r.Context(), sessionID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)

	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		lineID := r.PathValue("id")
		if lineID == "" {
			response.Error(w, errors.BadRequestError("Line ID is required"))
			return
		}

		summary, err := h.cartService.RemoveLine(r.Context(), sessionID, lineID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)

	}
}

func (h *CartHandler) SetDiscount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		var req models.SetDiscountRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		summary, err := h.cartService.SetDiscount(r.Context(), sessionID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)

	}
}

func (h *CartHandler) ApplyCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		var req models.ApplyCouponRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		summary, err := h.cartService.ApplyCoupon(r.Context(), sessionID, req.Code)
		if err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Coupon applied")
		response.Success(w, http.StatusOK, summary)

	}
}

func (h *CartHandler) ClearDiscount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		summary, err := h.cartService.ClearDiscount(r.Context(), sessionID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)

	}
}

func (h *CartHandler) SetCustomer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		var req models.SetCustomerRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		summary, err := h.cartService.SetCustomer(r.Context(), sessionID, req.CustomerID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)

	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		if err := h.cartService.Clear(r.Context(), sessionID); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]string{"status": "cleared"})

	}
}
