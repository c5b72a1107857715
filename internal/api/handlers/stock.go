package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/quickretail/qpos/internal/api/middleware"
	"github.com/quickretail/qpos/internal/errors"
	"github.com/quickretail/qpos/internal/models"
	service "github.com/quickretail/qpos/internal/services"
	"github.com/quickretail/qpos/internal/utils/response"
)

type StockHandler struct {
	stockService *service.StockService
	validator    *validator.Validate
}

func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{
		stockService: stockService,
		validator:    validator.New(),
	}
}

func (h *StockHandler) Adjust() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.AdjustStockRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		entry, err := h.stockService.Adjust(r.Context(), req.ProductID, req.VariantID, req.ChangeAmount, req.Reason, req.Note)
		if err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Stock adjusted",
			slog.Int64("variantId", req.VariantID),
			slog.Int("changeAmount", req.ChangeAmount),
			slog.String("reason", string(req.Reason)))
		response.Success(w, http.StatusCreated, entry)

	}
}

func (h *StockHandler) History() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		variantID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid variant ID"))
			return
		}

		entries, err := h.stockService.History(r.Context(), variantID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, entries)

	}
}
