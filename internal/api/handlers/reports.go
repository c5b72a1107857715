package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/quickretail/qpos/internal/errors"
	service "github.com/quickretail/qpos/internal/services"
	"github.com/quickretail/qpos/internal/utils/response"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// reportRange parses the optional range/from/to query parameters. Without any
// of them the report covers the current day in the server's zone. Explicit
// from/to dates override the named range.
func reportRange(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from := today
	to := today.AddDate(0, 0, 1)

	switch r.URL.Query().Get("range") {
	case "", "today":
	case "week":
		from = today.AddDate(0, 0, -6)
	case "month":
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Time{}, time.Time{}, errors.BadRequestError("Invalid 'range', expected today, week or month")
	}

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, errors.BadRequestError("Invalid 'from' date, expected YYYY-MM-DD")
		}

		from = parsed
	}

	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, errors.BadRequestError("Invalid 'to' date, expected YYYY-MM-DD")
		}

		// 'to' is inclusive at the API; the aggregation window is [from, to).
		to = parsed.AddDate(0, 0, 1)
	}

	if !to.After(from) {
		return time.Time{}, time.Time{}, errors.BadRequestError("'to' must not be before 'from'")
	}

	return from, to, nil
}

func (h *ReportHandler) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		from, to, err := reportRange(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		summary, err := h.reportService.Summary(r.Context(), from, to)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)

	}
}

func (h *ReportHandler) Daily() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		from, to, err := reportRange(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		daily, err := h.reportService.Daily(r.Context(), from, to)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, daily)

	}
}

func (h *ReportHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		orders, err := h.reportService.ListOrders(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)

	}
}

func (h *ReportHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		orderID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid order ID"))
			return
		}

		order, err := h.reportService.GetOrder(r.Context(), orderID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)

	}
}
