package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"home-affordability/domain"
	"home-affordability/export"
	"home-affordability/service"
)

type AffordabilityHandler struct {
	affordability *service.AffordabilityService
	terms         *service.TermComparisonService
}

func NewAffordabilityHandler(
	affordability *service.AffordabilityService,
	terms *service.TermComparisonService,
) *AffordabilityHandler {
	return &AffordabilityHandler{affordability: affordability, terms: terms}
}

type exploreRequest struct {
	Inputs domain.AffordabilityInputs `json:"inputs"`
	Price  float64                    `json:"price"`
}

func (h *AffordabilityHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var input domain.AffordabilityInputs
	if !decodeJSON(w, r, &input) {
		return
	}

	calc, err := h.affordability.Calculate(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, calc)
}

func (h *AffordabilityHandler) Explore(w http.ResponseWriter, r *http.Request) {
	var req exploreRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	calc, err := h.affordability.Explore(r.Context(), req.Inputs, req.Price)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, calc)
}

// Schedule returns the amortization schedule. With ?sampled=true only the
// first year and then one month per year are returned.
func (h *AffordabilityHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req domain.ScheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	schedule, err := h.affordability.Schedule(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if sampled, _ := strconv.ParseBool(r.URL.Query().Get("sampled")); sampled {
		schedule = export.SampleSchedule(schedule)
	}
	writeJSON(w, r, http.StatusOK, schedule)
}

func (h *AffordabilityHandler) ScheduleCSV(w http.ResponseWriter, r *http.Request) {
	var req domain.ScheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	schedule, err := h.affordability.Schedule(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteScheduleCSV(&buf, schedule); err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="amortization-schedule.csv"`)
	if _, err := buf.WriteTo(w); err != nil {
		slog.WarnContext(r.Context(), "error writing csv", "error", err)
	}
}

func (h *AffordabilityHandler) CompareTerms(w http.ResponseWriter, r *http.Request) {
	var input domain.TermComparisonInput
	if !decodeJSON(w, r, &input) {
		return
	}

	cmp, err := h.terms.CompareTerms(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cmp)
}

func (h *AffordabilityHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	scenarios, err := h.affordability.History(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, scenarios)
}
