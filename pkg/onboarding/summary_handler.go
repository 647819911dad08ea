package onboarding

import (
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/wealthdesk/onboarding/internal/rest"
	"github.com/wealthdesk/onboarding/pkg/ledger"
	"github.com/wealthdesk/onboarding/pkg/summary"
)

// GetSummary returns the dashboard figures for ?year and ?month, computed over the
// items the lists show for the same period and ?view.
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	c, ok := handler.controller(w, r)
	if !ok {
		return
	}
	period, err := periodQuery(r, ledger.PeriodOf(handler.clock.Now()))
	if err != nil {
		writeError(w, err)
		return
	}
	mode, err := ledger.ParseViewMode(r.URL.Query().Get("view"))
	if err != nil {
		writeError(w, err)
		return
	}
	shown := c.Data().Ledger.Filter(period.YearString(), period.MonthString(), mode)
	rest.WriteJSON(w, http.StatusOK, summary.Snapshot(shown, period))
}

// GetTrend returns the twelve monthly totals of ?year over the yearly view, as CSV
// when the client accepts text/csv.
func (handler *Handler) GetTrend(w http.ResponseWriter, r *http.Request) {
	c, ok := handler.controller(w, r)
	if !ok {
		return
	}
	year := handler.clock.Now().Year()
	if yearString := r.URL.Query().Get("year"); yearString != "" {
		parsed, err := strconv.Atoi(yearString)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid year", "year must be a number")
			return
		}
		year = parsed
	}
	shown := c.Data().Ledger.Filter(strconv.Itoa(year), "", ledger.ViewYearly)
	trend := summary.YearlyTrend(shown, year)

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := handler.trendRenderer.RenderTrend(trend)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write trend csv: %v", err)
		}
		return
	}
	rest.WriteJSON(w, http.StatusOK, trend)
}
