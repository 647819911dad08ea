package onboarding

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/wealthdesk/onboarding/pkg/ledger"
	"github.com/wealthdesk/onboarding/pkg/wizard"
)

func uuidVar(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}

func indexVar(r *http.Request) (int, error) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		return 0, fmt.Errorf("%w: index must be a number", ledger.ErrInvalidValue)
	}
	return index, nil
}

func collectionVar(r *http.Request) (ledger.Kind, error) {
	name := mux.Vars(r)["collection"]
	kind, ok := collections[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", wizard.ErrUnknownCollection, name)
	}
	return kind, nil
}

// periodQuery reads ?year and ?month, defaulting each to the current one.
func periodQuery(r *http.Request, now ledger.Period) (ledger.Period, error) {
	query := r.URL.Query()
	year := query.Get("year")
	if year == "" {
		year = now.YearString()
	}
	month := query.Get("month")
	if month == "" {
		month = now.MonthString()
	}
	period, err := ledger.PeriodFromStrings(year, month)
	if err != nil {
		return ledger.Period{}, fmt.Errorf("%w: %w", ledger.ErrInvalidValue, err)
	}
	return period, nil
}

// boolQuery reads a boolean query parameter, falling back to def when absent.
func boolQuery(r *http.Request, name string, def bool) (bool, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return def, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be true or false", ledger.ErrInvalidValue, name)
	}
	return parsed, nil
}
