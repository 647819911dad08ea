package onboarding

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/wealthdesk/onboarding/internal/rest"
	"github.com/wealthdesk/onboarding/pkg/ledger"
	"github.com/wealthdesk/onboarding/pkg/personal_csv"
	"github.com/wealthdesk/onboarding/pkg/wizard"
)

const maxUploadSize = 1 << 20

// ExportPersonal downloads the client's personal details as CSV.
func (handler *Handler) ExportPersonal(w http.ResponseWriter, r *http.Request) {
	c, ok := handler.controller(w, r)
	if !ok {
		return
	}
	csv, err := personal_csv.ExportPersonalInfo(c.Data())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="personal-info.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		log.Errorf("failed to write personal csv: %v", err)
	}
}

// readTable parses the CSV request body. ?headers=false treats the first row as data.
func readTable(w http.ResponseWriter, r *http.Request) (personal_csv.Table, bool) {
	hasHeaders, err := boolQuery(r, "headers", true)
	if err != nil {
		writeError(w, err)
		return personal_csv.Table{}, false
	}
	table, err := personal_csv.Parse(http.MaxBytesReader(w, r.Body, maxUploadSize), hasHeaders)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid CSV file", err.Error())
		return personal_csv.Table{}, false
	}
	return table, true
}

func mappingToDTO(headers []string, mapping personal_csv.Mapping) map[string]string {
	out := make(map[string]string, len(mapping))
	for column, key := range mapping {
		if column < len(headers) {
			out[headers[column]] = key
		}
	}
	return out
}

// ImportPersonal reads the client's details from the first data row of an uploaded CSV.
// Columns are mapped to fields by header name.
func (handler *Handler) ImportPersonal(w http.ResponseWriter, r *http.Request) {
	c, ok := handler.controller(w, r)
	if !ok {
		return
	}
	table, ok := readTable(w, r)
	if !ok {
		return
	}
	if len(table.Rows) == 0 {
		rest.WriteError(w, http.StatusBadRequest, "Invalid CSV file", "the file has no data rows")
		return
	}

	var mapping personal_csv.Mapping
	c.Update(func(data wizard.FormData) wizard.Patch {
		mapping = personal_csv.AutoMap(table.Headers, personal_csv.PersonalTargets(data))
		records := personal_csv.Import(table, mapping, ledger.PeriodOf(handler.clock.Now()))
		return personal_csv.ApplyPersonal(data, records[0])
	})
	rest.WriteJSON(w, http.StatusOK, ImportResultDTO{
		Headers:  table.Headers,
		Mapping:  mappingToDTO(table.Headers, mapping),
		Imported: 1,
		Errors:   []string{},
	})
}

// ImportItems adds one item per CSV row to a collection, tagged with ?year and ?month.
// Rows with invalid values are still added; the problems are listed in the response.
func (handler *Handler) ImportItems(w http.ResponseWriter, r *http.Request) {
	c, ok := handler.controller(w, r)
	if !ok {
		return
	}
	kind, err := collectionVar(r)
	if err != nil {
		writeError(w, err)
		return
	}
	period, err := periodQuery(r, ledger.PeriodOf(handler.clock.Now()))
	if err != nil {
		writeError(w, err)
		return
	}
	table, ok := readTable(w, r)
	if !ok {
		return
	}

	mapping := personal_csv.AutoMap(table.Headers, personal_csv.ItemTargets())
	rows := personal_csv.ItemRows(personal_csv.Import(table, mapping, period))
	var imported int
	var rowErrors error
	err = c.Edit(func(ws *wizard.Workspace) error {
		imported, rowErrors = ws.ImportItems(kind, rows)
		if errors.Is(rowErrors, ledger.ErrEditorAlreadyOpen) {
			return rowErrors
		}
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ImportResultDTO{
		Headers:  table.Headers,
		Mapping:  mappingToDTO(table.Headers, mapping),
		Imported: imported,
		Errors:   errorMessages(rowErrors),
	})
}

func errorMessages(err error) []string {
	if err == nil {
		return []string{}
	}
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		messages := make([]string, 0, len(joined.Unwrap()))
		for _, e := range joined.Unwrap() {
			messages = append(messages, e.Error())
		}
		return messages
	}
	return []string{err.Error()}
}
