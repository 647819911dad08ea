package onboarding

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/wealthdesk/onboarding/internal/rest"
	"github.com/wealthdesk/onboarding/internal/utils"
	"github.com/wealthdesk/onboarding/pkg/draft"
	"github.com/wealthdesk/onboarding/pkg/ledger"
	"github.com/wealthdesk/onboarding/pkg/summary"
	"github.com/wealthdesk/onboarding/pkg/wizard"
)

var collections = map[string]ledger.Kind{
	"income":      ledger.KindIncome,
	"expenses":    ledger.KindExpense,
	"assets":      ledger.KindAsset,
	"liabilities": ledger.KindLiability,
	"policies":    ledger.KindPolicy,
	"goals":       ledger.KindGoal,
}

func collectionName(kind ledger.Kind) string {
	for name, k := range collections {
		if k == kind {
			return name
		}
	}
	return string(kind)
}

type Handler struct {
	registry      *Registry
	store         draft.Store
	trendRenderer summary.TrendRenderer
	clock         utils.Clock
}

func NewHandler(registry *Registry, store draft.Store, trendRenderer summary.TrendRenderer, clock utils.Clock) *Handler {
	return &Handler{registry, store, trendRenderer, clock}
}

// writeError maps domain errors to status codes. Anything unknown is a 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrIndexOutOfRange),
		errors.Is(err, wizard.ErrUnknownCollection),
		errors.Is(err, wizard.ErrUnknownPlan),
		errors.Is(err, draft.ErrDraftNotFound),
		errors.Is(err, ErrSessionNotFound):
		rest.WriteError(w, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, ledger.ErrUnknownField),
		errors.Is(err, ledger.ErrFieldNotSupported),
		errors.Is(err, ledger.ErrUnknownCategory),
		errors.Is(err, ledger.ErrInvalidSubCategory),
		errors.Is(err, ledger.ErrInvalidValue),
		errors.Is(err, ledger.ErrInvalidMonth),
		errors.Is(err, wizard.ErrUnknownStep),
		errors.Is(err, wizard.ErrUnknownFieldKind),
		errors.Is(err, wizard.ErrUnknownSection),
		errors.Is(err, draft.ErrInvalidStatus):
		rest.WriteError(w, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, ledger.ErrEditorClosed),
		errors.Is(err, ledger.ErrEditorAlreadyOpen),
		errors.Is(err, wizard.ErrOperationInProgress),
		errors.Is(err, wizard.ErrAlreadySubmitted):
		rest.WriteError(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, wizard.ErrPersistence):
		rest.WriteError(w, http.StatusBadGateway, "Could not save onboarding", err.Error())
	default:
		log.Errorf("Unexpected error: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *Handler) controller(w http.ResponseWriter, r *http.Request) (*wizard.Controller, bool) {
	c, err := CurrentController(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusNotFound, "Onboarding session not found", err.Error())
		return nil, false
	}
	return c, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	return true
}

// CreateSession starts a new onboarding at the first step.
func (handler *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating onboarding session")
	c := handler.registry.Create()
	rest.WriteJSON(w, http.StatusCreated, stateToDTO(c))
}

func (handler *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	c, ok := handler.controller(w, r)
	if !ok {
		return
	}
	rest.WriteJSON(w, http.StatusOK, stateToDTO(c))
}

func (handler *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	c, ok := handler.controller(w, r)
	if !ok {
		return
	}
	log.Debugf("Discarding onboarding session %s", c.SessionID())
	if !handler.registry.Delete(c.SessionID()) {
		writeError(w, ErrSessionNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdatePersonal replaces the client, spouse, children and custom fields.
func (handler *Handler) UpdatePersonal(w http.ResponseWriter, r *http.Request) {
	c, ok := handler.controller(w, r)
	if !ok {
		return
	}
	var personalDTO PersonalDTO
	if !decodeBody(w, r, &personalDTO) {
		return
	}
	patch, err := DTOToPatch(personalDTO)
	if err != nil {
		writeError(w, err)
		return
	}
	c.Apply(patch)
	rest.WriteJSON(w, http.StatusOK, stateToDTO(c))
}

// Next validates the current step and advances. Validation failures answer 422 with
// the state carrying the field errors.
func (handler *Handler) Next(w http.ResponseWriter, r *http.Request) {
	c, ok := handler.controller(w, r)
	if !ok {
		return
	}
	if err := c.Next(r.Context()); err != nil {
		if errors.Is(err, wizard.ErrValidationFailed) {
			rest.WriteJSON(w, http.StatusUnprocessableEntity, stateToDTO(c))
			return
		}
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, stateToDTO(c))
}

func (handler *Handler) Previous(w http.ResponseWriter, r *http.Request) {
	c, ok := handler.controller(w, r)
	if !ok {
		return
	}
	c.Previous(r.Context())
	rest.WriteJSON(w, http.StatusOK, stateToDTO(c))
}

func (handler *Handler) JumpTo(w http.ResponseWriter, r *http.Request) {
	c, ok := handler.controller(w, r)
	if !ok {
		return
	}
	var stepDTO StepDTO
	if !decodeBody(w, r, &stepDTO) {
		return
	}
	step, err := wizard.ParseStep(stepDTO.Step)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := c.JumpTo(r.Context(), step); err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, stateToDTO(c))
}

func (handler *Handler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	c, ok := handler.controller(w, r)
	if !ok {
		return
	}
	saved, err := c.SaveProgress(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, DraftToDTO(saved))
}

func (handler *Handler) SaveAsProspect(w http.ResponseWriter, r *http.Request) {
	c, ok := handler.controller(w, r)
	if !ok {
		return
	}
	saved, err := c.SaveAsProspect(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, DraftToDTO(saved))
}

func (handler *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	c, ok := handler.controller(w, r)
	if !ok {
		return
	}
	rest.WriteJSON(w, http.StatusOK, plansToDTO(c.Data().SelectedPlanIDs))
}

func (handler *Handler) SelectPlan(w http.ResponseWriter, r *http.Request) {
	c, ok := handler.controller(w, r)
	if !ok {
		return
	}
	if err := c.SelectPlan(mux.Vars(r)["planId"]); err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, plansToDTO(c.Data().SelectedPlanIDs))
}

func (handler *Handler) DeselectPlan(w http.ResponseWriter, r *http.Request) {
	c, ok := handler.controller(w, r)
	if !ok {
		return
	}
	if err := c.DeselectPlan(mux.Vars(r)["planId"]); err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, plansToDTO(c.Data().SelectedPlanIDs))
}

// ListDrafts lists the saved drafts, optionally filtered by ?status=.
func (handler *Handler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing drafts")
	var status draft.Status
	if statusString := r.URL.Query().Get("status"); statusString != "" {
		parsed, err := draft.ParseStatus(statusString)
		if err != nil {
			writeError(w, err)
			return
		}
		status = parsed
	}
	drafts, err := handler.store.List(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	draftsDTO := make([]DraftDTO, 0, len(drafts))
	for _, d := range drafts {
		draftsDTO = append(draftsDTO, DraftToDTO(d))
	}
	rest.WriteJSON(w, http.StatusOK, draftsDTO)
}

// ResumeDraft opens a new session on a saved draft.
func (handler *Handler) ResumeDraft(w http.ResponseWriter, r *http.Request) {
	draftId, err := uuidVar(r, "draftId")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid draft id", err.Error())
		return
	}
	c, err := handler.registry.Resume(r.Context(), draftId)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, stateToDTO(c))
}
