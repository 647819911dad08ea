package app

import (
	"github.com/gorilla/mux"
	"github.com/wealthdesk/onboarding/pkg/onboarding"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {
	h := deps.OnboardingHandler

	// Sessions
	r.HandleFunc("/api/onboarding", h.CreateSession).Methods("POST")

	s := r.PathPrefix("/api/onboarding/{sessionId}").Subrouter()
	s.Use(onboarding.SessionMiddleware(deps.Registry))
	s.HandleFunc("", h.GetState).Methods("GET")
	s.HandleFunc("", h.DeleteSession).Methods("DELETE")
	s.HandleFunc("/personal", h.UpdatePersonal).Methods("PUT")
	s.HandleFunc("/personal/export", h.ExportPersonal).Methods("GET")
	s.HandleFunc("/personal/import", h.ImportPersonal).Methods("POST")

	// Navigation and persistence
	s.HandleFunc("/navigation/next", h.Next).Methods("POST")
	s.HandleFunc("/navigation/previous", h.Previous).Methods("POST")
	s.HandleFunc("/navigation/step", h.JumpTo).Methods("PUT")
	s.HandleFunc("/save", h.SaveProgress).Methods("POST")
	s.HandleFunc("/prospect", h.SaveAsProspect).Methods("POST")

	// Ledger items
	s.HandleFunc("/items/{collection}", h.ListItems).Methods("GET")
	s.HandleFunc("/items/{collection}", h.AddItem).Methods("POST")
	s.HandleFunc("/items/{collection}/import", h.ImportItems).Methods("POST")
	s.HandleFunc("/items/{collection}/{index:[0-9]+}", h.UpdateItem).Methods("PATCH")
	s.HandleFunc("/items/{collection}/{index:[0-9]+}", h.RemoveItem).Methods("DELETE")
	s.HandleFunc("/items/{collection}/{index:[0-9]+}/overrides", h.OpenOverrides).Methods("POST")

	// Monthly override editor
	s.HandleFunc("/overrides", h.GetOverrides).Methods("GET")
	s.HandleFunc("/overrides", h.CancelOverrides).Methods("DELETE")
	s.HandleFunc("/overrides/month", h.SetMonthValue).Methods("PUT")
	s.HandleFunc("/overrides/apply-base", h.ApplyBaseToAllMonths).Methods("POST")
	s.HandleFunc("/overrides/save", h.SaveOverrides).Methods("POST")

	// Summary
	s.HandleFunc("/summary", h.GetSummary).Methods("GET")
	s.HandleFunc("/trend", h.GetTrend).Methods("GET")

	// Plans
	s.HandleFunc("/plans", h.ListPlans).Methods("GET")
	s.HandleFunc("/plans/{planId}", h.SelectPlan).Methods("PUT")
	s.HandleFunc("/plans/{planId}", h.DeselectPlan).Methods("DELETE")

	// Drafts
	r.HandleFunc("/api/drafts", h.ListDrafts).Methods("GET")
	r.HandleFunc("/api/drafts/{draftId}/resume", h.ResumeDraft).Methods("POST")
}
