package onboarding

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/wealthdesk/onboarding/internal/rest"
)

// SessionMiddleware resolves the {sessionId} route variable into the session's
// controller and stores it in the request context.
func SessionMiddleware(registry *Registry) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			sessionIdString, ok := mux.Vars(req)["sessionId"]
			if !ok {
				next.ServeHTTP(w, req)
				return
			}
			sessionId, err := uuid.Parse(sessionIdString)
			if err != nil {
				rest.WriteError(w, http.StatusBadRequest, "Invalid session id", err.Error())
				return
			}
			controller, err := registry.Get(sessionId)
			if err != nil {
				if errors.Is(err, ErrSessionNotFound) {
					log.Debugf("onboarding session not found: %s", sessionId)
					rest.WriteError(w, http.StatusNotFound, err.Error(), sessionId.String())
					return
				}
				log.Errorf("failed to get onboarding session: %v", err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, req.WithContext(WithController(req.Context(), controller)))
		})
	}
}
