package onboarding

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/wealthdesk/onboarding/pkg/wizard"
)

type contextKey string

const SessionKey contextKey = "onboardingSession"

var ErrNoSession = errors.New("no onboarding session in context")

// CurrentController retrieves the session's controller from the context. Returns ErrNoSession if not present.
func CurrentController(ctx context.Context) (*wizard.Controller, error) {
	controller, ok := ctx.Value(SessionKey).(*wizard.Controller)
	if !ok {
		log.Trace("onboarding session not found in context")
		return nil, ErrNoSession
	}
	return controller, nil
}

func WithController(ctx context.Context, controller *wizard.Controller) context.Context {
	return context.WithValue(ctx, SessionKey, controller)
}
