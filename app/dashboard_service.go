package app

import (
	"time"

	"csvplot/adapters/datareadiness/coercer"
	"csvplot/domain/core"
	"csvplot/internal"
	"csvplot/internal/config"
	"csvplot/ports"
)

// DashboardService holds the state transitions of the dashboard. It keeps no
// session data of its own: every call takes the current state and returns the
// next one.
type DashboardService struct {
	decoder ports.TableDecoder
	coercer *coercer.TypeCoercer
	policy  config.DuplicatePolicy
	logger  *internal.Logger

	newID func() core.UploadID
	now   func() time.Time
}

// NewDashboardService creates a service decoding uploads with decoder
func NewDashboardService(decoder ports.TableDecoder, policy config.DuplicatePolicy) *DashboardService {
	if policy == "" {
		policy = config.DuplicateAppend
	}
	return &DashboardService{
		decoder: decoder,
		coercer: coercer.NewDefaultTypeCoercer(),
		policy:  policy,
		logger:  internal.DefaultLogger.With("Dashboard"),
		newID:   core.NewUploadID,
		now:     time.Now,
	}
}

// Policy returns the duplicate filename policy in effect
func (s *DashboardService) Policy() config.DuplicatePolicy {
	return s.policy
}
