package qualityprobe

import (
	"context"

	"github.com/jonwraymond/trackprobe/health"
)

// Checker reports the service degraded while its most recent computation failed.
func (s *Service) Checker() health.Checker {
	return health.NewCheckerFunc(Component, func(ctx context.Context) health.Result {
		st := s.Stats()
		details := map[string]any{
			"entries":  st.Entries,
			"hits":     st.Hits,
			"misses":   st.Misses,
			"shared":   st.Shared,
			"failures": st.Failures,
		}
		if s.lastFailed.Load() {
			return health.Degraded("last probe failed").WithDetails(details)
		}
		return health.Healthy("ok").WithDetails(details)
	})
}
