package itemcache

import (
	"context"
	"fmt"

	"github.com/jonwraymond/trackprobe/health"
)

// Checker reports the cache degraded once probes have failed
// FailureThreshold times in a row. A successful probe resets the count.
func (c *Cache) Checker() health.Checker {
	return health.NewCheckerFunc(Component, func(ctx context.Context) health.Result {
		failures := c.failures.Load()
		details := map[string]any{
			"items":                c.Len(),
			"probes":               c.probes.Load(),
			"consecutive_failures": failures,
		}
		if failures >= int64(c.cfg.FailureThreshold) {
			return health.Degraded(fmt.Sprintf("%d consecutive probe failures", failures)).WithDetails(details)
		}
		return health.Healthy("ok").WithDetails(details)
	})
}
