package expiry

import (
	"math"
	"time"
)

// Urgency labels, from least to most reassuring.
const (
	UrgencyUnknown  = "unknown"
	UrgencyExpired  = "expired"
	UrgencyCritical = "critical"
	UrgencyWarning  = "warning"
	UrgencySafe     = "safe"
)

// ClassifyUrgency maps an optional expiry date and a reference now to a
// whole-day delta and a label. The delta floors toward the earlier day, so
// an item that expired an hour ago already counts as -1. Absent dates
// degrade to unknown, never an error. Pure function of (date, now); never
// cache the result, now advances.
func ClassifyUrgency(expiry *time.Time, now time.Time) (*int, string) {
	if expiry == nil {
		return nil, UrgencyUnknown
	}
	days := int(math.Floor(expiry.Sub(now).Hours() / 24))
	switch {
	case days < 0:
		return &days, UrgencyExpired
	case days <= 3:
		return &days, UrgencyCritical
	case days <= 7:
		return &days, UrgencyWarning
	default:
		return &days, UrgencySafe
	}
}
