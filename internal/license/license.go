// Package license decides whether the software's usage period has run out.
// The expiration date lives in the document settings; this package only
// reads it and computes new values for it.
package license

import (
	"time"

	"gestorpro/internal/apperr"
	"gestorpro/internal/models"
)

// Periods accepted by ExpirationFor.
const (
	PeriodNone     = "none"
	PeriodWeek     = "7d"
	PeriodMonth    = "1m"
	PeriodHalfYear = "6m"
	PeriodYear     = "1y"
	PeriodCustom   = "custom"
)

// Expired reports whether settings carry an expiration date before now.
func Expired(settings models.Settings, now time.Time) bool {
	return settings.ExpirationDate != nil && now.After(*settings.ExpirationDate)
}

// ExpirationFor computes the expiration date for period starting at now.
// PeriodNone clears it. PeriodCustom uses customDate (YYYY-MM-DD) at
// 23:59:59 in now's location.
func ExpirationFor(period, customDate string, now time.Time) (*time.Time, error) {
	var t time.Time
	switch period {
	case PeriodNone:
		return nil, nil
	case PeriodWeek:
		t = now.AddDate(0, 0, 7)
	case PeriodMonth:
		t = now.AddDate(0, 1, 0)
	case PeriodHalfYear:
		t = now.AddDate(0, 6, 0)
	case PeriodYear:
		t = now.AddDate(1, 0, 0)
	case PeriodCustom:
		if customDate == "" {
			return nil, apperr.Invalid("date", "is required for a custom period")
		}
		d, err := time.ParseInLocation("2006-01-02", customDate, now.Location())
		if err != nil {
			return nil, apperr.Invalid("date", "must be a YYYY-MM-DD date")
		}
		t = time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, now.Location())
	default:
		return nil, apperr.Invalid("period", "unknown period %q", period)
	}
	t = t.UTC()
	return &t, nil
}
