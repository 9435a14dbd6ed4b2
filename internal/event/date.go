package event

import (
	"strings"
	"time"
)

// ISODate is the wire form dates are normalized to for comparison.
const ISODate = "2006-01-02"

// LongDate is the human-readable form shown in notifications.
const LongDate = "January 2, 2006"

// dateLayouts are the display formats the adapters are known to emit.
var dateLayouts = []string{
	ISODate,
	LongDate,
	"Jan 2, 2006",
	"January 2 2006",
	"01/02/2006",
	"1/2/2006",
}

// NormalizeDate reduces a date string to a stable comparison form: parseable
// dates become YYYY-MM-DD, anything else is lowercased and trimmed so at
// least identical unparseable strings still collapse.
func NormalizeDate(text string) string {
	text = strings.TrimSpace(text)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.Format(ISODate)
		}
	}
	return strings.ToLower(text)
}

// FormatDateLong reformats an ISO date into the long human-readable form.
// Unparseable input is passed through unchanged rather than failing.
func FormatDateLong(isoDate string) string {
	t, err := time.Parse(ISODate, strings.TrimSpace(isoDate))
	if err != nil {
		return isoDate
	}
	return t.Format(LongDate)
}
