package engine

import "time"

// IST is the fixed calendar/timezone convention used for all date-window
// comparisons in this domain (UTC+05:30).
var IST = time.FixedZone("IST", (5*60+30)*60)

// DateIST truncates an instant to its IST calendar date at midnight.
// Offer activity windows compare calendar dates, not UTC instants.
func DateIST(t time.Time) time.Time {
	y, m, d := t.In(IST).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, IST)
}
