package calendar

import (
	"fmt"
	"time"
)

// thaiMonths holds Thai month names, index 0 = January.
var thaiMonths = [12]string{
	"มกราคม",
	"กุมภาพันธ์",
	"มีนาคม",
	"เมษายน",
	"พฤษภาคม",
	"มิถุนายน",
	"กรกฎาคม",
	"สิงหาคม",
	"กันยายน",
	"ตุลาคม",
	"พฤศจิกายน",
	"ธันวาคม",
}

// FormatDualEra renders the date for display with the Buddhist-era year.
// The Thai locale gets day-month-year field order with Thai month names and
// the year rendered directly in the Buddhist era; every other locale gets the
// English month-day-year convention with the Buddhist year in parentheses.
func FormatDualEra(t time.Time, locale string) string {
	t = t.UTC()
	beYear := Year(t.Year()).Buddhist()

	if locale == "th" {
		return fmt.Sprintf("%d %s %d", t.Day(), thaiMonths[int(t.Month())-1], beYear)
	}

	return fmt.Sprintf("%s %d, %d (%d)", t.Month().String(), t.Day(), t.Year(), beYear)
}
