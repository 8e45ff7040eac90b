package shared

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// payPeriodPattern matches the YYYYMMDD__YYYYMMDD directory keys used by the
// document store. Calendar correctness is deliberately not checked; the key is
// opaque everywhere past this boundary.
var payPeriodPattern = regexp.MustCompile(`^\d{8}__\d{8}$`)

// ValidPayPeriod reports whether key is a well-formed pay period identifier.
func ValidPayPeriod(key string) bool {
	return payPeriodPattern.MatchString(key)
}

// CheckPayPeriod validates key and returns ErrInvalidPayPeriod when malformed.
func CheckPayPeriod(key string) error {
	if !ValidPayPeriod(key) {
		return fmt.Errorf("shared: pay period %q: %w", key, ErrInvalidPayPeriod)
	}
	return nil
}

// PayPeriodLabel renders "YYYY-MM-DD to YYYY-MM-DD" for display.
func PayPeriodLabel(key string) string {
	if !ValidPayPeriod(key) {
		return key
	}
	parts := strings.SplitN(key, "__", 2)
	return fmt.Sprintf("%s to %s", dashDate(parts[0]), dashDate(parts[1]))
}

func dashDate(d string) string {
	return fmt.Sprintf("%s-%s-%s", d[:4], d[4:6], d[6:8])
}

// CurrentPayPeriod computes the 14-day period containing now, anchored to the
// organization's payroll epoch, shifted by offset periods (-1 previous, +1 next).
func CurrentPayPeriod(now time.Time, epoch time.Time, offset int) string {
	days := int(now.Sub(epoch).Hours() / 24)
	periods := days/14 + offset
	start := epoch.AddDate(0, 0, periods*14)
	end := start.AddDate(0, 0, 13)
	return fmt.Sprintf("%s__%s", start.Format("20060102"), end.Format("20060102"))
}
