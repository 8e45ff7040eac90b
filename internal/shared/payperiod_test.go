package shared

import (
	"errors"
	"testing"
	"time"
)

func TestValidPayPeriod(t *testing.T) {
	cases := []struct {
		key  string
		want bool
	}{
		{"20240909__20240922", true},
		{"20250106__20250119", true},
		{"20240909_20240922", false},
		{"2024-09-09__2024-09-22", false},
		{"20240909__2024092", false},
		{"", false},
		{"../etc/passwd", false},
	}
	for _, c := range cases {
		if got := ValidPayPeriod(c.key); got != c.want {
			t.Fatalf("ValidPayPeriod(%q) = %v, want %v", c.key, got, c.want)
		}
	}
}

func TestCheckPayPeriod(t *testing.T) {
	if err := CheckPayPeriod("20240909__20240922"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := CheckPayPeriod("bogus")
	if !errors.Is(err, ErrInvalidPayPeriod) {
		t.Fatalf("expected ErrInvalidPayPeriod, got %v", err)
	}
}

func TestPayPeriodLabel(t *testing.T) {
	if got := PayPeriodLabel("20240909__20240922"); got != "2024-09-09 to 2024-09-22" {
		t.Fatalf("unexpected label %q", got)
	}
	// Malformed keys pass through untouched.
	if got := PayPeriodLabel("bogus"); got != "bogus" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestCurrentPayPeriod(t *testing.T) {
	epoch := time.Date(2024, time.September, 9, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		now    time.Time
		offset int
		want   string
	}{
		{"epoch day", epoch, 0, "20240909__20240922"},
		{"last day of first period", time.Date(2024, time.September, 22, 23, 0, 0, 0, time.UTC), 0, "20240909__20240922"},
		{"second period", time.Date(2024, time.September, 23, 8, 0, 0, 0, time.UTC), 0, "20240923__20241006"},
		{"previous", time.Date(2024, time.September, 23, 8, 0, 0, 0, time.UTC), -1, "20240909__20240922"},
		{"next", epoch, 1, "20240923__20241006"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CurrentPayPeriod(c.now, epoch, c.offset); got != c.want {
				t.Fatalf("CurrentPayPeriod = %q, want %q", got, c.want)
			}
		})
	}
}
