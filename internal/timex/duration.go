// Package timex extends time.Duration parsing with a day unit so lifetimes
// such as "7d" can be written in config files, env vars and flags.
package timex

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const Day = 24 * time.Hour

// ParseDuration accepts everything time.ParseDuration does plus a whole or
// fractional number of days with a "d" suffix ("7d", "1.5d").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if strings.HasSuffix(s, "d") {
		days, err := strconv.ParseFloat(strings.TrimSuffix(s, "d"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		return time.Duration(days * float64(Day)), nil
	}

	return time.ParseDuration(s)
}

// Duration is a time.Duration that reads from JSON strings ("7d", "15m")
// or raw nanosecond numbers, and implements flag.Value.
type Duration struct {
	time.Duration
}

func (d Duration) String() string {
	return d.Duration.String()
}

// Set implements flag.Value.
func (d *Duration) Set(s string) error {
	v, err := ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		return d.Set(value)
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}
