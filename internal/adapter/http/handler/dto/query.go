package dto

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/pkg/validator"
)

// DateLayout is the calendar-day format of date query parameters.
const DateLayout = "2006-01-02"

func ReadString(qs url.Values, key, defaultValue string) string {
	s := strings.TrimSpace(qs.Get(key))
	if s == "" {
		return defaultValue
	}
	return s
}

func ReadInt(qs url.Values, key string, defaultValue int, v *validator.Validator) int {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}

	i, err := strconv.Atoi(s)
	if err != nil {
		v.AddError(key, "must be an integer value")
		return defaultValue
	}
	return i
}

// ReadFloat reports whether the parameter was present.
func ReadFloat(qs url.Values, key string, v *validator.Validator) (float64, bool) {
	s := qs.Get(key)
	if s == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		v.AddError(key, "must be a number")
		return 0, false
	}
	return f, true
}

// ReadDate returns the zero time when the parameter is absent.
func ReadDate(qs url.Values, key string, v *validator.Validator) time.Time {
	s := qs.Get(key)
	if s == "" {
		return time.Time{}
	}

	d, err := time.Parse(DateLayout, s)
	if err != nil {
		v.AddError(key, "must be a date in YYYY-MM-DD format")
		return time.Time{}
	}
	return d
}

// ReadList accepts both repeated (?k=a&k=b) and comma separated (?k=a,b) values.
func ReadList(qs url.Values, key string) []string {
	var out []string
	for _, raw := range qs[key] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
