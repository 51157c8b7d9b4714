package domain

import "time"

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// TimeFromPtr returns the pointed-to time, or the zero time when nil.
func TimeFromPtr(p *time.Time) time.Time {
	if p == nil {
		return time.Time{}
	}
	return *p
}

// FloatFromPtrWithDefault returns the first non-nil *float64 value, or the fallback.
func FloatFromPtrWithDefault(fallback float64, ptrs ...*float64) float64 {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}
