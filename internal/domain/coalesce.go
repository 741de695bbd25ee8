package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// DurationFromPtrWithDefault returns the first non-nil *Duration value, or the fallback.
func DurationFromPtrWithDefault(fallback Duration, ptrs ...*Duration) Duration {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}
