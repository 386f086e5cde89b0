package config

import (
	"os"
	"strings"
	"time"
)

// ReportCacheEnabled turns on redis caching of computed statements.
//
// Set via env:
// - ENABLE_REPORT_CACHE=true
func ReportCacheEnabled() bool {
	return boolFromEnv("ENABLE_REPORT_CACHE")
}

// ReportCacheTTL defaults to 120s (REPORT_CACHE_TTL_SECONDS).
func ReportCacheTTL() time.Duration {
	ttl := intFromEnv("REPORT_CACHE_TTL_SECONDS", 120)
	if ttl <= 0 {
		ttl = 120
	}
	return time.Duration(ttl) * time.Second
}

// ReportSlowThreshold defaults to 500ms (REPORT_SLOW_MS).
func ReportSlowThreshold() time.Duration {
	ms := intFromEnv("REPORT_SLOW_MS", 500)
	if ms <= 0 {
		ms = 500
	}
	return time.Duration(ms) * time.Millisecond
}

// AccountingDimensions lists the gl_entries columns that can be filtered as
// accounting dimensions.
//
// Set via env:
// - ACCOUNTING_DIMENSIONS="department,branch"
func AccountingDimensions() []string {
	raw := os.Getenv("ACCOUNTING_DIMENSIONS")
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var dims []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" || !isSafeColumnName(part) {
			continue
		}
		dims = append(dims, part)
	}
	return dims
}

// dimension names are interpolated into SQL, so only [a-z0-9_] is accepted
func isSafeColumnName(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
			return false
		}
	}
	return true
}
