package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryRequest(t *testing.T, query string) *http.Request {
	t.Helper()
	return httptest.NewRequest(http.MethodGet, "/api/analytics/summary"+query, nil)
}

func TestResolveAnalyticsDateRangeDefaults(t *testing.T) {
	from, to, errMsg := resolveAnalyticsDateRange(summaryRequest(t, ""))

	require.Empty(t, errMsg)
	now := time.Now().UTC()
	assert.Equal(t, now.Year(), from.Year())
	assert.Equal(t, now.Month(), from.Month())
	assert.Equal(t, 1, from.Day())
	assert.WithinDuration(t, now, to, time.Minute)
}

func TestResolveAnalyticsDateRangeExplicit(t *testing.T) {
	from, to, errMsg := resolveAnalyticsDateRange(summaryRequest(t, "?from=2026-01-01&to=2026-06-30"))

	require.Empty(t, errMsg)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), to)
}

func TestResolveAnalyticsDateRangeRejectsBadInput(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{"bad from", "?from=soon"},
		{"bad to", "?to=never"},
		{"inverted range", "?from=2026-06-01&to=2026-01-01"},
		{"range too long", "?from=2024-01-01&to=2026-06-01"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, errMsg := resolveAnalyticsDateRange(summaryRequest(t, tc.query))
			assert.NotEmpty(t, errMsg)
		})
	}
}

func TestResolveAnalyticsDateRangeMaxSpanBoundary(t *testing.T) {
	// Exactly 730 days is still accepted.
	_, _, errMsg := resolveAnalyticsDateRange(summaryRequest(t, "?from=2024-07-01&to=2026-07-01"))
	assert.Empty(t, errMsg)
}
