package main

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

// scrapeVisits pulls visits_total out of the text exposition body.
func scrapeVisits(t *testing.T, h http.Handler) int {
	t.Helper()
	rr := get(h, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	for _, line := range strings.Split(rr.Body.String(), "\n") {
		if strings.HasPrefix(line, "visits_total ") {
			n, err := strconv.Atoi(strings.TrimPrefix(line, "visits_total "))
			require.NoError(t, err)
			return n
		}
	}
	t.Fatal("visits_total not found in exposition output")
	return 0
}

func TestRootIncrementsVisits(t *testing.T) {
	h := newHandler("pod-0")

	assert.Equal(t, 0, scrapeVisits(t, h))
	for i := 0; i < 3; i++ {
		rr := get(h, "/")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "pod-0")
	}
	assert.Equal(t, 3, scrapeVisits(t, h))
}

func TestMetricsScrapeDoesNotCount(t *testing.T) {
	h := newHandler("pod-0")

	get(h, "/")
	// repeated scrapes must not move the counter
	assert.Equal(t, 1, scrapeVisits(t, h))
	assert.Equal(t, 1, scrapeVisits(t, h))
	assert.Equal(t, 1, scrapeVisits(t, h))
}

func TestHealthz(t *testing.T) {
	h := newHandler("pod-0")

	rr := get(h, "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestOnlyExactRootCounts(t *testing.T) {
	h := newHandler("pod-0")

	rr := get(h, "/somewhere")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, 0, scrapeVisits(t, h))
}
