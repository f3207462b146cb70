package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := New()

	r.RecordScan("success", 1.5)
	r.RecordScan("success", 0.5)
	r.RecordScan("failed", 0.1)
	r.RecordSourceFailure("dark_pool")
	r.RecordSourceRecords("flow", 120)
	r.RecordInstruments(340)
	r.RecordCandidates("BULLISH", 12)
	r.RecordCandidates("BEARISH", 7)
	r.RecordFlips(3)
	r.RecordFlips(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.scansTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.scansTotal.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.sourceFailures.WithLabelValues("dark_pool")))
	assert.Equal(t, 120.0, testutil.ToFloat64(r.sourceRecords.WithLabelValues("flow")))
	assert.Equal(t, 340.0, testutil.ToFloat64(r.instruments))
	assert.Equal(t, 12.0, testutil.ToFloat64(r.candidates.WithLabelValues("BULLISH")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.flipsTotal))
	assert.Equal(t, 1, testutil.CollectAndCount(r.scanDuration))
}

func TestRecorder_Nil(t *testing.T) {
	var r *Recorder

	assert.NotPanics(t, func() {
		r.RecordScan("success", 1)
		r.RecordSourceFailure("flow")
		r.RecordSourceRecords("flow", 1)
		r.RecordInstruments(1)
		r.RecordCandidates("BULLISH", 1)
		r.RecordFlips(1)
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecorder_Handler(t *testing.T) {
	r := New()
	r.RecordScan("success", 2)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `smartmoney_scans_total{status="success"} 1`))
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.RecordFlips(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(a.flipsTotal))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.flipsTotal))
	assert.NotSame(t, a.Registry(), b.Registry())
}
