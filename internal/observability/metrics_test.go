package observability

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/frota-docs/internal/domain/resolve"
)

func TestMetrics_ObserveDocument(t *testing.T) {
	m := NewMetrics()

	m.ObserveDocument("ponto", true, 120*time.Millisecond)
	m.ObserveDocument("ponto", true, 80*time.Millisecond)
	m.ObserveDocument("carta", false, 50*time.Millisecond)

	assert.Equal(t, float64(2),
		testutil.ToFloat64(m.documentsProcessed.WithLabelValues("ponto", "true")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.documentsProcessed.WithLabelValues("carta", "false")))
}

func TestMetrics_StageObserver(t *testing.T) {
	m := NewMetrics()
	observe := m.StageObserver()

	observe(resolve.StageCodeLookup, resolve.OutcomeNoMatch)
	observe(resolve.StagePhraseExact, resolve.OutcomeMatched)
	observe(resolve.StagePhraseExact, resolve.OutcomeMatched)

	assert.Equal(t, float64(2),
		testutil.ToFloat64(m.stageOutcomes.WithLabelValues(resolve.StagePhraseExact, "matched")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.stageOutcomes.WithLabelValues(resolve.StageCodeLookup, "no_match")))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.ObserveDocument("atestado", true, 30*time.Millisecond)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)

	count, err := testutil.GatherAndCount(m.registry,
		"frotadocs_documents_processed_total",
		"frotadocs_document_processing_seconds",
	)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
