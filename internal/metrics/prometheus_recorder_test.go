package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/simwiki/internal/foundation/errors"
)

func gather(t *testing.T, reg *prom.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(mfs))
	for _, mf := range mfs {
		out[mf.GetName()] = mf
	}
	return out
}

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObservePageDuration("character", 2*time.Millisecond)
	pr.IncPageResult("character", ResultSuccess)
	pr.IncPageResult("character", ResultSuccess)
	pr.IncPageResult("trait", ResultSkipped)
	pr.ObserveRunDuration(500 * time.Millisecond)
	pr.IncRunOutcome(OutcomeSuccess)
	pr.SetEntities(17)
	pr.SetBrokenLinks(2)

	mfs := gather(t, reg)

	results := mfs["simwiki_page_results_total"]
	require.NotNil(t, results)
	counts := map[string]float64{}
	for _, m := range results.GetMetric() {
		labels := map[string]string{}
		for _, l := range m.GetLabel() {
			labels[l.GetName()] = l.GetValue()
		}
		counts[labels["kind"]+"/"+labels["result"]] = m.GetCounter().GetValue()
	}
	assert.InDelta(t, 2, counts["character/success"], 0)
	assert.InDelta(t, 1, counts["trait/skipped"], 0)

	entities := mfs["simwiki_snapshot_entities"]
	require.NotNil(t, entities)
	assert.InDelta(t, 17, entities.GetMetric()[0].GetGauge().GetValue(), 0)

	broken := mfs["simwiki_broken_links"]
	require.NotNil(t, broken)
	assert.InDelta(t, 2, broken.GetMetric()[0].GetGauge().GetValue(), 0)

	assert.Contains(t, mfs, "simwiki_page_duration_seconds")
	assert.Contains(t, mfs, "simwiki_run_duration_seconds")
	assert.Contains(t, mfs, "simwiki_run_outcomes_total")
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.SetEntities(4)

	path := filepath.Join(t.TempDir(), "simwiki.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "simwiki_snapshot_entities 4")
}

func TestWriteTextfile_BadDirectory(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg)

	err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "simwiki.prom"), reg)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
}
