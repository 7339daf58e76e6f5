package metrics

import (
	"io/ioutil"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutumagi/crossaoi/metrics/mocks"
)

func TestPrometheusReportCount(t *testing.T) {
	p := NewPrometheusReporter("aoisim", map[string]string{"region": "eu"})

	assert.NoError(t, p.ReportCount(SwapCount, map[string]string{"space": "s1", "axis": "x"}, 3))
	assert.NoError(t, p.ReportCount(SwapCount, map[string]string{"space": "s1", "axis": "x"}, 2))
	assert.Equal(t, float64(5), testutil.ToFloat64(p.countReportersMap[SwapCount].WithLabelValues("s1", "x")))
}

func TestPrometheusReportMissingLabels(t *testing.T) {
	p := NewPrometheusReporter("aoisim", nil)

	// the axis label is filled with an empty value
	assert.NoError(t, p.ReportCount(SwapCount, map[string]string{"space": "s1"}, 1))
	assert.Equal(t, float64(1), testutil.ToFloat64(p.countReportersMap[SwapCount].WithLabelValues("s1", "")))
}

func TestPrometheusReportGauge(t *testing.T) {
	p := NewPrometheusReporter("aoisim", nil)
	assert.NoError(t, p.ReportGauge(NodeCount, map[string]string{"space": "s1"}, 7))
	assert.NoError(t, p.ReportGauge(NodeCount, map[string]string{"space": "s1"}, 4))
	assert.Equal(t, float64(4), testutil.ToFloat64(p.gaugeReportersMap[NodeCount].WithLabelValues("s1")))
}

func TestPrometheusUnknownMetric(t *testing.T) {
	p := NewPrometheusReporter("aoisim", nil)
	assert.Equal(t, ErrMetricNotKnown, p.ReportCount("nope", nil, 1))
	assert.Equal(t, ErrMetricNotKnown, p.ReportGauge("nope", nil, 1))
	assert.Equal(t, ErrMetricNotKnown, p.ReportSummary("nope", nil, 1))
}

func TestPrometheusHandler(t *testing.T) {
	p := NewPrometheusReporter("aoisim", nil)
	require.NoError(t, p.ReportSummary(TickTime, map[string]string{"space": "s1"}, 1.5))

	rec := httptest.NewRecorder()
	p.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := ioutil.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "crossaoi_space_aoi_tick_time"))
}

func TestReportToAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r1 := mocks.NewMockReporter(ctrl)
	r2 := mocks.NewMockReporter(ctrl)
	reporters := []Reporter{r1, r2}
	tags := map[string]string{"space": "s1"}

	r1.EXPECT().ReportCount(InsertCount, tags, float64(2))
	r2.EXPECT().ReportCount(InsertCount, tags, float64(2))
	ReportCountToAll(reporters, InsertCount, tags, 2)

	// zero deltas are skipped
	ReportCountToAll(reporters, RemoveCount, tags, 0)

	r1.EXPECT().ReportGauge(NodeCount, tags, float64(9))
	r2.EXPECT().ReportGauge(NodeCount, tags, float64(9))
	ReportGaugeToAll(reporters, NodeCount, tags, 9)

	r1.EXPECT().ReportSummary(TickTime, tags, gomock.Any())
	r2.EXPECT().ReportSummary(TickTime, tags, gomock.Any())
	ReportTimingToAll(reporters, TickTime, tags, time.Now())
}
