package metrics

import (
	"github.com/tutumagi/crossaoi/config"
	"github.com/tutumagi/crossaoi/logger"
)

// Configure builds the reporters enabled in cfg. The prometheus reporter is
// also returned on its own so the caller can serve it, nil when disabled.
func Configure(serverType string, cfg *config.Config) ([]Reporter, *PrometheusReporter) {
	reporters := make([]Reporter, 0)
	constTags := cfg.GetStringMapString("aoi.metrics.constTags")

	var prom *PrometheusReporter
	if cfg.GetBool("aoi.metrics.prometheus.enabled") {
		logger.Infof("prometheus is enabled, configuring reporter on port %d", cfg.GetInt("aoi.metrics.prometheus.port"))
		prom = GetPrometheusReporter(serverType, cfg)
		reporters = append(reporters, prom)
	} else {
		logger.Info("prometheus is disabled, reporter will not be enabled")
	}

	if cfg.GetBool("aoi.metrics.statsd.enabled") {
		logger.Infof("statsd is enabled, configuring the metrics reporter with host: %s", cfg.GetString("aoi.metrics.statsd.host"))
		sr, err := NewStatsdReporter(cfg, serverType, constTags)
		if err != nil {
			logger.Errorf("failed to start statsd metrics reporter, skipping %v", err)
		} else {
			reporters = append(reporters, sr)
		}
	}
	return reporters, prom
}
