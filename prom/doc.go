// Package prom exports catsim pipeline metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	res, err := catsim.LeveledJaccardSimilarity(ctx, src,
//	    catsim.WithLevels(3),
//	    catsim.WithMetricsCollector(prom.NewCollector(reg)),
//	)
package prom
