package main

import (
	"time"

	aptamerhdl "aptamer_api/internal/api/aptamer/handler"
	aptamermodels "aptamer_api/internal/api/aptamer/models"
	aptamersvc "aptamer_api/internal/api/aptamer/service"
	basesvc "aptamer_api/internal/api/base/service"
	"aptamer_api/internal/aptamer/engine"
	"aptamer_api/internal/aptamer/metrics"
	"aptamer_api/internal/global"
	"aptamer_api/internal/logger"
	"aptamer_api/internal/plot"
)

// initAptamerHandler dựng engine, plotter, store lịch sử (nếu có) và handler aptamer
func initAptamerHandler() *aptamerhdl.AptamerHandler {
	cfg := global.MongoDB_ServerConfig

	var source engine.RandSource
	if cfg.RandomSeed != 0 {
		source = engine.SeededSource(uint64(cfg.RandomSeed))
	}
	engineCfg := engine.DefaultConfig()
	engineCfg.GenerationAttemptFactor = cfg.GenerationAttemptFactor
	engineCfg.MutationAttemptFactor = cfg.MutationAttemptFactor
	engineCfg.PointMutationAttemptFactor = cfg.PointMutationAttemptFactor

	eng := engine.New(metrics.NewDefaultCalculator(), source, engineCfg).
		WithLogger(logger.GetEngineLogger().WithField("module", "engine"))
	plotter := plot.New(cfg.RNAPlotPath, logger.WithModule("plot"))

	var runs basesvc.BaseServiceMongo[aptamermodels.AptamerRun]
	if coll, ok := global.RegistryCollections.Get(global.MongoDB_ColNames.AptamerRuns); ok {
		runs = basesvc.NewBaseServiceMongo[aptamermodels.AptamerRun](coll)
	}

	svc := aptamersvc.NewAptamerService(eng, plotter, runs, aptamersvc.Config{
		MaxRequestCount:   cfg.MaxRequestCount,
		MaxSequenceLength: cfg.MaxSequenceLength,
		RequestTimeout:    time.Duration(cfg.RequestTimeout) * time.Second,
	}, logger.WithModule("aptamer"))
	return aptamerhdl.NewAptamerHandler(svc)
}
