package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/9seconds/zonographer/zonelib"
	"github.com/spf13/afero"
)

func makeRootContext() (context.Context, context.CancelFunc) {
	rootCtx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)

	go func() {
		for range sigChan {
			cancel()
		}
	}()

	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	return rootCtx, cancel
}

func makeDatasetSource(conf *config, fs afero.Fs) zonelib.DatasetSource {
	if conf.Dataset.GetURL() != "" {
		return zonelib.NewHTTPSource(makeNewHTTPClient(conf.Dataset), conf.Dataset.GetURL())
	}

	return zonelib.NewFileSource(fs, conf.Dataset.GetPath())
}

func makeNewHTTPClient(conf configDataset) zonelib.HTTPClient {
	httpClient := &http.Client{
		Timeout: conf.GetHTTPTimeout(),
	}

	return zonelib.NewHTTPClient(httpClient,
		"zonographer/"+version,
		conf.GetRateLimitInterval(),
		conf.GetRateLimitBurst(),
		DefaultCircuitBreakerOpenThreshold,
		DefaultCircuitBreakerHalfOpenTimeout,
		DefaultCircuitBreakerResetTimeout)
}

func makeZonographer(conf *config, fs afero.Fs, logger zonelib.Logger) (*zonelib.Zonographer, error) {
	loader := zonelib.NewIndexLoader(makeDatasetSource(conf, fs), logger)

	return zonelib.NewZonographer(loader, logger, zonelib.Opts{
		MaxFallbackDistance: conf.GetMaxFallbackDistance(),
		WorkerPoolSize:      conf.GetWorkerPoolSize(),
		CacheSize:           conf.Cache.GetSize(),
		CacheTTL:            conf.Cache.GetTTL(),
	})
}
