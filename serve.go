package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const (
	serverReadHeaderTimeout = 10 * time.Second
	serverShutdownTimeout   = 30 * time.Second
)

func runServe(configPath string, appLog zerolog.Logger) error {
	conf, err := parseConfig(configPath)
	if err != nil {
		return fmt.Errorf("cannot parse config: %w", err)
	}

	ctx, cancel := makeRootContext()
	defer cancel()

	zono, err := makeZonographer(conf, afero.NewOsFs(), newLogger())
	if err != nil {
		return fmt.Errorf("cannot create zonographer: %w", err)
	}

	defer zono.Shutdown()

	prometheus.MustRegister(newUsageStatsCollector(zono))

	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", instrumentHandler(zono))

	listener, err := net.Listen("tcp", conf.GetListen())
	if err != nil {
		return fmt.Errorf("cannot start listener: %w", err)
	}

	server := &http.Server{
		Handler:           newBasicAuthMiddleware(mux, conf.BasicAuth),
		ReadHeaderTimeout: serverReadHeaderTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		// a failure is logged by loader and can be retried with
		// POST /dataset/retry
		if err := zono.Prepare(ctx); err == nil {
			appLog.Debug().Msg("Dataset is ready")
		}
	}()

	go func() {
		<-ctx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
		defer shutdownCancel()

		server.Shutdown(shutdownCtx) // nolint: errcheck
	}()

	appLog.Info().Str("listen", listener.Addr().String()).Msg("Start server")

	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server has failed: %w", err)
	}

	return nil
}
