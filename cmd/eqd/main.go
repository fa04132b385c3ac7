// Command eqd serves the spectral kernel as a JSON-over-HTTP API.
//
// Usage:
//
//	eqd [flags]
//
// Examples:
//
//	eqd
//	eqd -addr :9000
//	eqd -origin https://eq.example.com -origin http://localhost:5173
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-eq/internal/api"
)

type originList []string

func (o *originList) String() string { return fmt.Sprint(*o) }

func (o *originList) Set(v string) error {
	*o = append(*o, v)
	return nil
}

func main() {
	addr := flag.String("addr", ":8000", "listen address")
	dev := flag.Bool("dev", false, "use human-readable development logging")
	var origins originList
	flag.Var(&origins, "origin", "allowed CORS origin (repeatable)")
	flag.Parse()

	log, err := buildLogger(*dev)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	var opts []api.ServerOption
	if len(origins) > 0 {
		opts = append(opts, api.WithAllowedOrigins(origins...))
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           api.NewServer(log, opts...).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", *addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}
}

func buildLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
