package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Carmen-Shannon/oxy-scroll/engine/layout"
	"github.com/Carmen-Shannon/oxy-scroll/engine/posestream"
)

func main() {
	cfg, err := posestream.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	spec, err := layout.LoadFrom(cfg.SceneDir, cfg.Scene)
	if err != nil {
		log.Fatalf("load layout: %v", err)
	}
	scrollCfg, err := spec.ScrollConfig()
	if err != nil {
		log.Fatalf("scroll config: %v", err)
	}

	server := posestream.NewServer(scrollCfg, cfg.ServerOptions()...)
	httpServer := &http.Server{
		Addr:              cfg.Address,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[PoseStream] serving %q on %s", spec.Name, cfg.Address)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")

	// Hijacked websocket connections are not tracked by Shutdown.
	server.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
}
