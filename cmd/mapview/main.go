package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/atlasmaps/go-mapview/internal/config"
	"github.com/atlasmaps/go-mapview/internal/log"
	"github.com/atlasmaps/go-mapview/pkg/web"
)

func main() {
	cfg := config.FromEnv()

	addr := flag.String("addr", cfg.Addr, "HTTP listen address")
	dpi := flag.Float64("dpi", cfg.DPI, "Device density for gesture thresholds")
	panning := flag.String("panning", cfg.PanningMode.String(), "Panning mode: free, sticky, stickyFinal")
	lng := flag.Float64("lng", cfg.Lng, "Initial longitude")
	lat := flag.Float64("lat", cfg.Lat, "Initial latitude")
	zoom := flag.Float64("zoom", cfg.Zoom, "Initial zoom level")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg.Addr = *addr
	cfg.DPI = *dpi
	cfg.PanningMode = config.ParsePanningMode(*panning)
	cfg.Lng = *lng
	cfg.Lat = *lat
	cfg.Zoom = *zoom

	if *debug {
		cfg.LogLevel = "debug"
	}
	log.Init(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		cancel()
	}()

	server := web.NewServer(cfg)

	log.Info("starting go-mapview",
		"addr", cfg.Addr,
		"panning", cfg.PanningMode.String(),
		"dpi", cfg.DPI,
		"lng", cfg.Lng, "lat", cfg.Lat, "zoom", cfg.Zoom)

	if err := server.Start(ctx); err != nil {
		log.Error("server exited", "err", err)
		os.Exit(1)
	}
}
