// Package config provides environment-driven configuration for the map
// host. Flags override environment values; environment values override the
// defaults below.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/atlasmaps/go-mapview/pkg/gesture"
)

// Defaults for the demo host.
const (
	DefaultAddr   = ":8080"
	DefaultLng    = 13.405 // Berlin
	DefaultLat    = 52.52
	DefaultZoom   = 10.0
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// Config holds the resolved host configuration.
type Config struct {
	Addr     string
	LogLevel string

	DPI         float64
	PanningMode gesture.PanningMode

	EnablePan           bool
	EnableZoom          bool
	EnableRotate        bool
	EnableTilt          bool
	EnableDoubleTap     bool
	EnableDoubleTapDrag bool

	// Initial camera placement.
	Lng    float64
	Lat    float64
	Zoom   float64
	Width  float64
	Height float64
}

// FromEnv resolves the configuration from MAPVIEW_* environment variables.
func FromEnv() Config {
	return Config{
		Addr:                envString("MAPVIEW_ADDR", DefaultAddr),
		LogLevel:            envString("MAPVIEW_LOG_LEVEL", "info"),
		DPI:                 envFloat("MAPVIEW_DPI", gesture.DefaultDPI),
		PanningMode:         ParsePanningMode(envString("MAPVIEW_PANNING_MODE", "free")),
		EnablePan:           envBool("MAPVIEW_ENABLE_PAN", true),
		EnableZoom:          envBool("MAPVIEW_ENABLE_ZOOM", true),
		EnableRotate:        envBool("MAPVIEW_ENABLE_ROTATE", true),
		EnableTilt:          envBool("MAPVIEW_ENABLE_TILT", true),
		EnableDoubleTap:     envBool("MAPVIEW_ENABLE_DOUBLE_TAP", true),
		EnableDoubleTapDrag: envBool("MAPVIEW_ENABLE_DOUBLE_TAP_DRAG", true),
		Lng:                 envFloat("MAPVIEW_LNG", DefaultLng),
		Lat:                 envFloat("MAPVIEW_LAT", DefaultLat),
		Zoom:                envFloat("MAPVIEW_ZOOM", DefaultZoom),
		Width:               envFloat("MAPVIEW_WIDTH", DefaultWidth),
		Height:              envFloat("MAPVIEW_HEIGHT", DefaultHeight),
	}
}

// ParsePanningMode maps a config string onto a gesture.PanningMode.
// Unknown values fall back to free panning.
func ParsePanningMode(s string) gesture.PanningMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sticky":
		return gesture.PanningSticky
	case "stickyfinal", "sticky_final":
		return gesture.PanningStickyFinal
	default:
		return gesture.PanningFree
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
