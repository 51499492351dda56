// Package web hosts the interactive map demo: a fiber server that feeds
// pointer events from a websocket into the gesture engine and streams the
// resulting camera state back out.
package web

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/atlasmaps/go-mapview/internal/config"
	"github.com/atlasmaps/go-mapview/internal/log"
	"github.com/atlasmaps/go-mapview/pkg/gesture"
	"github.com/atlasmaps/go-mapview/pkg/hub"
	"github.com/atlasmaps/go-mapview/pkg/protocol"
	"github.com/atlasmaps/go-mapview/pkg/view"
)

// tickRate drives the kinetic animation and the state broadcast.
const tickRate = 16 * time.Millisecond

// Server owns one camera and one gesture engine and exposes them over HTTP
// and websockets. Engine and camera calls are serialized by mu; the engine
// itself stays single-threaded as its contract requires.
type Server struct {
	app  *fiber.App
	addr string

	mu     sync.Mutex
	engine *gesture.Engine
	cam    *view.Camera

	// dirty marks that a touch mutated the camera since the last broadcast.
	dirty bool

	// locked suppresses continuous gestures via the interaction listener.
	locked atomic.Bool

	viewHub *hub.Hub
}

// NewServer wires a camera and engine from the given configuration.
func NewServer(cfg config.Config) *Server {
	cam := view.NewCamera(cfg.Width, cfg.Height)
	cam.SetPosition(cfg.Lng, cfg.Lat)
	cam.SetZoom(cfg.Zoom)

	engine := gesture.New(cam)
	engine.SetDPI(cfg.DPI)
	engine.SetPanningMode(cfg.PanningMode)
	engine.SetPanEnabled(cfg.EnablePan)
	engine.SetZoomEnabled(cfg.EnableZoom)
	engine.SetRotateEnabled(cfg.EnableRotate)
	engine.SetTiltEnabled(cfg.EnableTilt)
	engine.SetDoubleTapEnabled(cfg.EnableDoubleTap)
	engine.SetDoubleTapDragEnabled(cfg.EnableDoubleTapDrag)

	s := &Server{
		addr:    cfg.Addr,
		engine:  engine,
		cam:     cam,
		viewHub: hub.New("view"),
	}

	// Clicks are forwarded to spectators; default behaviors stay active.
	engine.SetClickListener(gesture.ClickFunc(func(kind gesture.ClickKind, x, y float64) bool {
		if msg, err := protocol.NewClickMessage(kind.String(), x, y); err == nil {
			if raw, err := msg.Bytes(); err == nil {
				s.viewHub.Broadcast(hub.NewMessage(raw))
			}
		}
		return false
	}))

	// The lock toggle consumes every continuous gesture while set.
	engine.SetInteractionListener(gesture.InteractionFunc(func(panning, zooming, rotating, tilting bool) bool {
		return s.locked.Load()
	}))

	app := fiber.New(fiber.Config{
		AppName:               "go-mapview",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	s.app = app
	s.routes()
	return s
}

// Start runs the hub, the kinetic loop and the HTTP listener until ctx is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	go s.viewHub.Run(ctx)
	go s.runLoop(ctx)

	go func() {
		<-ctx.Done()
		if err := s.app.Shutdown(); err != nil {
			log.Error("server shutdown", "err", err)
		}
	}()

	log.Info("map host listening", "addr", s.addr)
	return s.app.Listen(s.addr)
}

// runLoop advances the kinetic animation at a fixed rate and broadcasts the
// camera state whenever it changed since the last tick.
func (s *Server) runLoop(ctx context.Context) {
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			s.mu.Lock()
			flinging := s.engine.Update(dt)
			changed := flinging || s.dirty
			s.dirty = false
			state := s.snapshotLocked(flinging)
			s.mu.Unlock()

			if changed {
				s.broadcastState(state)
			}
		}
	}
}

// snapshotLocked captures the camera state. Callers hold mu.
func (s *Server) snapshotLocked(flinging bool) protocol.ViewStateData {
	lng, lat := s.cam.LngLat()
	return protocol.ViewStateData{
		Lng:      lng,
		Lat:      lat,
		Zoom:     s.cam.Zoom(),
		YawDeg:   s.cam.Yaw() * 180 / math.Pi,
		PitchDeg: s.cam.Pitch() * 180 / math.Pi,
		Flinging: flinging,
	}
}

func (s *Server) broadcastState(state protocol.ViewStateData) {
	msg, err := protocol.NewViewStateMessage(state)
	if err != nil {
		return
	}
	raw, err := msg.Bytes()
	if err != nil {
		return
	}
	s.viewHub.Broadcast(hub.NewMessage(raw))
}

// handleTouch feeds one pointer event into the engine.
func (s *Server) handleTouch(t *protocol.TouchData) {
	action := gesture.Action(t.Action)
	if action < gesture.ActionPointer1Down || action > gesture.ActionPointer2Up {
		log.Warn("ignoring unknown touch action", "action", t.Action)
		return
	}

	s.mu.Lock()
	s.engine.OnTouch(action, gesture.Pos(t.X1, t.Y1), gesture.Pos(t.X2, t.Y2))
	s.dirty = true
	s.mu.Unlock()
}

// handleViewport resizes the camera to the client's geometry.
func (s *Server) handleViewport(v *protocol.ViewportData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cam.SetViewport(v.Width, v.Height)
	if v.Scale > 0 {
		s.cam.SetPixelScale(v.Scale)
	}
	if v.DPI > 0 {
		s.engine.SetDPI(v.DPI)
	}
	s.dirty = true
}

// handleConfig applies a partial gesture configuration update.
func (s *Server) handleConfig(c *protocol.ConfigData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.Pan != nil {
		s.engine.SetPanEnabled(*c.Pan)
	}
	if c.Zoom != nil {
		s.engine.SetZoomEnabled(*c.Zoom)
	}
	if c.Rotate != nil {
		s.engine.SetRotateEnabled(*c.Rotate)
	}
	if c.Tilt != nil {
		s.engine.SetTiltEnabled(*c.Tilt)
	}
	if c.DoubleTap != nil {
		s.engine.SetDoubleTapEnabled(*c.DoubleTap)
	}
	if c.DoubleTapDrag != nil {
		s.engine.SetDoubleTapDragEnabled(*c.DoubleTapDrag)
	}
	if c.PanningMode != nil {
		s.engine.SetPanningMode(config.ParsePanningMode(*c.PanningMode))
	}
	if c.DPI != nil {
		s.engine.SetDPI(*c.DPI)
	}
	if c.Lock != nil {
		s.locked.Store(*c.Lock)
	}
}

// touchSocket drives the engine from one client connection.
func (s *Server) touchSocket(conn *websocket.Conn) {
	defer conn.Close()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		msg, err := protocol.ParseMessage(raw)
		if err != nil {
			log.Warn("bad touch socket message", "err", err)
			continue
		}

		switch msg.Type {
		case protocol.TypeTouch:
			if t, err := msg.GetTouchData(); err == nil {
				s.handleTouch(t)
			}
		case protocol.TypeViewport:
			if v, err := msg.GetViewportData(); err == nil {
				s.handleViewport(v)
			}
		case protocol.TypeConfig:
			if c, err := msg.GetConfigData(); err == nil {
				s.handleConfig(c)
			}
		case protocol.TypePing:
			var ping protocol.PingData
			if err := msg.ParseData(&ping); err != nil {
				continue
			}
			pong, err := protocol.NewPongMessage(ping.ID, msg.Timestamp, time.Now().UnixMilli())
			if err != nil {
				continue
			}
			if raw, err := pong.Bytes(); err == nil {
				conn.WriteMessage(websocket.TextMessage, raw)
			}
		}
	}
}
