package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/atlasmaps/go-mapview/pkg/hub"
	"github.com/atlasmaps/go-mapview/pkg/protocol"
)

func (s *Server) routes() {
	s.app.Get("/", s.handleIndex)
	s.app.Get("/api/state", s.handleAPIState)
	s.app.Post("/api/config", s.handleAPIConfig)

	s.app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	s.app.Get("/ws/touch", websocket.New(func(conn *websocket.Conn) {
		s.touchSocket(conn)
	}))

	s.app.Get("/ws/view", websocket.New(func(conn *websocket.Conn) {
		client := hub.NewClient(s.viewHub, conn)
		client.Run()
	}))
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.SendString(indexHTML)
}

// handleAPIState reports the current camera and engine state.
func (s *Server) handleAPIState(c *fiber.Ctx) error {
	s.mu.Lock()
	state := s.snapshotLocked(s.engine.Flinging())
	mode := s.engine.Mode().String()
	pointers := s.engine.PointersDown()
	s.mu.Unlock()

	return c.JSON(fiber.Map{
		"view":     state,
		"mode":     mode,
		"pointers": pointers,
		"locked":   s.locked.Load(),
		"viewers":  s.viewHub.ClientCount(),
	})
}

// handleAPIConfig applies a gesture configuration update over REST.
func (s *Server) handleAPIConfig(c *fiber.Ctx) error {
	var cfg protocol.ConfigData
	if err := c.BodyParser(&cfg); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid config payload")
	}
	s.handleConfig(&cfg)
	return c.JSON(fiber.Map{"ok": true})
}
