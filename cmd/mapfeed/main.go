// mapfeed replays a recorded touch trace against a running map host.
//
// The trace is a JSON-lines file; each line is a protocol TouchData object
// whose offset_ms field positions the event on the trace timeline:
//
//	{"action":0,"x1":400,"y1":300,"x2":-1,"y2":-1,"offset_ms":0}
//	{"action":2,"x1":430,"y1":300,"x2":-1,"y2":-1,"offset_ms":16}
//	{"action":4,"x1":700,"y1":300,"x2":-1,"y2":-1,"offset_ms":160}
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"github.com/atlasmaps/go-mapview/internal/log"
	"github.com/atlasmaps/go-mapview/pkg/protocol"
)

func main() {
	url := flag.String("url", "ws://localhost:8080/ws/touch", "Touch websocket URL")
	trace := flag.String("trace", "", "JSON-lines trace file (required)")
	speed := flag.Float64("speed", 1.0, "Replay speed multiplier")
	flag.Parse()

	log.Init("info")

	if *trace == "" {
		fmt.Fprintln(os.Stderr, "Usage: mapfeed -trace events.jsonl [-url ws://...] [-speed 2]")
		os.Exit(1)
	}
	if *speed <= 0 {
		*speed = 1
	}

	events, err := readTrace(*trace)
	if err != nil {
		log.Error("failed to read trace", "err", err)
		os.Exit(1)
	}
	if len(events) == 0 {
		log.Warn("trace is empty", "file", *trace)
		return
	}

	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		log.Error("failed to connect", "url", *url, "err", err)
		os.Exit(1)
	}
	defer conn.Close()

	log.Info("replaying trace", "file", *trace, "events", len(events), "speed", *speed)

	start := time.Now()
	for _, ev := range events {
		due := time.Duration(float64(ev.OffsetMs)/(*speed)) * time.Millisecond
		if wait := due - time.Since(start); wait > 0 {
			time.Sleep(wait)
		}

		msg, err := protocol.NewTouchMessage(ev.Action, ev.X1, ev.Y1, ev.X2, ev.Y2)
		if err != nil {
			log.Error("failed to encode event", "err", err)
			continue
		}
		raw, err := msg.Bytes()
		if err != nil {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			log.Error("write failed", "err", err)
			os.Exit(1)
		}
	}

	log.Info("trace complete", "elapsed", time.Since(start).Round(time.Millisecond))
}

func readTrace(path string) ([]protocol.TouchData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var events []protocol.TouchData
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Bytes()
		if len(text) == 0 {
			continue
		}
		var ev protocol.TouchData
		if err := json.Unmarshal(text, &ev); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		events = append(events, ev)
	}
	return events, scanner.Err()
}
