// Package ws streams live session frames to browser clients over a
// websocket and accepts their actions. One connection is one observer;
// the handshake is HELLO -> WELCOME, then the server pushes FRAME
// messages at the configured interval and answers every ACT with an
// ACK.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/talgya/tidewood/internal/config"
	"github.com/talgya/tidewood/internal/engine"
	"github.com/talgya/tidewood/internal/protocol"
)

const (
	writeTimeout   = 5 * time.Second
	readTimeout    = 60 * time.Second
	helloTimeout   = 5 * time.Second
	snapshotRadius = 1200.0
)

// Server upgrades HTTP requests and serves the frame stream.
type Server struct {
	session *engine.Session
	cfg     config.Tuning

	upgrader websocket.Upgrader
	nextID   atomic.Uint64
}

// NewServer creates a websocket server over a session.
func NewServer(s *engine.Session, cfg config.Tuning) *Server {
	return &Server{
		session: s,
		cfg:     cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

// Handler returns the websocket endpoint handler.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// Handshake: must send HELLO first.
		_ = conn.SetReadDeadline(time.Now().Add(helloTimeout))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var hello protocol.HelloMsg
		if err := json.Unmarshal(msg, &hello); err != nil ||
			hello.Type != protocol.TypeHello || hello.ProtocolVersion != protocol.Version {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"),
				time.Now().Add(time.Second))
			return
		}

		sid := fmt.Sprintf("S%d", s.nextID.Add(1))
		welcome := protocol.WelcomeMsg{
			Type:            protocol.TypeWelcome,
			ProtocolVersion: protocol.Version,
			SessionID:       sid,
			WorldParams: protocol.WorldParams{
				Seed:            s.session.Seed(),
				TileSize:        s.cfg.World.TileSize,
				ChunkSize:       s.cfg.World.ChunkSize,
				DayLengthSec:    s.cfg.Server.DayLengthSec,
				FrameIntervalMs: s.cfg.Server.FrameIntervalMs,
			},
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(welcome); err != nil {
			return
		}
		slog.Info("client connected", "session", sid, "client", hello.ClientName)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Writer goroutine: frames on a ticker, acks as they arrive.
		acks := make(chan protocol.AckMsg, 16)
		writeErr := make(chan error, 1)
		go func() {
			interval := time.Duration(s.cfg.Server.FrameIntervalMs) * time.Millisecond
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					writeErr <- ctx.Err()
					return
				case ack := <-acks:
					_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
					if err := conn.WriteJSON(ack); err != nil {
						writeErr <- err
						return
					}
				case <-ticker.C:
					frame := protocol.FrameMsg{
						Type:            protocol.TypeFrame,
						ProtocolVersion: protocol.Version,
						Frame:           s.session.Snapshot(snapshotRadius),
					}
					_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
					if err := conn.WriteJSON(frame); err != nil {
						writeErr <- err
						return
					}
				}
			}
		}()

		// Reader loop: ACT messages until the client goes away.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			var act protocol.ActMsg
			if err := json.Unmarshal(msg, &act); err != nil || act.Type != protocol.TypeAct {
				continue
			}
			select {
			case acks <- s.apply(act):
			default:
				// Client is not draining acks; drop rather than block.
			}
		}

		cancel()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
			time.Now().Add(time.Second))

		select {
		case <-writeErr:
		case <-time.After(500 * time.Millisecond):
		}
		slog.Info("client disconnected", "session", sid)
	}
}

// apply executes one client action against the session.
func (s *Server) apply(act protocol.ActMsg) protocol.AckMsg {
	ack := protocol.AckMsg{
		Type:            protocol.TypeAck,
		ProtocolVersion: protocol.Version,
		AckFor:          act.ID,
	}

	switch act.Action {
	case protocol.ActionMove:
		if !s.session.World().IsWalkable(act.X, act.Y) {
			ack.Code = protocol.CodeNotWalkable
			ack.Message = fmt.Sprintf("(%.0f, %.0f) is not walkable", act.X, act.Y)
			return ack
		}
		s.session.SetPlayer(act.X, act.Y)
		ack.Accepted = true

	case protocol.ActionHarvest:
		if _, ok := s.session.Harvest(act.ObjectID); !ok {
			ack.Code = protocol.CodeUnknownObject
			ack.Message = fmt.Sprintf("no harvestable object with id %d", act.ObjectID)
			return ack
		}
		ack.Accepted = true

	case protocol.ActionCraft:
		if err := s.session.Craft(act.Recipe); err != nil {
			ack.Code = protocol.CodeCraftFailed
			ack.Message = err.Error()
			return ack
		}
		ack.Accepted = true

	default:
		ack.Code = protocol.CodeBadAction
		ack.Message = fmt.Sprintf("unknown action %q", act.Action)
	}
	return ack
}
