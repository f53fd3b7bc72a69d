// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/palash-droid/folio/internal/commands"
	"github.com/palash-droid/folio/internal/output"
	"github.com/palash-droid/folio/internal/session"
)

// ============================================================================
// WEBSOCKET TERMINAL
// ============================================================================

// Client message types.
const (
	MsgInput    = "input"     // submit Content as a line
	MsgTab      = "tab"       // complete Content
	MsgUp       = "up"        // older history entry
	MsgDown     = "down"      // newer history entry
	MsgReset    = "reset"     // start the session over
	MsgRainDone = "rain_done" // the client finished the rain effect
	MsgTerminal = "terminal"  // leave the simple view, running Content if set
)

// Server message types.
const (
	MsgOutput = "output" // Records were appended to the log
	MsgAction = "action" // a control action to play
	MsgClear  = "clear"  // the log was emptied
	MsgMode   = "mode"   // the presentation changed
	MsgError  = "error"  // the message could not be handled
	// MsgInput is also sent by the server to replace the input line.
)

// writeTimeout bounds one websocket write.
const writeTimeout = 5 * time.Second

// Message is one websocket frame in either direction.
type Message struct {
	Type    string          `json:"type"`
	Content string          `json:"content,omitempty"`
	Records []output.Record `json:"records,omitempty"`
	Action  *output.Action  `json:"action,omitempty"`
	Path    string          `json:"path,omitempty"`
	Mode    string          `json:"mode,omitempty"`
	Section output.Target   `json:"section,omitempty"`
}

// handleTerminal upgrades to a websocket bound to the caller's session. The
// current log is replayed first, or the welcome banner for a new session.
func (s *Server) handleTerminal(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.GetOrCreate(r.Context(), cookieSession(r))
	s.setSessionCookie(w, r, sess.ID())

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.origins,
	})
	if err != nil {
		s.logger.Warn("websocket accept failed", zap.Error(err))
		return
	}
	defer ws.CloseNow()
	ws.SetReadLimit(MaxRequestBodySize)

	ctx := r.Context()
	logger := s.logger.With(zap.String("session_id", sess.ID()))
	logger.Info("terminal connected", zap.String("ip", GetClientIP(r)))

	greeting := sess.Output()
	if len(greeting) == 0 {
		greeting = commands.Welcome(s.interp.Deps().Profile)
	}
	if err := s.send(ctx, ws, s.outputMessage(sess, greeting)); err != nil {
		return
	}

	ip := GetClientIP(r)
	for {
		_, data, err := ws.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				logger.Debug("terminal closed by client")
			} else if ctx.Err() == nil {
				logger.Warn("websocket read error", zap.Error(err))
			}
			return
		}

		var replies []Message
		var msg Message
		switch {
		case json.Unmarshal(data, &msg) != nil:
			replies = []Message{{Type: MsgError, Content: "invalid message"}}
		case !s.limiter.Allow(ip):
			replies = []Message{{Type: MsgError, Content: "too many requests"}}
		default:
			replies = s.handleMessage(sess, msg)
		}

		for _, reply := range replies {
			if err := s.send(ctx, ws, reply); err != nil {
				logger.Debug("websocket write failed", zap.Error(err))
				return
			}
		}
	}
}

// handleMessage applies one client message to sess and returns the frames
// to send back.
func (s *Server) handleMessage(sess *session.Session, msg Message) []Message {
	switch msg.Type {
	case MsgInput:
		line, err := validateLine(msg.Content)
		if err != nil {
			if err == errEmptyLine {
				return nil
			}
			return []Message{{Type: MsgError, Content: err.Error()}}
		}
		return s.outcomeMessages(sess, s.interp.Submit(sess, line))

	case MsgTab:
		c := s.interp.Complete(sess, msg.Content)
		switch c.Kind {
		case commands.CompletionUnique:
			return []Message{{Type: MsgInput, Content: c.Input}}
		case commands.CompletionAmbiguous:
			return []Message{s.outputMessage(sess, []output.Record{output.Info(c.Listing())})}
		}
		return nil

	case MsgUp:
		if line, ok := s.interp.HistoryUp(sess); ok {
			return []Message{{Type: MsgInput, Content: line}}
		}
		return nil

	case MsgDown:
		return []Message{{Type: MsgInput, Content: s.interp.HistoryDown(sess)}}

	case MsgReset:
		sess.Reset()
		return []Message{
			{Type: MsgClear},
			s.outputMessage(sess, commands.Welcome(s.interp.Deps().Profile)),
			s.modeMessage(sess),
		}

	case MsgRainDone:
		if !sess.Raining() {
			return nil
		}
		sess.CompleteTransition()
		return []Message{s.modeMessage(sess)}

	case MsgTerminal:
		if msg.Content != "" {
			sess.SetPendingCommand(msg.Content)
		}
		sess.SetMode(session.ModeTerminal)
		replies := []Message{s.modeMessage(sess)}
		if out, ok := s.interp.RunPending(sess); ok {
			replies = append(replies, s.outcomeMessages(sess, out)...)
		}
		return replies
	}
	return []Message{{Type: MsgError, Content: "unknown message type: " + msg.Type}}
}

// outcomeMessages reports a submission: its records, then its action.
func (s *Server) outcomeMessages(sess *session.Session, out commands.Outcome) []Message {
	var replies []Message
	if out.Action == nil {
		return append(replies, s.outputMessage(sess, out.Records))
	}
	switch out.Action.Kind {
	case output.ActionClear:
		replies = append(replies, Message{Type: MsgClear, Path: sess.Path()})
	case output.ActionSwitchMode:
		replies = append(replies, s.outputMessage(sess, out.Records), s.modeMessage(sess))
	default:
		replies = append(replies, s.outputMessage(sess, out.Records),
			Message{Type: MsgAction, Action: out.Action})
	}
	return replies
}

func (s *Server) outputMessage(sess *session.Session, records []output.Record) Message {
	return Message{Type: MsgOutput, Records: records, Path: sess.Path()}
}

func (s *Server) modeMessage(sess *session.Session) Message {
	return Message{
		Type:    MsgMode,
		Mode:    sess.Mode().String(),
		Section: sess.Section(),
		Path:    sess.Path(),
	}
}

func (s *Server) send(ctx context.Context, ws *websocket.Conn, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return ws.Write(ctx, websocket.MessageText, data)
}
