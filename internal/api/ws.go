package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"vehicle-market-lab/internal/dashboard"
	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/idhash"
	"vehicle-market-lab/internal/observability"
)

// Websocket timing defaults.
const (
	DefaultPingInterval = 30 * time.Second
	writeTimeout        = 10 * time.Second
	maxMessageSize      = 4096
)

// Frame types sent to websocket clients.
const (
	FrameFilters   = "filters"
	FrameDashboard = "dashboard"
	FrameError     = "error"
)

// Frame is one server message of a websocket session.
type Frame struct {
	Type      string                `json:"type"`
	SessionID string                `json:"session_id"`
	Seq       int64                 `json:"seq"`
	FrameID   string                `json:"frame_id"`
	Filters   *domain.FilterOptions `json:"filters,omitempty"`
	Dashboard *domain.Dashboard     `json:"dashboard,omitempty"`
	Error     *ErrorBody            `json:"error,omitempty"`
}

// wsRequest is one client message. Fields absent from the message keep
// the value of the previous request in the session.
type wsRequest struct {
	domain.FilterParams
	IncludeRows bool `json:"include_rows"`
}

// session is the state of one websocket connection.
type session struct {
	id     string
	conn   *websocket.Conn
	logger *zap.Logger

	writeMu sync.Mutex
	seq     int64
}

// handleWS upgrades the connection and runs a filter session.
//
// The session opens with a filters frame and the dashboard for the default
// params. Each client message carries FilterParams JSON and is answered with
// a dashboard frame, or an error frame when the params are rejected. A load
// failure at session start closes the connection.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	sess := &session{
		id:   uuid.NewString(),
		conn: conn,
	}
	sess.logger = s.logger.With(zap.String("session_id", sess.id))

	observability.WSSessionOpened()
	defer observability.WSSessionClosed()
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess.logger.Info("websocket session opened", zap.String("remote", r.RemoteAddr))
	s.runSession(ctx, sess)
	sess.logger.Info("websocket session closed")
}

func (s *Server) runSession(ctx context.Context, sess *session) {
	filters, err := s.views.Filters(ctx)
	if err != nil {
		_ = sess.sendError(statusFor(err), err)
		sess.close(websocket.CloseInternalServerErr, "dataset unavailable")
		return
	}
	if err := sess.send(Frame{Type: FrameFilters, Filters: filters}, ""); err != nil {
		return
	}

	current := wsRequest{FilterParams: filters.Defaults}
	if !s.answer(ctx, sess, current) {
		return
	}

	pongWait := s.opts.PingInterval * 2
	sess.conn.SetReadLimit(maxMessageSize)
	_ = sess.conn.SetReadDeadline(time.Now().Add(pongWait))
	sess.conn.SetPongHandler(func(string) error {
		return sess.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go sess.pingLoop(s.opts.PingInterval, done)

	for {
		_, message, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				sess.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}
		_ = sess.conn.SetReadDeadline(time.Now().Add(pongWait))

		next := current
		next.IncludeRows = false
		if err := json.Unmarshal(message, &next); err != nil {
			if sendErr := sess.sendError(http.StatusBadRequest, fmt.Errorf("%w: decode params: %v", errBadRequest, err)); sendErr != nil {
				return
			}
			continue
		}
		if err := s.validateParams(next.FilterParams); err != nil {
			if sendErr := sess.sendError(statusFor(err), err); sendErr != nil {
				return
			}
			continue
		}

		if !s.answer(ctx, sess, next) {
			return
		}
		current = next
	}
}

// answer computes and sends the dashboard for req.
// Returns false when the connection is no longer writable.
func (s *Server) answer(ctx context.Context, sess *session, req wsRequest) bool {
	d, err := s.views.Compute(ctx, req.FilterParams, dashboard.Options{
		IncludeRows: req.IncludeRows,
		RowsLimit:   s.opts.IncludeRowsLimit,
	})
	if err != nil {
		return sess.sendError(statusFor(err), err) == nil
	}
	return sess.send(Frame{Type: FrameDashboard, Dashboard: d}, d.ViewID) == nil
}

// send stamps the frame with the session sequence and writes it.
func (sess *session) send(f Frame, viewID string) error {
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()

	sess.seq++
	f.SessionID = sess.id
	f.Seq = sess.seq
	f.FrameID = idhash.ComputeFrameID(sess.id, viewID, sess.seq)

	_ = sess.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := sess.conn.WriteJSON(f); err != nil {
		sess.logger.Debug("websocket write failed", zap.Error(err))
		return err
	}
	observability.RecordWSFrame(f.Type)
	return nil
}

func (sess *session) sendError(code int, err error) error {
	return sess.send(Frame{Type: FrameError, Error: &ErrorBody{Code: code, Message: err.Error()}}, "")
}

func (sess *session) close(code int, reason string) {
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()

	msg := websocket.FormatCloseMessage(code, reason)
	_ = sess.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeTimeout))
}

// pingLoop sends periodic ping frames to keep the connection alive.
func (sess *session) pingLoop(interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			sess.writeMu.Lock()
			err := sess.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
			sess.writeMu.Unlock()
			if err != nil {
				// Reader notices the dead connection.
				return
			}
		}
	}
}
