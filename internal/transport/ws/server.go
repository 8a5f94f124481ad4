// Package ws serves the chat widget over WebSocket.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
)

// ChatService is the part of the orchestrator the socket needs.
type ChatService interface {
	HandleTurn(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error)
	TrackOrder(ctx context.Context, req domain.TrackOrderRequest) (*domain.TrackOrderResponse, error)
}

// Options tune connection keepalive and limits.
type Options struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	PingInterval   time.Duration
	MaxMessageSize int64
	TurnTimeout    time.Duration
}

// DefaultOptions returns the settings used by the server binary.
func DefaultOptions() Options {
	return Options{
		ReadTimeout:    60 * time.Second,
		WriteTimeout:   10 * time.Second,
		PingInterval:   30 * time.Second,
		MaxMessageSize: 64 * 1024,
		TurnTimeout:    30 * time.Second,
	}
}

// Server handles WebSocket connections.
type Server struct {
	opts     Options
	hub      *Hub
	svc      ChatService
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewServer creates a new WebSocket server. allowedOrigins of "*" or an empty
// list accepts any origin.
func NewServer(opts Options, h *Hub, svc ChatService, allowedOrigins []string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		opts:   opts,
		hub:    h,
		svc:    svc,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}

// HandleWebSocket handles WebSocket upgrade and connection lifecycle.
func (s *Server) HandleWebSocket(c echo.Context) error {
	ws, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.logger.Warn("failed to upgrade websocket", zap.Error(err))
		return err
	}

	conn := s.hub.NewConnection(ws)
	s.hub.Register(conn)

	ws.SetReadLimit(s.opts.MaxMessageSize)

	go s.writePump(conn)
	go s.readPump(conn)

	return nil
}

func (s *Server) readPump(conn *Connection) {
	defer func() {
		s.hub.Unregister(conn)
		conn.Close()
	}()

	conn.Conn.SetReadDeadline(time.Now().Add(s.opts.ReadTimeout))
	conn.Conn.SetPongHandler(func(string) error {
		conn.Conn.SetReadDeadline(time.Now().Add(s.opts.ReadTimeout))
		return nil
	})

	for {
		_, message, err := conn.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn("websocket read error", zap.String("conn_id", conn.ID), zap.Error(err))
			}
			break
		}
		s.handleMessage(conn, message)
	}
}

func (s *Server) writePump(conn *Connection) {
	ticker := time.NewTicker(s.opts.PingInterval)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			conn.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.logger.Debug("websocket write failed", zap.String("conn_id", conn.ID), zap.Error(err))
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) handleMessage(conn *Connection, data []byte) {
	var base BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		s.sendError(conn, "", ErrorCodeInvalidMessage, "invalid JSON message")
		return
	}

	switch base.Type {
	case TypeHello:
		s.handleHello(conn, base)
	case TypeChat:
		s.handleChat(conn, data)
	case TypeTrackOrder:
		s.handleTrackOrder(conn, data)
	default:
		s.sendError(conn, base.RequestID, ErrorCodeInvalidMessage, "unknown message type: "+base.Type)
	}
}

func (s *Server) handleHello(conn *Connection, msg BaseMessage) {
	sessionID := strings.TrimSpace(msg.SessionID)
	if sessionID == "" {
		sessionID = "sess_" + uuid.New().String()[:8]
	}
	s.hub.BindSession(conn, sessionID)

	s.hub.SendJSONToConnection(conn, BaseMessage{
		Type:      TypeHelloAck,
		Ts:        time.Now().UnixMilli(),
		RequestID: msg.RequestID,
		SessionID: sessionID,
	})
	s.logger.Debug("hello handshake completed", zap.String("session_id", sessionID))
}

// sessionFor resolves the session a request targets, binding the connection
// when the message names a session and the connection has none yet.
func (s *Server) sessionFor(conn *Connection, requested string) string {
	requested = strings.TrimSpace(requested)
	bound := s.hub.SessionOf(conn)
	if requested != "" && requested != bound {
		s.hub.BindSession(conn, requested)
		return requested
	}
	return bound
}

func (s *Server) handleChat(conn *Connection, data []byte) {
	var msg ChatMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(conn, "", ErrorCodeInvalidMessage, "invalid chat message")
		return
	}
	sessionID := s.sessionFor(conn, msg.SessionID)
	if sessionID == "" {
		s.sendError(conn, msg.RequestID, ErrorCodeSessionRequired, "send hello or include session_id")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.opts.TurnTimeout)
		defer cancel()

		resp, err := s.svc.HandleTurn(ctx, domain.ChatRequest{Message: msg.Message, SessionID: sessionID})
		if err != nil {
			s.replyError(conn, msg.RequestID, err)
			return
		}
		s.hub.BroadcastJSON(sessionID, ReplyMessage{
			BaseMessage: BaseMessage{
				Type:      TypeReply,
				Ts:        time.Now().UnixMilli(),
				RequestID: msg.RequestID,
				SessionID: sessionID,
			},
			Response: resp.Response,
			Sources:  resp.Sources,
		})
	}()
}

func (s *Server) handleTrackOrder(conn *Connection, data []byte) {
	var msg TrackOrderMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(conn, "", ErrorCodeInvalidMessage, "invalid track_order message")
		return
	}
	sessionID := s.sessionFor(conn, msg.SessionID)
	if sessionID == "" {
		s.sendError(conn, msg.RequestID, ErrorCodeSessionRequired, "send hello or include session_id")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.opts.TurnTimeout)
		defer cancel()

		resp, err := s.svc.TrackOrder(ctx, domain.TrackOrderRequest{
			OrderID:      msg.OrderID,
			SessionID:    sessionID,
			CustomerInfo: msg.CustomerInfo,
		})
		if err != nil {
			s.replyError(conn, msg.RequestID, err)
			return
		}
		s.hub.BroadcastJSON(sessionID, OrderStatusMessage{
			BaseMessage: BaseMessage{
				Type:      TypeOrderStatus,
				Ts:        time.Now().UnixMilli(),
				RequestID: msg.RequestID,
				SessionID: sessionID,
			},
			OrderID:      resp.OrderID,
			TrackingInfo: resp.TrackingInfo,
		})
	}()
}

// replyError reports a failed request to the connection that sent it.
// Internal failures are logged and hidden behind a generic message.
func (s *Server) replyError(conn *Connection, requestID string, err error) {
	if domain.IsValidation(err) {
		s.sendError(conn, requestID, ErrorCodeInvalidMessage, err.Error())
		return
	}
	s.logger.Error("websocket request failed", zap.String("conn_id", conn.ID), zap.Error(err))
	s.sendError(conn, requestID, ErrorCodeInternalError, domain.InternalErrorMessage)
}

func (s *Server) sendError(conn *Connection, requestID, code, message string) {
	s.hub.SendJSONToConnection(conn, ErrorMessage{
		BaseMessage: BaseMessage{
			Type:      TypeError,
			Ts:        time.Now().UnixMilli(),
			RequestID: requestID,
			SessionID: s.hub.SessionOf(conn),
		},
		Code:    code,
		Message: message,
	})
}
