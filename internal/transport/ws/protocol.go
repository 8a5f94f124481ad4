package ws

import "github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"

// Message types from widget to server
const (
	TypeHello      = "hello"
	TypeChat       = "chat"
	TypeTrackOrder = "track_order"
)

// Message types from server to widget
const (
	TypeHelloAck    = "hello_ack"
	TypeReply       = "reply"
	TypeOrderStatus = "order_status"
	TypeError       = "error"
)

// Error codes
const (
	ErrorCodeInvalidMessage  = "invalid_message"
	ErrorCodeSessionRequired = "session_required"
	ErrorCodeInternalError   = "internal_error"
)

// BaseMessage contains common fields for all messages.
type BaseMessage struct {
	Type      string `json:"type"`
	Ts        int64  `json:"ts"`
	RequestID string `json:"request_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// HelloMessage binds the connection to a session. An empty session ID asks
// the server to mint one.
type HelloMessage struct {
	BaseMessage
}

// ChatMessage is one user turn.
type ChatMessage struct {
	BaseMessage
	Message string `json:"message"`
}

// TrackOrderMessage associates an order with the session.
type TrackOrderMessage struct {
	BaseMessage
	OrderID      string         `json:"order_id"`
	CustomerInfo map[string]any `json:"customer_info,omitempty"`
}

// ReplyMessage carries the assistant's answer to every connection of the session.
type ReplyMessage struct {
	BaseMessage
	Response string          `json:"response"`
	Sources  []domain.Source `json:"sources,omitempty"`
}

// OrderStatusMessage answers a TrackOrderMessage.
type OrderStatusMessage struct {
	BaseMessage
	OrderID      string              `json:"order_id"`
	TrackingInfo domain.TrackingInfo `json:"tracking_info"`
}

// ErrorMessage is sent when a request cannot be served.
type ErrorMessage struct {
	BaseMessage
	Code    string `json:"code"`
	Message string `json:"message"`
}
