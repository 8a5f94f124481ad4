package domain

// ChatRequest is one user turn sent by the widget.
type ChatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionID string `json:"sessionId" validate:"required"`
}

// ChatResponse is the reply to a ChatRequest.
type ChatResponse struct {
	Response  string   `json:"response"`
	SessionID string   `json:"sessionId"`
	Sources   []Source `json:"sources,omitempty"`
	Intent    Intent   `json:"-"`
	Degraded  bool     `json:"-"`
}

// TrackOrderRequest associates an order with a session.
type TrackOrderRequest struct {
	OrderID      string         `json:"orderId" validate:"required"`
	SessionID    string         `json:"sessionId" validate:"required"`
	CustomerInfo map[string]any `json:"customerInfo,omitempty"`
}

// TrackOrderResponse reports the (simulated) status of an order.
type TrackOrderResponse struct {
	Success      bool         `json:"success"`
	OrderID      string       `json:"orderId"`
	TrackingInfo TrackingInfo `json:"trackingInfo"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
