package types

// MessageType defines the type of WebSocket message
type MessageType string

const (
	ConnectionStatus MessageType = "connection_status"
	MarketUpdate     MessageType = "market_update"
	BacktestResult   MessageType = "backtest_result"
	AnalysisUpdate   MessageType = "analysis_update"
	Notification     MessageType = "notification"
	Error            MessageType = "error"
)

// WebSocketMessage represents a WebSocket message
type WebSocketMessage struct {
	Type MessageType `json:"type"`
	Data interface{} `json:"data"`
}

// ConnectionStatusData represents connection status message data
type ConnectionStatusData struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// Broadcaster is the narrow interface engines and services use to push
// updates to connected dashboard clients.
type Broadcaster interface {
	BroadcastMessage(msgType MessageType, data interface{})
}
