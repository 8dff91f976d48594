package service

// Event types pushed to the live host dashboard
const (
	EventGuestJoined    = "guest_joined"
	EventProgressUpdate = "progress_update"
	EventBatchCompleted = "batch_completed"
	EventReportRefresh  = "report_refresh"
)

// Event types pushed to connected guests
const (
	EventGameToggled = "game_toggled"
)

// Broadcaster pushes events to connected WebSocket clients. Implemented by
// the ws hub; services hold the interface so tests can drop it.
type Broadcaster interface {
	BroadcastToHost(partyID string, msgType string, payload interface{})
	BroadcastToAllGuests(partyID string, msgType string, payload interface{})
}
