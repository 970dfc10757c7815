package model

// Broadcast is the recipient value meaning "everyone in the room".
const Broadcast = "Todos"

// TimeLayout formats Message.Time.
const TimeLayout = "15:04:05"

// MessageType classifies a chat message
type MessageType string

const (
	TypeMessage        MessageType = "message"
	TypePrivateMessage MessageType = "private_message"
	TypeStatus         MessageType = "status"
)

// Status texts emitted on join and leave.
const (
	JoinText  = "entra na sala..."
	LeaveText = "sai da sala..."
)

// Message represents a chat message
type Message struct {
	ID   string      `json:"id"`
	From string      `json:"from"`
	To   string      `json:"to"`
	Text string      `json:"text"`
	Type MessageType `json:"type"`
	Time string      `json:"time"`
}

// VisibleTo reports whether viewer may read m. Public messages and anything
// addressed to Broadcast are visible to everyone; the rest only to the sender
// and the recipient.
func (m Message) VisibleTo(viewer string) bool {
	return m.Type == TypeMessage ||
		m.To == Broadcast ||
		m.To == viewer ||
		m.From == viewer
}

// Event types pushed over the websocket feed.
const (
	EventMessageCreated    = "message_created"
	EventMessageDeleted    = "message_deleted"
	EventParticipantJoined = "participant_joined"
	EventParticipantLeft   = "participant_left"
)

// Event is used for WebSocket notifications
type Event struct {
	Type    string   `json:"type"`
	Message *Message `json:"message,omitempty"`
	ID      string   `json:"id,omitempty"`
	Name    string   `json:"name,omitempty"`
}
