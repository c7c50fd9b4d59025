package entity

// NegotiationState - local view of one draw or rematch offer.
type NegotiationState int

const (
	NegotiationNone NegotiationState = iota
	// NegotiationSent - I proposed and wait for the peer.
	NegotiationSent
	// NegotiationRequested - the peer proposed and waits for me.
	NegotiationRequested
	NegotiationAccepted
	NegotiationDeclined
)

func (that NegotiationState) String() string {
	switch that {
	case NegotiationNone:
		return "none"
	case NegotiationSent:
		return "sent"
	case NegotiationRequested:
		return "requested"
	case NegotiationAccepted:
		return "accepted"
	case NegotiationDeclined:
		return "declined"
	default:
		return "unknown"
	}
}

// IsTransient - accepted and declined revert to none on their own.
func (that NegotiationState) IsTransient() bool {
	return that == NegotiationAccepted || that == NegotiationDeclined
}

type SessionStatus int

const (
	StatusConnecting SessionStatus = iota
	StatusConnected
	StatusDisconnected
	StatusOpponentLeft
	StatusAuthRequired
	StatusAuthFailed
	StatusNotFound
	StatusInternalError
)

func (that SessionStatus) String() string {
	switch that {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusDisconnected:
		return "disconnected"
	case StatusOpponentLeft:
		return "opponent left"
	case StatusAuthRequired:
		return "auth required"
	case StatusAuthFailed:
		return "auth failed"
	case StatusNotFound:
		return "room not found"
	case StatusInternalError:
		return "error"
	default:
		return "unknown"
	}
}

// ChatMessage - one line of room chat.
type ChatMessage struct {
	Content string `json:"content"`
	Player  Marker `json:"player"`
}
