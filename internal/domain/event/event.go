package event

const (
	FriendRequested = "friend_requested"
	FriendAccepted  = "friend_accepted"
	FriendRejected  = "friend_rejected"
	FriendRemoved   = "friend_removed"
	H2HCreated      = "h2h_created"
	H2HAccepted     = "h2h_accepted"
	H2HDeclined     = "h2h_declined"
	H2HCompleted    = "h2h_completed"
)

// Event is pushed to the counterpart of a friend or head-to-head transition.
type Event struct {
	Type        string `json:"type"`
	From        string `json:"from"`
	ChallengeID string `json:"challenge_id,omitempty"`
}
