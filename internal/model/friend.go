package model

// Request statuses of a directed friend edge.
const (
	RequestPending  = false
	RequestAccepted = true
)

// FriendRequest is one directed row of the friends table.
type FriendRequest struct {
	Sender        string `json:"sender" db:"sender"`
	Receiver      string `json:"receiver" db:"receiver"`
	RequestStatus bool   `json:"requestStatus" db:"request_status"`
}

// FriendProfile is the counterpart of an edge as seen by one of its users.
type FriendProfile struct {
	RequestStatus bool   `json:"requestStatus" db:"request_status"`
	Username      string `json:"username" db:"username"`
	FirstName     string `json:"firstName" db:"first_name"`
	LastName      string `json:"lastName" db:"last_name"`
	Avatar        string `json:"avatar" db:"avatar"`
}
