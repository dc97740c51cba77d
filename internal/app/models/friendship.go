package models

import "time"

// FriendshipStatus defines the state of a friendship edge
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipRejected FriendshipStatus = "rejected"
)

// Friendship defines a directed friend-request edge between two users, based
// on the 'friendships' table. At most one record exists for any unordered user
// pair; this is enforced by a unique index over the pair.
type Friendship struct {
	ID          int64            `json:"id" db:"id"`
	RequesterID int64            `json:"requesterId" db:"requester_id"`
	RecipientID int64            `json:"recipientId" db:"recipient_id"`
	Status      FriendshipStatus `json:"status" db:"status"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time        `json:"updatedAt" db:"updated_at"`

	Requester *User `json:"requester,omitempty"` // Relation, no db tag
	Recipient *User `json:"recipient,omitempty"` // Relation, no db tag
}

// PeerOf returns the other party of the edge relative to userID.
func (f *Friendship) PeerOf(userID int64) int64 {
	if f.RequesterID == userID {
		return f.RecipientID
	}
	return f.RequesterID
}

// Involves reports whether userID is one of the two parties.
func (f *Friendship) Involves(userID int64) bool {
	return f.RequesterID == userID || f.RecipientID == userID
}
