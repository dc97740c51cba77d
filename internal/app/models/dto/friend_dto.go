package dto

import (
	"time"

	"github.com/incampus/backend/internal/app/models"
)

// SendFriendRequestRequest is the payload for sending a friend request
type SendFriendRequestRequest struct {
	ReceiverID int64 `json:"receiverId" binding:"required" example:"42"`
}

// FriendshipResponse is the wire representation of a friendship edge
type FriendshipResponse struct {
	ID          int64        `json:"id"`
	RequesterID int64        `json:"requesterId"`
	RecipientID int64        `json:"recipientId"`
	Status      string       `json:"status" example:"pending"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Requester   *UserSummary `json:"requester,omitempty"`
	Recipient   *UserSummary `json:"recipient,omitempty"`
}

// FriendSuggestion is a ranked candidate produced by the suggestion engine.
// MutualFriends is reserved for a future mutual-connection count and is
// currently always zero.
type FriendSuggestion struct {
	User          UserSummary `json:"user"`
	Relevance     []string    `json:"relevance"`
	Priority      int         `json:"priority" example:"3"`
	MutualFriends int         `json:"mutualFriends" example:"0"`
}

// NewFriendshipResponse builds the wire representation of a friendship edge,
// embedding user summaries when the relations are loaded.
func NewFriendshipResponse(f *models.Friendship) FriendshipResponse {
	resp := FriendshipResponse{
		ID:          f.ID,
		RequesterID: f.RequesterID,
		RecipientID: f.RecipientID,
		Status:      string(f.Status),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
	if f.Requester != nil {
		s := NewUserSummary(f.Requester)
		resp.Requester = &s
	}
	if f.Recipient != nil {
		s := NewUserSummary(f.Recipient)
		resp.Recipient = &s
	}
	return resp
}
