package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/incampus/backend/internal/app/models"
	"github.com/incampus/backend/internal/app/models/dto"
	"github.com/incampus/backend/internal/pkg/apperrors"
)

// FriendService manages the friendship graph: sending, answering, cancelling
// and removing friend connections.
type FriendService struct {
	friendships FriendshipStore
	users       UserDirectory
	notifier    FriendEventNotifier
}

// NewFriendService creates a new FriendService
func NewFriendService(friendships FriendshipStore, users UserDirectory, notifier FriendEventNotifier) *FriendService {
	return &FriendService{friendships: friendships, users: users, notifier: notifier}
}

// SendRequest creates a pending request from requester to recipient.
// Self requests, unknown recipients and already linked pairs are rejected.
func (s *FriendService) SendRequest(ctx context.Context, requesterID, recipientID int64) (*models.Friendship, error) {
	if requesterID == recipientID {
		return nil, apperrors.ErrSelfFriendRequest
	}

	if _, err := s.users.GetByID(ctx, recipientID); err != nil {
		return nil, err
	}

	friendship, err := s.friendships.Create(ctx, requesterID, recipientID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.FriendRequestSent(ctx, friendship)
	}
	return friendship, nil
}

// Respond accepts or rejects a pending request. Only the recipient may answer.
func (s *FriendService) Respond(ctx context.Context, friendshipID, actorID int64, accept bool) (*models.Friendship, error) {
	friendship, err := s.friendships.GetByID(ctx, friendshipID)
	if err != nil {
		return nil, err
	}
	if friendship.RecipientID != actorID {
		return nil, apperrors.ErrNotRequestRecipient
	}
	if friendship.Status != models.FriendshipPending {
		return nil, apperrors.ErrRequestNotPending
	}

	status := models.FriendshipRejected
	if accept {
		status = models.FriendshipAccepted
	}

	updated, err := s.friendships.UpdateStatus(ctx, friendshipID, status)
	if err != nil {
		return nil, err
	}

	if accept && s.notifier != nil {
		s.notifier.FriendRequestAccepted(ctx, updated)
	}
	return updated, nil
}

// Cancel withdraws a pending request. Only the requester may cancel, and only
// while the request is still pending.
func (s *FriendService) Cancel(ctx context.Context, friendshipID, actorID int64) error {
	friendship, err := s.friendships.GetByID(ctx, friendshipID)
	if err != nil {
		return err
	}
	if friendship.RequesterID != actorID {
		return apperrors.ErrNotRequestSender
	}
	if friendship.Status != models.FriendshipPending {
		return apperrors.ErrRequestNotPending
	}

	return s.friendships.Delete(ctx, friendshipID)
}

// Unfriend removes the accepted friendship between the actor and a peer,
// whichever side originally sent the request.
func (s *FriendService) Unfriend(ctx context.Context, actorID, peerID int64) error {
	friendship, err := s.friendships.FindBetween(ctx, actorID, peerID)
	if err != nil {
		return err
	}
	if friendship.Status != models.FriendshipAccepted {
		return apperrors.ErrFriendshipNotFound
	}

	err = s.friendships.Delete(ctx, friendship.ID)
	if errors.Is(err, apperrors.ErrFriendshipNotFound) {
		// Row vanished between lookup and delete, same outcome for the caller
		return apperrors.ErrFriendshipNotFound
	}
	return err
}

// ListFriends returns the actor's accepted friends as user summaries
func (s *FriendService) ListFriends(ctx context.Context, userID int64) ([]dto.UserSummary, error) {
	friendships, err := s.friendships.ListAccepted(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing friends: %w", err)
	}

	friends := make([]dto.UserSummary, 0, len(friendships))
	for _, f := range friendships {
		peer := f.Requester
		if f.RequesterID == userID {
			peer = f.Recipient
		}
		if peer == nil {
			continue
		}
		friends = append(friends, dto.NewUserSummary(peer))
	}
	return friends, nil
}

// ListPendingRequests returns requests waiting for the actor's answer
func (s *FriendService) ListPendingRequests(ctx context.Context, userID int64) ([]dto.FriendshipResponse, error) {
	return s.listPending(ctx, userID, true)
}

// ListSentRequests returns pending requests the actor has sent
func (s *FriendService) ListSentRequests(ctx context.Context, userID int64) ([]dto.FriendshipResponse, error) {
	return s.listPending(ctx, userID, false)
}

func (s *FriendService) listPending(ctx context.Context, userID int64, asRecipient bool) ([]dto.FriendshipResponse, error) {
	friendships, err := s.friendships.ListPending(ctx, userID, asRecipient)
	if err != nil {
		return nil, fmt.Errorf("error listing pending requests: %w", err)
	}

	responses := make([]dto.FriendshipResponse, 0, len(friendships))
	for _, f := range friendships {
		responses = append(responses, dto.NewFriendshipResponse(f))
	}
	return responses, nil
}
