package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/incampus/backend/internal/app/models"
	"github.com/incampus/backend/internal/app/models/dto"
	"github.com/incampus/backend/internal/pkg/apperrors"
	"github.com/incampus/backend/internal/pkg/realtime"
)

// stubNotificationStore is an in-memory NotificationStore
type stubNotificationStore struct {
	rows       map[int64]*models.Notification
	nextID     int64
	failCreate bool
}

func newStubNotificationStore() *stubNotificationStore {
	return &stubNotificationStore{rows: make(map[int64]*models.Notification)}
}

func (s *stubNotificationStore) Create(_ context.Context, n *models.Notification) error {
	if s.failCreate {
		return errors.New("insert failed")
	}
	s.nextID++
	n.ID = s.nextID
	n.CreatedAt = time.Now()
	s.rows[n.ID] = n
	return nil
}

func (s *stubNotificationStore) GetByID(_ context.Context, id int64) (*models.Notification, error) {
	n, ok := s.rows[id]
	if !ok {
		return nil, apperrors.ErrNotificationNotFound
	}
	return n, nil
}

func (s *stubNotificationStore) List(_ context.Context, recipientID int64, unreadOnly bool, limit, offset int) ([]*models.Notification, error) {
	var out []*models.Notification
	for _, n := range s.rows {
		if n.RecipientID == recipientID && (!unreadOnly || !n.IsRead) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *stubNotificationStore) Count(_ context.Context, recipientID int64, unreadOnly bool) (int64, error) {
	var count int64
	for _, n := range s.rows {
		if n.RecipientID == recipientID && (!unreadOnly || !n.IsRead) {
			count++
		}
	}
	return count, nil
}

func (s *stubNotificationStore) MarkRead(_ context.Context, recipientID int64, ids []int64) (int64, error) {
	var updated int64
	for _, id := range ids {
		if n, ok := s.rows[id]; ok && n.RecipientID == recipientID && !n.IsRead {
			n.IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (s *stubNotificationStore) MarkAllRead(_ context.Context, recipientID int64) (int64, error) {
	var updated int64
	for _, n := range s.rows {
		if n.RecipientID == recipientID && !n.IsRead {
			n.IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (s *stubNotificationStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.rows[id]; !ok {
		return apperrors.ErrNotificationNotFound
	}
	delete(s.rows, id)
	return nil
}

// recordingPublisher captures realtime pushes
type recordingPublisher struct {
	targets []int64
	events  []realtime.Event
}

func (p *recordingPublisher) Publish(userID int64, event realtime.Event) {
	p.targets = append(p.targets, userID)
	p.events = append(p.events, event)
}

func notificationFixture() (*NotificationService, *stubNotificationStore, *recordingPublisher) {
	users := newStubUserDirectory(
		studentUser(1, "Asha", "BWU/BCA/23/101"),
		studentUser(2, "Rohit", "BWU/BCA/23/102"),
	)
	store := newStubNotificationStore()
	publisher := &recordingPublisher{}
	return NewNotificationService(store, users, publisher), store, publisher
}

func eventPayload(t *testing.T, ev realtime.Event) dto.NotificationEvent {
	t.Helper()
	payload, ok := ev.Data.(dto.NotificationEvent)
	if !ok {
		t.Fatalf("event data is %T, want dto.NotificationEvent", ev.Data)
	}
	return payload
}

func TestFriendRequestSentPushesNamedEvent(t *testing.T) {
	svc, store, publisher := notificationFixture()

	svc.FriendRequestSent(context.Background(), &models.Friendship{RequesterID: 1, RecipientID: 2})

	if len(store.rows) != 1 {
		t.Fatalf("expected one stored notification, got %d", len(store.rows))
	}
	if len(publisher.events) != 1 {
		t.Fatalf("expected one push, got %d", len(publisher.events))
	}
	if publisher.targets[0] != 2 {
		t.Errorf("pushed to user %d, want recipient 2", publisher.targets[0])
	}
	if publisher.events[0].Name != "friend:request" {
		t.Errorf("event name = %q, want friend:request", publisher.events[0].Name)
	}
	payload := eventPayload(t, publisher.events[0])
	if payload.FromUser == nil || payload.FromUser.ID != 1 || payload.FromUser.Name != "Asha" {
		t.Errorf("fromUser = %+v, want sender 1 Asha", payload.FromUser)
	}
}

func TestFriendRequestAcceptedPushesNamedEvent(t *testing.T) {
	svc, _, publisher := notificationFixture()

	svc.FriendRequestAccepted(context.Background(), &models.Friendship{RequesterID: 1, RecipientID: 2})

	if len(publisher.events) != 1 || publisher.events[0].Name != "friend:accept" {
		t.Fatalf("expected one friend:accept event, got %+v", publisher.events)
	}
	if publisher.targets[0] != 1 {
		t.Errorf("pushed to user %d, want original requester 1", publisher.targets[0])
	}
	payload := eventPayload(t, publisher.events[0])
	if payload.FromUser == nil || payload.FromUser.ID != 2 {
		t.Errorf("fromUser = %+v, want accepter 2", payload.FromUser)
	}
}

func TestPostLikedPushesNamedEvent(t *testing.T) {
	svc, _, publisher := notificationFixture()
	post := &models.Post{ID: 7, AuthorID: 1}

	svc.PostLiked(context.Background(), post, 2)

	if len(publisher.events) != 1 || publisher.events[0].Name != "post:like" {
		t.Fatalf("expected one post:like event, got %+v", publisher.events)
	}
	payload := eventPayload(t, publisher.events[0])
	if payload.PostID == nil || *payload.PostID != 7 {
		t.Errorf("payload postId = %v, want 7", payload.PostID)
	}
}

func TestPostLikedSkipsSelf(t *testing.T) {
	svc, store, publisher := notificationFixture()
	post := &models.Post{ID: 7, AuthorID: 1}

	svc.PostLiked(context.Background(), post, 1)

	if len(store.rows) != 0 || len(publisher.events) != 0 {
		t.Error("liking your own post must not notify")
	}
}

func TestPostCommentedPushesNamedEvent(t *testing.T) {
	svc, _, publisher := notificationFixture()
	post := &models.Post{ID: 7, AuthorID: 1}
	comment := &models.PostComment{ID: 3, PostID: 7, UserID: 2, Text: "nice"}

	svc.PostCommented(context.Background(), post, comment)

	if len(publisher.events) != 1 || publisher.events[0].Name != "post:comment" {
		t.Fatalf("expected one post:comment event, got %+v", publisher.events)
	}
	payload := eventPayload(t, publisher.events[0])
	if payload.CommentID == nil || *payload.CommentID != 3 {
		t.Errorf("payload commentId = %v, want 3", payload.CommentID)
	}
}

func TestEmitSurvivesStoreFailure(t *testing.T) {
	svc, store, publisher := notificationFixture()
	store.failCreate = true

	// Must neither panic nor push a phantom notification
	svc.FriendRequestSent(context.Background(), &models.Friendship{RequesterID: 1, RecipientID: 2})

	if len(publisher.events) != 0 {
		t.Error("pushed an event for a notification that was never stored")
	}
}

func TestMarkReadEmptyMarksAll(t *testing.T) {
	svc, store, _ := notificationFixture()
	ctx := context.Background()

	svc.FriendRequestSent(ctx, &models.Friendship{RequesterID: 1, RecipientID: 2})
	svc.FriendRequestAccepted(ctx, &models.Friendship{RequesterID: 2, RecipientID: 1})

	updated, err := svc.MarkRead(ctx, 2, nil)
	if err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	if updated != 1 {
		t.Errorf("marked %d notifications, want 1", updated)
	}
	for _, n := range store.rows {
		if n.RecipientID == 2 && !n.IsRead {
			t.Error("notification for user 2 left unread")
		}
	}
}

func TestDeleteRequiresRecipient(t *testing.T) {
	svc, store, _ := notificationFixture()
	ctx := context.Background()

	svc.FriendRequestSent(ctx, &models.Friendship{RequesterID: 1, RecipientID: 2})
	var id int64
	for _, n := range store.rows {
		id = n.ID
	}

	if err := svc.Delete(ctx, 1, id); !errors.Is(err, apperrors.ErrNotNotificationRecipient) {
		t.Errorf("sender deleting: got %v, want ErrNotNotificationRecipient", err)
	}
	if err := svc.Delete(ctx, 2, id); err != nil {
		t.Fatalf("recipient delete failed: %v", err)
	}
	if err := svc.Delete(ctx, 2, id); !errors.Is(err, apperrors.ErrNotificationNotFound) {
		t.Errorf("second delete: got %v, want ErrNotificationNotFound", err)
	}
}
