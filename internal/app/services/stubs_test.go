package services

import (
	"context"
	"sort"
	"time"

	"github.com/incampus/backend/internal/app/models"
	"github.com/incampus/backend/internal/pkg/apperrors"
)

// stubFriendshipStore is an in-memory FriendshipStore mirroring the pair
// uniqueness the database enforces.
type stubFriendshipStore struct {
	rows   map[int64]*models.Friendship
	nextID int64
	users  *stubUserDirectory
}

func newStubFriendshipStore(users *stubUserDirectory) *stubFriendshipStore {
	return &stubFriendshipStore{rows: make(map[int64]*models.Friendship), users: users}
}

func (s *stubFriendshipStore) Create(_ context.Context, requesterID, recipientID int64) (*models.Friendship, error) {
	for _, f := range s.rows {
		if f.Involves(requesterID) && f.Involves(recipientID) {
			return nil, apperrors.ErrFriendshipExists
		}
	}
	s.nextID++
	f := &models.Friendship{
		ID:          s.nextID,
		RequesterID: requesterID,
		RecipientID: recipientID,
		Status:      models.FriendshipPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	s.rows[f.ID] = f
	return f, nil
}

func (s *stubFriendshipStore) GetByID(_ context.Context, id int64) (*models.Friendship, error) {
	f, ok := s.rows[id]
	if !ok {
		return nil, apperrors.ErrFriendRequestNotFound
	}
	return f, nil
}

func (s *stubFriendshipStore) FindBetween(_ context.Context, a, b int64) (*models.Friendship, error) {
	for _, f := range s.rows {
		if f.Involves(a) && f.Involves(b) {
			return f, nil
		}
	}
	return nil, apperrors.ErrFriendshipNotFound
}

func (s *stubFriendshipStore) UpdateStatus(_ context.Context, id int64, status models.FriendshipStatus) (*models.Friendship, error) {
	f, ok := s.rows[id]
	if !ok {
		return nil, apperrors.ErrFriendRequestNotFound
	}
	f.Status = status
	f.UpdatedAt = time.Now()
	return f, nil
}

func (s *stubFriendshipStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.rows[id]; !ok {
		return apperrors.ErrFriendshipNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *stubFriendshipStore) peerIDs(userID int64, status models.FriendshipStatus) []int64 {
	var ids []int64
	for _, f := range s.rows {
		if f.Status == status && f.Involves(userID) {
			ids = append(ids, f.PeerOf(userID))
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *stubFriendshipStore) ListAcceptedPeerIDs(_ context.Context, userID int64) ([]int64, error) {
	return s.peerIDs(userID, models.FriendshipAccepted), nil
}

func (s *stubFriendshipStore) ListPendingPeerIDs(_ context.Context, userID int64) ([]int64, error) {
	return s.peerIDs(userID, models.FriendshipPending), nil
}

func (s *stubFriendshipStore) ListPending(_ context.Context, userID int64, asRecipient bool) ([]*models.Friendship, error) {
	var out []*models.Friendship
	for _, f := range s.rows {
		if f.Status != models.FriendshipPending {
			continue
		}
		if (asRecipient && f.RecipientID == userID) || (!asRecipient && f.RequesterID == userID) {
			s.attach(f)
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *stubFriendshipStore) ListAccepted(_ context.Context, userID int64) ([]*models.Friendship, error) {
	var out []*models.Friendship
	for _, f := range s.rows {
		if f.Status == models.FriendshipAccepted && f.Involves(userID) {
			s.attach(f)
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *stubFriendshipStore) attach(f *models.Friendship) {
	if s.users == nil {
		return
	}
	f.Requester = s.users.byID[f.RequesterID]
	f.Recipient = s.users.byID[f.RecipientID]
}

// stubUserDirectory is an in-memory UserDirectory
type stubUserDirectory struct {
	byID map[int64]*models.User
}

func newStubUserDirectory(users ...*models.User) *stubUserDirectory {
	d := &stubUserDirectory{byID: make(map[int64]*models.User)}
	for _, u := range users {
		d.byID[u.ID] = u
	}
	return d
}

func (d *stubUserDirectory) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := d.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (d *stubUserDirectory) ListExcluding(_ context.Context, exclude []int64) ([]*models.User, error) {
	skip := make(map[int64]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}

	var ids []int64
	for id := range d.byID {
		if !skip[id] {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, d.byID[id])
	}
	return out, nil
}

func (d *stubUserDirectory) Search(_ context.Context, _ string, _ int) ([]*models.User, error) {
	return nil, nil
}

// recordingNotifier captures friendship events for assertions
type recordingNotifier struct {
	sent     []*models.Friendship
	accepted []*models.Friendship
}

func (n *recordingNotifier) FriendRequestSent(_ context.Context, f *models.Friendship) {
	n.sent = append(n.sent, f)
}

func (n *recordingNotifier) FriendRequestAccepted(_ context.Context, f *models.Friendship) {
	n.accepted = append(n.accepted, f)
}
