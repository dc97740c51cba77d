package services

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/incampus/backend/internal/app/models"
	"github.com/incampus/backend/internal/app/models/dto"
	"github.com/incampus/backend/internal/pkg/universityid"
)

// Relevance weights for shared attributes
const (
	courseMatchScore = 3
	batchMatchScore  = 2
	roleMatchScore   = 1
)

// DefaultSuggestionLimit applies when the caller does not ask for a size
const DefaultSuggestionLimit = 10

// SuggestionService computes ranked friend suggestions. It is read only and
// safe to call concurrently; only the ordering of zero-score candidates is
// randomized between calls.
type SuggestionService struct {
	friendships FriendshipStore
	users       UserDirectory
}

// NewSuggestionService creates a new SuggestionService
func NewSuggestionService(friendships FriendshipStore, users UserDirectory) *SuggestionService {
	return &SuggestionService{friendships: friendships, users: users}
}

// Suggest returns up to limit candidate users for the requester, ranked by
// shared course, batch and role. Users linked to the requester by an accepted
// or pending friendship row, in either direction, are never suggested; peers
// of rejected rows are eligible again.
func (s *SuggestionService) Suggest(ctx context.Context, userID int64, limit int) ([]dto.FriendSuggestion, error) {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	requester, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	course, batch := universityid.Parse(requester.UniversityID)
	role := string(requester.Role)

	exclude, err := s.excludeSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.users.ListExcluding(ctx, exclude)
	if err != nil {
		return nil, fmt.Errorf("error fetching suggestion candidates: %w", err)
	}

	var priority, remainder []dto.FriendSuggestion
	for _, candidate := range candidates {
		// Rows without a display name are unusable, skip them silently
		if candidate.Name == "" {
			continue
		}

		suggestion := score(candidate, course, batch, role)
		if suggestion.Priority > 0 {
			priority = append(priority, suggestion)
		} else {
			remainder = append(remainder, suggestion)
		}
	}

	// Deterministic order inside the priority group so truncation is stable:
	// score descending, then candidate id ascending.
	sort.Slice(priority, func(i, j int) bool {
		if priority[i].Priority != priority[j].Priority {
			return priority[i].Priority > priority[j].Priority
		}
		return priority[i].User.ID < priority[j].User.ID
	})

	rand.Shuffle(len(remainder), func(i, j int) {
		remainder[i], remainder[j] = remainder[j], remainder[i]
	})

	result := append(priority, remainder...)
	if len(result) > limit {
		result = result[:limit]
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Priority > result[j].Priority
	})

	return result, nil
}

// excludeSet is the requester plus every user linked to it by an accepted or
// pending friendship.
func (s *SuggestionService) excludeSet(ctx context.Context, userID int64) ([]int64, error) {
	accepted, err := s.friendships.ListAcceptedPeerIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing accepted peers: %w", err)
	}
	pending, err := s.friendships.ListPendingPeerIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing pending peers: %w", err)
	}

	seen := map[int64]bool{userID: true}
	exclude := []int64{userID}
	for _, id := range append(accepted, pending...) {
		if !seen[id] {
			seen[id] = true
			exclude = append(exclude, id)
		}
	}
	return exclude, nil
}

func score(candidate *models.User, course, batch, role string) dto.FriendSuggestion {
	candCourse, candBatch := universityid.Parse(candidate.UniversityID)
	candRole := string(candidate.Role)

	priority := 0
	var relevance []string

	if candCourse != "" {
		relevance = append(relevance, candCourse)
	}
	if candCourse != "" && candCourse == course {
		priority += courseMatchScore
		relevance = append(relevance, "Same course")
	}
	if candBatch != "" && candBatch == batch {
		priority += batchMatchScore
		relevance = append(relevance, "Same batch")
	}
	if candRole != "" {
		relevance = append(relevance, candRole)
	}
	if candRole != "" && candRole == role {
		priority += roleMatchScore
		relevance = append(relevance, "Same role")
	}

	return dto.FriendSuggestion{
		User:          dto.NewUserSummary(candidate),
		Relevance:     relevance,
		Priority:      priority,
		MutualFriends: 0,
	}
}
