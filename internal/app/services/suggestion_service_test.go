package services

import (
	"context"
	"testing"

	"github.com/incampus/backend/internal/app/models"
	"github.com/incampus/backend/internal/app/models/dto"
)

func studentUser(id int64, name, universityID string) *models.User {
	return &models.User{ID: id, Name: name, UniversityID: universityID, Role: models.RoleStudent}
}

func suggestionFixture() (*SuggestionService, *stubFriendshipStore, *stubUserDirectory) {
	users := newStubUserDirectory(
		studentUser(1, "Asha", "BWU/BCA/23/101"),
		studentUser(2, "Rohit", "BWU/BCA/23/102"),  // same course, same batch
		studentUser(3, "Meera", "BWU/BCA/22/201"),  // same course only
		studentUser(4, "Arjun", "BWU/CSE/23/202"),  // same batch only
		&models.User{ID: 5, Name: "Prof. Iyer", UniversityID: "BWU/FAC/20/001", Role: models.RoleFaculty},
		studentUser(6, "Nikhil", "OTHER"),   // role match only
		studentUser(7, "", "BWU/BCA/23/999"), // no display name, skipped
	)
	friendships := newStubFriendshipStore(users)
	return NewSuggestionService(friendships, users), friendships, users
}

func suggestionIDs(suggestions []dto.FriendSuggestion) map[int64]bool {
	ids := make(map[int64]bool, len(suggestions))
	for _, s := range suggestions {
		ids[s.User.ID] = true
	}
	return ids
}

func TestSuggestExcludesConnectedUsers(t *testing.T) {
	svc, friendships, _ := suggestionFixture()
	ctx := context.Background()

	// 1-2 accepted, 1-3 pending outgoing, 4-1 pending incoming
	f, _ := friendships.Create(ctx, 1, 2)
	friendships.UpdateStatus(ctx, f.ID, models.FriendshipAccepted)
	friendships.Create(ctx, 1, 3)
	friendships.Create(ctx, 4, 1)

	suggestions, err := svc.Suggest(ctx, 1, 10)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	ids := suggestionIDs(suggestions)
	for _, excluded := range []int64{1, 2, 3, 4} {
		if ids[excluded] {
			t.Errorf("user %d should be excluded from suggestions", excluded)
		}
	}
	if ids[7] {
		t.Error("user without a display name should be skipped")
	}
	if !ids[5] || !ids[6] {
		t.Errorf("expected users 5 and 6 in suggestions, got %v", ids)
	}
}

func TestSuggestScoring(t *testing.T) {
	svc, _, _ := suggestionFixture()

	suggestions, err := svc.Suggest(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	scores := make(map[int64]int)
	relevance := make(map[int64][]string)
	for _, s := range suggestions {
		scores[s.User.ID] = s.Priority
		relevance[s.User.ID] = s.Relevance
	}

	// Requester: course BCA, batch 2023, role student
	if scores[2] != 6 {
		t.Errorf("course+batch+role match should score 6, got %d", scores[2])
	}
	if scores[3] != 4 {
		t.Errorf("course+role match should score 4, got %d", scores[3])
	}
	if scores[4] != 3 {
		t.Errorf("batch+role match should score 3, got %d", scores[4])
	}
	if scores[5] != 0 {
		t.Errorf("faculty with no shared attributes should score 0, got %d", scores[5])
	}
	if scores[6] != 1 {
		t.Errorf("role-only match should score 1, got %d", scores[6])
	}

	want := []string{"BCA", "Same course", "Same batch", "student", "Same role"}
	got := relevance[2]
	if len(got) != len(want) {
		t.Fatalf("relevance mismatch: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("relevance[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSuggestTieOrdering(t *testing.T) {
	// X scores 3 via course, Y scores 3 via batch+role. Both must rank above
	// any zero-score candidate.
	users := newStubUserDirectory(
		studentUser(1, "Me", "BWU/BCA/23/100"),
		&models.User{ID: 2, Name: "X", UniversityID: "BWU/BCA/22/200", Role: models.RoleFaculty},
		studentUser(3, "Y", "BWU/CSE/23/300"),
		&models.User{ID: 4, Name: "Z", UniversityID: "OTHER", Role: models.RoleFaculty},
	)
	svc := NewSuggestionService(newStubFriendshipStore(users), users)

	suggestions, err := svc.Suggest(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(suggestions) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(suggestions))
	}

	if suggestions[0].Priority != 3 || suggestions[1].Priority != 3 {
		t.Errorf("tied candidates should both score 3, got %d and %d",
			suggestions[0].Priority, suggestions[1].Priority)
	}
	if suggestions[2].User.ID != 4 || suggestions[2].Priority != 0 {
		t.Errorf("zero-score candidate should rank last, got user %d score %d",
			suggestions[2].User.ID, suggestions[2].Priority)
	}
}

func TestSuggestLimitAndOrdering(t *testing.T) {
	svc, _, _ := suggestionFixture()
	ctx := context.Background()

	for _, limit := range []int{1, 2, 3, 10} {
		suggestions, err := svc.Suggest(ctx, 1, limit)
		if err != nil {
			t.Fatalf("Suggest failed: %v", err)
		}
		if len(suggestions) > limit {
			t.Errorf("limit %d exceeded: got %d results", limit, len(suggestions))
		}
		for i := 1; i < len(suggestions); i++ {
			if suggestions[i].Priority > suggestions[i-1].Priority {
				t.Errorf("scores must be non-increasing, got %d after %d at limit %d",
					suggestions[i].Priority, suggestions[i-1].Priority, limit)
			}
		}
	}

	// More eligible candidates than exist
	suggestions, err := svc.Suggest(ctx, 1, 100)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(suggestions) != 5 {
		t.Errorf("expected all 5 eligible candidates, got %d", len(suggestions))
	}
}

func TestSuggestIdempotentUpToShuffle(t *testing.T) {
	svc, _, _ := suggestionFixture()
	ctx := context.Background()

	first, err := svc.Suggest(ctx, 1, 10)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	second, err := svc.Suggest(ctx, 1, 10)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("result count changed between calls: %d vs %d", len(first), len(second))
	}

	firstIDs, secondIDs := suggestionIDs(first), suggestionIDs(second)
	for id := range firstIDs {
		if !secondIDs[id] {
			t.Errorf("user %d present in first call but not second", id)
		}
	}

	// The positive-score prefix is deterministic
	for i := range first {
		if first[i].Priority == 0 {
			break
		}
		if first[i].User.ID != second[i].User.ID {
			t.Errorf("priority ordering changed between calls at index %d", i)
		}
	}
}

func TestSuggestMutualFriendsReserved(t *testing.T) {
	svc, _, _ := suggestionFixture()

	suggestions, err := svc.Suggest(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	for _, s := range suggestions {
		if s.MutualFriends != 0 {
			t.Errorf("mutualFriends is reserved and must be 0, got %d", s.MutualFriends)
		}
	}
}

func TestSuggestEmptyCandidateSet(t *testing.T) {
	users := newStubUserDirectory(studentUser(1, "Loner", "BWU/BCA/23/100"))
	svc := NewSuggestionService(newStubFriendshipStore(users), users)

	suggestions, err := svc.Suggest(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(suggestions) != 0 {
		t.Errorf("expected empty result, got %d", len(suggestions))
	}
}
