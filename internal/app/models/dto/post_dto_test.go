package dto

import (
	"testing"

	"github.com/incampus/backend/internal/app/models"
)

func TestNewPostResponseCarriesMedia(t *testing.T) {
	post := &models.Post{
		ID:       1,
		AuthorID: 2,
		Content:  "campus fest photos",
		Author:   &models.User{ID: 2, Name: "Asha", UniversityID: "BWU/BCA/23/101", Role: models.RoleStudent},
		Media: []models.PostMedia{
			{ID: 10, PostID: 1, Type: models.MediaImage, URL: "http://localhost/uploads/posts/a.jpg"},
			{ID: 11, PostID: 1, Type: models.MediaVideo, URL: "http://localhost/uploads/posts/b.mp4"},
		},
		LikeCount:    3,
		CommentCount: 1,
	}

	resp := NewPostResponse(post, true)

	if len(resp.Media) != 2 {
		t.Fatalf("expected 2 media entries, got %d", len(resp.Media))
	}
	if resp.Media[0].Type != "image" || resp.Media[1].Type != "video" {
		t.Errorf("media types = %s/%s, want image/video", resp.Media[0].Type, resp.Media[1].Type)
	}
	if resp.Media[1].URL != "http://localhost/uploads/posts/b.mp4" {
		t.Errorf("media url = %s", resp.Media[1].URL)
	}
	if resp.Author.ID != 2 || !resp.Liked || resp.LikeCount != 3 {
		t.Errorf("unexpected response: %+v", resp)
	}
}
