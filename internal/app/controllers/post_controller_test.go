package controllers

import (
	"testing"

	"github.com/incampus/backend/internal/app/models"
)

func TestMediaTypeFor(t *testing.T) {
	tests := []struct {
		filename string
		want     models.MediaType
	}{
		{"fest.jpg", models.MediaImage},
		{"fest.PNG", models.MediaImage},
		{"clip.mp4", models.MediaVideo},
		{"clip.MOV", models.MediaVideo},
		{"clip.webm", models.MediaVideo},
		{"noext", models.MediaImage},
	}

	for _, tt := range tests {
		if got := mediaTypeFor(tt.filename); got != tt.want {
			t.Errorf("mediaTypeFor(%q) = %s, want %s", tt.filename, got, tt.want)
		}
	}
}

func TestPostMediaTypeAssignment(t *testing.T) {
	m := models.PostMedia{URL: "http://localhost/uploads/posts/clip.mp4", Type: mediaTypeFor("clip.mp4")}
	if m.Type != models.MediaVideo {
		t.Errorf("media type = %s, want video", m.Type)
	}
}
