package universityid

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		wantCourse string
		wantBatch  string
	}{
		{"canonical", "BWU/BCA/23/734", "BCA", "2023"},
		{"different course", "BWU/CSE/22/101", "CSE", "2022"},
		{"malformed", "malformed", "", ""},
		{"empty", "", "", ""},
		{"too few tokens", "BWU/BCA/23", "", ""},
		{"non numeric year", "BWU/BCA/2X/734", "BCA", ""},
		{"four digit year not expanded", "BWU/BCA/2023/734", "BCA", ""},
		{"extra tokens", "BWU/BCA/23/734/extra", "BCA", "2023"},
		{"whitespace tokens", "BWU/ BCA / 23 /734", "BCA", "2023"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			course, batch := Parse(tt.id)
			if course != tt.wantCourse {
				t.Errorf("Parse(%q) course = %q, want %q", tt.id, course, tt.wantCourse)
			}
			if batch != tt.wantBatch {
				t.Errorf("Parse(%q) batch = %q, want %q", tt.id, batch, tt.wantBatch)
			}
		})
	}
}
