package storage

import "testing"

func TestIsVideoFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"clip.mp4", true},
		{"CLIP.MOV", true},
		{"a.b.webm", true},
		{"notes.txt", false},
		{"mp4", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsVideoFile(tt.name); got != tt.want {
			t.Errorf("IsVideoFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
	if got := MediaType("x.MOV"); got != "video/quicktime" {
		t.Errorf("MediaType() = %q", got)
	}
}
