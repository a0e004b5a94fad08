// Package storage defines the boundary to the provider that holds the
// videos: listing a folder, reading a file and renaming it.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/clipnamer/internal/naming"
)

var (
	// ErrUnauthenticated means the session has no usable credentials.
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("not found")
	// ErrConflict is returned when a rename target already exists.
	ErrConflict = errors.New("name already taken")
)

// Provider is a storage backend scoped to one user session.
type Provider interface {
	// ListVideos returns the video files directly inside a folder.
	ListVideos(ctx context.Context, folderKey string) ([]naming.VideoCandidate, error)
	// ListNames returns the name of every file in a folder.
	ListNames(ctx context.Context, folderKey string) ([]string, error)
	// Download streams the content of a file into w.
	Download(ctx context.Context, id string, w io.Writer) error
	Rename(ctx context.Context, id, newName string) error
}

var videoTypes = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".m4v":  "video/x-m4v",
	".flv":  "video/x-flv",
}

// IsVideoFile checks if the file has a supported video extension.
func IsVideoFile(name string) bool {
	_, ok := videoTypes[strings.ToLower(filepath.Ext(name))]
	return ok
}

// MediaType returns the MIME type for a video file name, or "" if the
// extension is not a known video container.
func MediaType(name string) string {
	return videoTypes[strings.ToLower(filepath.Ext(name))]
}
