package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/clipnamer/internal/storage"
	"google.golang.org/api/option"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(context.Background(), "test-token", option.WithEndpoint(srv.URL+"/"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNewRequiresToken(t *testing.T) {
	_, err := New(context.Background(), "  ")
	if !errors.Is(err, storage.ErrUnauthenticated) {
		t.Errorf("New() error = %v, want ErrUnauthenticated", err)
	}
}

func TestListVideos(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		q := r.URL.Query().Get("q")
		if !strings.Contains(q, "'FOLDER1' in parents") || !strings.Contains(q, "video/") {
			t.Errorf("q = %q", q)
		}
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("pageToken") == "" {
			_, _ = io.WriteString(w, `{"nextPageToken":"p2","files":[
				{"id":"a","name":"IMG_1.mp4","mimeType":"video/mp4","size":"2048","videoMediaMetadata":{"durationMillis":"31400"}}
			]}`)
			return
		}
		_, _ = io.WriteString(w, `{"files":[{"id":"b","name":"IMG_2.mov","mimeType":"video/quicktime"}]}`)
	})

	got, err := c.ListVideos(context.Background(), "FOLDER1")
	if err != nil {
		t.Fatalf("ListVideos() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListVideos() returned %d items, want 2", len(got))
	}
	if got[0].ID != "a" || got[0].KnownDurationSeconds != 31 || got[0].SizeBytes != 2048 {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].KnownDurationSeconds != 0 || got[1].MediaType != "video/quicktime" {
		t.Errorf("second = %+v", got[1])
	}
}

func TestListNamesUnauthenticated(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"code":401,"message":"Invalid Credentials"}}`)
	})

	_, err := c.ListNames(context.Background(), "FOLDER1")
	if !errors.Is(err, storage.ErrUnauthenticated) {
		t.Errorf("ListNames() error = %v, want ErrUnauthenticated", err)
	}
}

func TestRenameAndDownload(t *testing.T) {
	var renamed string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPatch && strings.HasSuffix(r.URL.Path, "/files/vid1"):
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			renamed, _ = body["name"].(string)
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"id":"vid1","name":"`+renamed+`"}`)
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/files/vid1") && r.URL.Query().Get("alt") == "media":
			_, _ = io.WriteString(w, "video-bytes")
		case strings.HasSuffix(r.URL.Path, "/files/missing"):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":{"code":404,"message":"File not found"}}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL)
			w.WriteHeader(http.StatusBadRequest)
		}
	})

	ctx := context.Background()
	if err := c.Rename(ctx, "vid1", "300001.TTS.JD.Win.5sec.mp4"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if renamed != "300001.TTS.JD.Win.5sec.mp4" {
		t.Errorf("renamed = %q", renamed)
	}

	var buf bytes.Buffer
	if err := c.Download(ctx, "vid1", &buf); err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if buf.String() != "video-bytes" {
		t.Errorf("Download() = %q", buf.String())
	}

	if err := c.Rename(ctx, "missing", "x.mp4"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Rename() error = %v, want ErrNotFound", err)
	}
}
