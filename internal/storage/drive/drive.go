// Package drive implements storage.Provider on top of the Google Drive v3
// API using the caller's OAuth access token.
package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nguyentantai21042004/clipnamer/internal/naming"
	"github.com/nguyentantai21042004/clipnamer/internal/storage"
	"golang.org/x/oauth2"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	listFields = "nextPageToken, files(id, name, mimeType, size, videoMediaMetadata(durationMillis))"
	nameFields = "nextPageToken, files(name)"
	pageSize   = 1000
)

type Client struct {
	svc *drive.Service
}

// New builds a client authenticated with a bearer access token. Extra
// options are appended after the token source (tests use WithEndpoint).
func New(ctx context.Context, accessToken string, opts ...option.ClientOption) (*Client, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, storage.ErrUnauthenticated
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	all := append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)

	svc, err := drive.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Client{svc: svc}, nil
}

func (c *Client) ListVideos(ctx context.Context, folderKey string) ([]naming.VideoCandidate, error) {
	q := fmt.Sprintf("'%s' in parents and trashed = false and mimeType contains 'video/'", escape(folderKey))

	var out []naming.VideoCandidate
	err := c.svc.Files.List().
		Q(q).
		Fields(listFields).
		PageSize(pageSize).
		OrderBy("name").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Pages(ctx, func(page *drive.FileList) error {
			for _, f := range page.Files {
				v := naming.VideoCandidate{
					ID:          f.Id,
					DisplayName: f.Name,
					MediaType:   f.MimeType,
					SizeBytes:   f.Size,
				}
				if f.VideoMediaMetadata != nil && f.VideoMediaMetadata.DurationMillis > 0 {
					v.KnownDurationSeconds = int((f.VideoMediaMetadata.DurationMillis + 500) / 1000)
				}
				out = append(out, v)
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("list videos in %s: %w", folderKey, mapError(err))
	}
	return out, nil
}

func (c *Client) ListNames(ctx context.Context, folderKey string) ([]string, error) {
	q := fmt.Sprintf("'%s' in parents and trashed = false", escape(folderKey))

	var out []string
	err := c.svc.Files.List().
		Q(q).
		Fields(nameFields).
		PageSize(pageSize).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Pages(ctx, func(page *drive.FileList) error {
			for _, f := range page.Files {
				out = append(out, f.Name)
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("list names in %s: %w", folderKey, mapError(err))
	}
	return out, nil
}

func (c *Client) Download(ctx context.Context, id string, w io.Writer) error {
	resp, err := c.svc.Files.Get(id).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return fmt.Errorf("download %s: %w", id, mapError(err))
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("download %s: read body: %w", id, err)
	}
	return nil
}

func (c *Client) Rename(ctx context.Context, id, newName string) error {
	_, err := c.svc.Files.Update(id, &drive.File{Name: newName}).
		SupportsAllDrives(true).
		Fields("id, name").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("rename %s: %w", id, mapError(err))
	}
	return nil
}

func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

func mapError(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}
	switch gerr.Code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", storage.ErrUnauthenticated, gerr.Message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", storage.ErrNotFound, gerr.Message)
	default:
		return err
	}
}
