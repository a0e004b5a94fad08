// Package local implements storage.Provider over a directory tree. Each
// sub-directory of the root is a folder; file ids are "<folder>/<name>".
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/clipnamer/internal/naming"
	"github.com/nguyentantai21042004/clipnamer/internal/storage"
)

type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// Root returns the directory the store serves.
func (s *Store) Root() string {
	return s.root
}

// FolderPath returns the directory backing a folder key.
func (s *Store) FolderPath(folderKey string) (string, error) {
	if folderKey == "" || !filepath.IsLocal(folderKey) || strings.ContainsAny(folderKey, `/\`) {
		return "", fmt.Errorf("%w: folder %q", storage.ErrNotFound, folderKey)
	}
	return filepath.Join(s.root, folderKey), nil
}

// ID returns the file id for a name inside a folder.
func ID(folderKey, name string) string {
	return path.Join(folderKey, name)
}

func (s *Store) ListVideos(ctx context.Context, folderKey string) ([]naming.VideoCandidate, error) {
	entries, err := s.readDir(folderKey)
	if err != nil {
		return nil, err
	}

	var out []naming.VideoCandidate
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !storage.IsVideoFile(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		out = append(out, naming.VideoCandidate{
			ID:          ID(folderKey, e.Name()),
			DisplayName: e.Name(),
			MediaType:   storage.MediaType(e.Name()),
			SizeBytes:   info.Size(),
		})
	}
	return out, nil
}

func (s *Store) ListNames(ctx context.Context, folderKey string) ([]string, error) {
	entries, err := s.readDir(folderKey)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (s *Store) Download(ctx context.Context, id string, w io.Writer) error {
	p, err := s.filePath(id)
	if err != nil {
		return err
	}
	f, err := os.Open(p)
	if err != nil {
		return mapError(err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("copy %s: %w", id, err)
	}
	return nil
}

// Rename moves a file to a new name inside the same folder. Existing files
// are never overwritten.
func (s *Store) Rename(ctx context.Context, id, newName string) error {
	src, err := s.filePath(id)
	if err != nil {
		return err
	}
	if newName == "" || newName != filepath.Base(newName) || strings.ContainsAny(newName, `/\`) {
		return fmt.Errorf("rename %s: invalid name %q", id, newName)
	}
	dst := filepath.Join(filepath.Dir(src), newName)
	if dst == src {
		return nil
	}

	if _, err := os.Lstat(src); err != nil {
		return mapError(err)
	}
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("rename %s: %w: %s", id, storage.ErrConflict, newName)
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("rename %s: %w", id, err)
	}
	return nil
}

// Path returns the file system path of a file id.
func (s *Store) Path(id string) (string, error) {
	return s.filePath(id)
}

func (s *Store) readDir(folderKey string) ([]os.DirEntry, error) {
	dir, err := s.FolderPath(folderKey)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, mapError(err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func (s *Store) filePath(id string) (string, error) {
	folder, name, ok := strings.Cut(id, "/")
	if !ok || name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: file %q", storage.ErrNotFound, id)
	}
	dir, err := s.FolderPath(folder)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func mapError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", storage.ErrNotFound, err)
	}
	return err
}
