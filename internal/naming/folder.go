package naming

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidReference is returned when a folder reference cannot be parsed.
var ErrInvalidReference = errors.New("invalid folder reference")

var (
	reFolderPath = regexp.MustCompile(`/folders/([A-Za-z0-9_-]+)`)
	reFolderID   = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// ResolveFolder turns a raw folder id or a share URL into a folder key.
func ResolveFolder(input string) (string, error) {
	if m := reFolderPath.FindStringSubmatch(input); m != nil {
		return m[1], nil
	}
	trimmed := strings.TrimSpace(input)
	if reFolderID.MatchString(trimmed) {
		return trimmed, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidReference, input)
}
