package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/clipnamer/internal/storage"
)

// Rename issues every valid request with bounded concurrency. A failed
// request never affects its siblings and nothing is rolled back. Once ctx is
// done no new request is started and the remaining ones are reported failed.
func (p *implProcessor) Rename(ctx context.Context, provider storage.Provider, requests []RenameRequest) BatchResult {
	outcomes := make([]Outcome, len(requests))
	rejected := validateRequests(requests)

	var (
		mu     sync.Mutex
		unauth bool
	)
	g := new(errgroup.Group)
	g.SetLimit(p.maxConcurrent)

	for i, req := range requests {
		outcomes[i] = Outcome{SourceID: req.SourceID, NewName: req.NewName}
		if reason, ok := rejected[i]; ok {
			outcomes[i].Error = reason
			continue
		}
		if err := ctx.Err(); err != nil {
			outcomes[i].Error = fmt.Sprintf("not attempted: %v", err)
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i].Error = fmt.Sprintf("not attempted: %v", err)
				return nil
			}
			if err := provider.Rename(ctx, req.SourceID, req.NewName); err != nil {
				p.logger.Warn(ctx, "Rename %s -> %s failed: %v", req.SourceID, req.NewName, err)
				outcomes[i].Error = err.Error()
				if errors.Is(err, storage.ErrUnauthenticated) {
					mu.Lock()
					unauth = true
					mu.Unlock()
				}
				return nil
			}
			outcomes[i].Succeeded = true
			return nil
		})
	}
	_ = g.Wait()

	result := BatchResult{Outcomes: outcomes, FailedIDs: []string{}, Unauthenticated: unauth}
	for _, o := range outcomes {
		if o.Succeeded {
			result.RenamedCount++
		} else {
			result.FailedIDs = append(result.FailedIDs, o.SourceID)
		}
	}

	p.logger.Info(ctx, "Renamed %d of %d files", result.RenamedCount, len(requests))
	return result
}

// validateRequests returns the requests that must fail without reaching the
// provider, keyed by index.
func validateRequests(requests []RenameRequest) map[int]string {
	rejected := make(map[int]string)
	ids := make(map[string]bool)
	names := make(map[string]bool)

	for i, req := range requests {
		name := strings.TrimSpace(req.NewName)
		switch {
		case req.SourceID == "":
			rejected[i] = "missing source id"
		case name == "":
			rejected[i] = "empty name"
		case name != req.NewName:
			rejected[i] = "name has leading or trailing whitespace"
		case strings.ContainsAny(name, `/\`):
			rejected[i] = "name contains a path separator"
		case ids[req.SourceID]:
			rejected[i] = "duplicate source id in batch"
		case names[name]:
			rejected[i] = "duplicate target name in batch"
		}
		ids[req.SourceID] = true
		names[name] = true
	}
	return rejected
}
