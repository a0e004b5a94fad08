package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/clipnamer/internal/config"
	"github.com/nguyentantai21042004/clipnamer/internal/naming"
	"github.com/nguyentantai21042004/clipnamer/internal/processor"
	"github.com/nguyentantai21042004/clipnamer/internal/storage/local"
	"github.com/nguyentantai21042004/clipnamer/internal/watcher"
)

// renamedSet remembers the names this process produced so the watcher does
// not pick them up again.
type renamedSet struct {
	mu    sync.Mutex
	names map[string]struct{}
}

func (s *renamedSet) add(names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.names == nil {
		s.names = make(map[string]struct{})
	}
	for _, n := range names {
		s.names[n] = struct{}{}
	}
}

func (s *renamedSet) has(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.names[name]
	return ok
}

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var (
		sf     settingsFlags
		apply  bool
		settle time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <folder>",
		Short: "Propose names for videos as they arrive in a local folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.Storage.Backend != config.BackendLocal {
				return errors.New("watch requires the local storage backend")
			}
			folderID, err := naming.ResolveFolder(args[0])
			if err != nil {
				return err
			}
			settings, err := ctx.settings(sf.resolve(cmd))
			if err != nil {
				return err
			}
			proc, err := ctx.processor()
			if err != nil {
				return err
			}

			store := local.New(cfg.Storage.LocalRoot)
			dir, err := store.FolderPath(folderID)
			if err != nil {
				return err
			}
			log := ctx.log()
			out := cmd.OutOrStdout()
			var produced renamedSet

			handler := func(runCtx context.Context, names []string) error {
				only := make([]string, 0, len(names))
				for _, n := range names {
					only = append(only, local.ID(folderID, n))
				}
				proposals, err := proc.Propose(runCtx, store, folderID, processor.ProposeOptions{
					Settings: settings,
					Only:     only,
				})
				if err != nil {
					return err
				}
				renderProposals(out, proposals)
				if !apply {
					return nil
				}

				reqs := processor.Requests(proposals)
				for _, r := range reqs {
					produced.add(r.NewName)
				}
				result := proc.Rename(runCtx, store, reqs)
				renderOutcomes(out, result)
				if n := len(result.FailedIDs); n > 0 {
					return fmt.Errorf("%d renames failed", n)
				}
				return nil
			}

			w, err := watcher.New(watcher.Options{
				Dir:     dir,
				Handler: handler,
				Logger:  log,
				Settle:  settle,
				Ignore:  produced.has,
			})
			if err != nil {
				return err
			}
			defer w.Stop()

			err = w.Start(cmd.Context())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	addSettingsFlags(cmd, &sf)
	cmd.Flags().BoolVar(&apply, "apply", false, "Rename new videos right away")
	cmd.Flags().DurationVar(&settle, "settle", watcher.DefaultSettle, "Quiet period before a batch is named")
	return cmd
}
