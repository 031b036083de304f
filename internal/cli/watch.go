package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/hxmidi/midimap/pkg/errors"
	"github.com/hxmidi/midimap/pkg/pipeline"
)

// debounce is how long the watcher waits after the last change before
// re-rendering; editors often write a file in several steps.
const debounce = 250 * time.Millisecond

// watchCommand creates the watch command that re-renders on every change.
func (c *CLI) watchCommand() *cobra.Command {
	var in inputFlags
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "watch <router.json>",
		Short: "Re-render whenever the router or names file changes",
		Long: `Watch renders once, then watches the router file and the names file
and renders again after each change. A router file that cannot be read is
reported and the watch continues. Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.pipelineOptions(args[0], in, out)
			if err != nil {
				return err
			}
			return c.runWatch(cmd.Context(), opts, out.output)
		},
	}

	in.register(cmd)
	out.register(cmd)
	return cmd
}

// runWatch renders, then loops on file events until ctx ends. Runs are
// sequential; events arriving during a run are coalesced into the next one.
func (c *CLI) runWatch(ctx context.Context, opts pipeline.Options, output string) error {
	logger := loggerFromContext(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "start file watcher")
	}
	defer w.Close()

	targets := watchTargets(opts.RouterPath, opts.NamesPath)
	for dir := range watchDirs(targets) {
		if err := w.Add(dir); err != nil {
			logger.Warn("cannot watch directory", "dir", dir, "err", err)
			continue
		}
		logger.Debug("watching", "dir", dir)
	}

	render := func() {
		if _, err := c.runRender(ctx, opts, output, false); err != nil && ctx.Err() == nil {
			printError("%s", errors.UserMessage(err))
		}
	}
	render()
	printInfo("Watching %s (Ctrl-C to stop)", opts.RouterPath)

	idle := newSpinnerWithContext(ctx, "waiting for changes")
	idle.Start()
	defer func() { idle.Stop() }()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(ev.Name)] || !relevantOp(ev.Op) {
				continue
			}
			logger.Debug("file changed", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
			idle.SetMessage("change detected")

		case <-fire:
			fire = nil
			idle.Stop()
			printNewline()
			render()
			idle = newSpinnerWithContext(ctx, "waiting for changes")
			idle.Start()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		}
	}
}

// watchTargets returns the absolute paths of the files to react to.
func watchTargets(paths ...string) map[string]bool {
	targets := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			targets[abs] = true
		}
	}
	return targets
}

// watchDirs returns the parent directories of targets. Directories are
// watched instead of files so that atomic saves (write + rename) are seen.
func watchDirs(targets map[string]bool) map[string]bool {
	dirs := make(map[string]bool)
	for p := range targets {
		dirs[filepath.Dir(p)] = true
	}
	return dirs
}

func relevantOp(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}
