package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/hxmidi/midimap/pkg/errors"
	pkgio "github.com/hxmidi/midimap/pkg/io"
	"github.com/hxmidi/midimap/pkg/names"
	"github.com/hxmidi/midimap/pkg/router"
)

// RouterName returns the router file's base name without its extension.
func RouterName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// loadMapping reads and decodes the router file. Read failures are fatal;
// entry failures become warnings on res.
func (r *Runner) loadMapping(opts Options, res *Result) error {
	entries, err := pkgio.ImportRouter(opts.RouterPath, opts.RouterKey)
	if err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", opts.RouterPath)
		}
		return err
	}

	m, bad := router.Decode(entries)
	for _, e := range bad {
		r.Logger.Warn("skipped router entry", "input", e.Input, "value", e.Value, "reason", e.Reason)
		res.warnf("%v", e)
	}
	res.Mapping = m
	return nil
}

// loadNames reads the names file. Any failure leaves res with an empty
// table and no order.
func (r *Runner) loadNames(opts Options, res *Result) {
	res.Names = names.Table{}
	if opts.NamesPath == "" {
		r.Logger.Debug("no names file")
		return
	}

	nf, err := pkgio.ImportNames(opts.NamesPath)
	if err != nil {
		r.Logger.Warn("names unavailable, continuing without labels",
			"path", opts.NamesPath, "code", errors.GetCode(err), "err", errors.UserMessage(err))
		res.warnf("names: %s", errors.UserMessage(err))
		return
	}
	for _, w := range nf.Warnings {
		r.Logger.Warn("names file", "path", opts.NamesPath, "issue", w)
		res.warnf("names: %s", w)
	}
	res.Names = nf.Names
	res.Order = nf.Order
	r.Logger.Debug("loaded names", "named", nf.Names.NamedCount(), "order", nf.Order.String())
}
