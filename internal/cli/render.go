package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hxmidi/midimap/pkg/errors"
	"github.com/hxmidi/midimap/pkg/pipeline"
)

// renderCommand creates the render command that writes the diagram and
// matrix images for a router file.
func (c *CLI) renderCommand() *cobra.Command {
	var in inputFlags
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "render <router.json>",
		Short: "Draw a router's routing as diagram and matrix images",
		Long: `Render reads the router file and the names file and writes
<base>_diagram.png and <base>_matrix.png, where <base> is the router file
path without extension unless --output is given.

Connections whose input or output has no name are left out of the diagram.
The matrix is drawn only when the names file defines an "Order".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.pipelineOptions(args[0], in, out)
			if err != nil {
				return err
			}
			_, err = c.runRender(cmd.Context(), opts, out.output, true)
			return err
		},
	}

	in.register(cmd)
	out.register(cmd)
	return cmd
}

// runRender runs the pipeline, writes the artifacts and reports the outcome.
// Only a router that cannot be loaded (or an unusable output path) is
// returned as an error.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, list bool) (*pipeline.Result, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	base, err := pipeline.BasePath(opts.RouterPath, output)
	if err != nil {
		return nil, err
	}

	res, err := c.newRunner().Run(ctx, opts)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		code := errors.GetCode(err)
		if code == "" {
			code = errors.ErrCodeInvalidInput
		}
		return nil, errors.Wrap(code, err, "cannot load %s", opts.RouterPath)
	}

	if list {
		printMappingList(res.Mapping)
		printNewline()
	}

	if err := res.Write(base); err != nil {
		logger.Error("write failed", "err", errors.UserMessage(err))
	}

	reportResult(res)
	prog.done("Rendered " + res.Name)
	return res, nil
}

// reportResult prints written files and every artifact that was not written.
func reportResult(res *pipeline.Result) {
	written := res.Written()
	if len(written) > 0 {
		printSuccess("Wrote %d file(s)", len(written))
		for _, a := range written {
			if a.Cached {
				printFile(a.Path + " " + StyleDim.Render("(cached)"))
				continue
			}
			printFile(a.Path)
		}
	}
	for _, a := range res.Artifacts {
		if a.Err != nil {
			printWarning("%s not written: %s", a.Name(), errors.UserMessage(a.Err))
		}
	}
	printStats(res.Stats)
}
