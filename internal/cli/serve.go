package cli

import (
	"github.com/spf13/cobra"

	"github.com/hxmidi/midimap/internal/server"
)

// serveCommand creates the serve command, a live preview in the browser.
func (c *CLI) serveCommand() *cobra.Command {
	var in inputFlags
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve <router.json>",
		Short: "Serve live renderings over HTTP",
		Long: `Serve starts an HTTP server that renders the router on every request.
Open the address in a browser and reload after editing the router or names
file. Images are also available directly, e.g. /diagram.svg or /matrix.png.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.pipelineOptions(args[0], in, outputFlags{noCache: noCache})
			if err != nil {
				return err
			}
			if addr == "" {
				addr = c.cfg.ServeAddr
			}

			printInfo("Serving %s on http://%s (Ctrl-C to stop)", opts.RouterPath, addr)
			return server.New(c.newRunner(), opts, c.Logger).ListenAndServe(cmd.Context(), addr)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, then localhost:8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "always re-render instead of reusing cached images")
	return cmd
}
