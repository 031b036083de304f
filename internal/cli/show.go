package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	pkgio "github.com/hxmidi/midimap/pkg/io"
	"github.com/hxmidi/midimap/pkg/names"
	"github.com/hxmidi/midimap/pkg/pipeline"
	"github.com/hxmidi/midimap/pkg/router"
	"github.com/hxmidi/midimap/pkg/slot"
)

// showCommand creates the show command that prints a router's routing.
func (c *CLI) showCommand() *cobra.Command {
	var in inputFlags
	var adjacency, asJSON bool

	cmd := &cobra.Command{
		Use:   "show <router.json>",
		Short: "Print a router's routing as a table",
		Long: `Show prints one row per input with the outputs it feeds, using device
names where the names file has them.

  --adjacency  print the 15x15 input/output matrix with fan-out and fan-in
  --json       print the decoded routing as JSON`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.pipelineOptions(args[0], in, outputFlags{})
			if err != nil {
				return err
			}
			res, err := c.newRunner().Load(cmd.Context(), &opts)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch {
			case asJSON:
				return pkgio.WriteMapping(w, res.Mapping, res.Names)
			case adjacency:
				writeAdjacency(w, res.Mapping)
			default:
				writeRouteTable(w, res)
			}
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().BoolVar(&adjacency, "adjacency", false, "print the adjacency matrix")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the routing as JSON")
	cmd.MarkFlagsMutuallyExclusive("adjacency", "json")
	return cmd
}

// writeRouteTable renders the routing as a bordered table, one row per
// decoded input in display order.
func writeRouteTable(w io.Writer, res *pipeline.Result) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	var rows [][]string
	for _, s := range res.Display.Slots() {
		outs, ok := res.Mapping.Outputs(s)
		if !ok {
			continue
		}
		r := router.Route{Input: s, Outputs: outs}
		rows = append(rows, []string{
			r.Input.String(),
			res.Names[r.Input],
			formatOutputs(r, res.Names),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("In", "Device", "Outputs").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(rows) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if rows[row][2] == "None" {
				return base.Foreground(colorDim)
			}
			if col == 0 {
				return base.Foreground(colorBlue)
			}
			return base
		})

	fmt.Fprintln(w, StyleTitle.Render(res.Title()))
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("%d inputs · %d connections", res.Stats.Inputs, res.Stats.Edges)))
}

// formatOutputs lists a route's outputs by name, falling back to the number.
func formatOutputs(r router.Route, t names.Table) string {
	if len(r.Outputs) == 0 {
		return "None"
	}
	parts := make([]string, len(r.Outputs))
	for i, o := range r.Outputs {
		if n, ok := t.Get(o); ok && n != "" {
			parts[i] = fmt.Sprintf("%s (%d)", n, o)
		} else {
			parts[i] = fmt.Sprintf("Output %d", o)
		}
	}
	return strings.Join(parts, ", ")
}

// writeAdjacency prints the input×output matrix followed by each output's
// fan-in and each input's fan-out.
func writeAdjacency(w io.Writer, m router.Mapping) {
	a := m.Adjacency(slot.Count)

	ones := mat.NewVecDense(slot.Count, nil)
	for i := range slot.Count {
		ones.SetVec(i, 1)
	}
	var fanOut, fanIn mat.VecDense
	fanOut.MulVec(a, ones)
	fanIn.MulVec(a.T(), ones)

	fmt.Fprintf(w, "%v\n\n", mat.Formatted(a, mat.Squeeze()))
	fmt.Fprintf(w, "fan-out %v\n", mat.Formatted(fanOut.T(), mat.Squeeze()))
	fmt.Fprintf(w, "fan-in  %v\n", mat.Formatted(fanIn.T(), mat.Squeeze()))
}
