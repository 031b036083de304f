package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hxmidi/midimap/pkg/names"
	"github.com/hxmidi/midimap/pkg/pipeline"
	"github.com/hxmidi/midimap/pkg/slot"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1).
				MarginLeft(2)
)

// browseCommand creates the interactive route browser.
func (c *CLI) browseCommand() *cobra.Command {
	var in inputFlags

	cmd := &cobra.Command{
		Use:   "browse <router.json>",
		Short: "Step through a router's inputs interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.pipelineOptions(args[0], in, outputFlags{})
			if err != nil {
				return err
			}
			res, err := c.newRunner().Load(cmd.Context(), &opts)
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewRouteListModel(res), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	in.register(cmd)
	return cmd
}

// =============================================================================
// RouteListModel - Interactive input browsing
// =============================================================================

// routeRow is one input of the browser with what it feeds and what feeds it.
type routeRow struct {
	Slot    slot.Slot
	Label   string
	Decoded bool
	Outputs []slot.Slot
	Sources []slot.Slot
}

// RouteListModel is the bubbletea model for browsing inputs in display order.
type RouteListModel struct {
	Title  string
	Rows   []routeRow
	Names  names.Table
	Cursor int
}

// NewRouteListModel builds the browser rows from a loaded result.
func NewRouteListModel(res *pipeline.Result) RouteListModel {
	sources := map[slot.Slot][]slot.Slot{}
	for _, e := range res.Mapping.Edges() {
		sources[e.Output] = append(sources[e.Output], e.Input)
	}

	m := RouteListModel{Title: res.Title(), Names: res.Names}
	for _, s := range res.Display.Slots() {
		outs, ok := res.Mapping.Outputs(s)
		m.Rows = append(m.Rows, routeRow{
			Slot:    s,
			Label:   res.Names[s],
			Decoded: ok,
			Outputs: outs,
			Sources: sources[s],
		})
	}
	return m
}

func (m RouteListModel) Init() tea.Cmd {
	return nil
}

func (m RouteListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(len(m.Rows)-1, 0)
		}
	}
	return m, nil
}

func (m RouteListModel) View() string {
	var list strings.Builder
	for i, r := range m.Rows {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		} else if !r.Decoded || len(r.Outputs) == 0 {
			style = listDimStyle
		}
		list.WriteString(style.Render(fmt.Sprintf("%s%2d %s", cursor, r.Slot, r.Label)))
		list.WriteString("\n")
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), detailBoxStyle.Render(m.detail())))
	b.WriteString("\n")
	return b.String()
}

// detail describes the row under the cursor.
func (m RouteListModel) detail() string {
	if len(m.Rows) == 0 {
		return listDimStyle.Render("no inputs")
	}
	r := m.Rows[m.Cursor]

	var b strings.Builder
	b.WriteString(styleInput.Render(fmt.Sprintf("Input %d", r.Slot)))
	if r.Label != "" {
		b.WriteString(" " + listNormalStyle.Render(r.Label))
	}
	b.WriteString("\n\n")

	switch {
	case !r.Decoded:
		b.WriteString(StyleWarning.Render("entry could not be decoded"))
	case len(r.Outputs) == 0:
		b.WriteString(listDimStyle.Render("feeds nothing"))
	default:
		b.WriteString(listDimStyle.Render("feeds"))
		for _, o := range r.Outputs {
			b.WriteString("\n  " + iconArrow + " " + m.slotLabel(o))
		}
	}

	if len(r.Sources) > 0 {
		b.WriteString("\n\n" + listDimStyle.Render("fed by"))
		for _, s := range r.Sources {
			b.WriteString("\n  " + m.slotLabel(s))
		}
	}
	return b.String()
}

func (m RouteListModel) slotLabel(s slot.Slot) string {
	if n, ok := m.Names.Get(s); ok && n != "" {
		return fmt.Sprintf("%2d %s", s, n)
	}
	return fmt.Sprintf("%2d", s)
}
