package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nativedeps/pkg/resolve"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [manifest]",
		Short: "Explore resolutions interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, out, err := c.loadResolutions(manifestPath(args), "")
			if err != nil {
				return err
			}
			p := tea.NewProgram(NewBinaryListModel(out),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run()
			return err
		},
	}
}

// =============================================================================
// BinaryListModel - Interactive resolution explorer
// =============================================================================

// BinaryListModel is the bubbletea model listing resolved binaries. Enter
// opens the selected binary's resolution; esc returns to the list.
type BinaryListModel struct {
	Resolutions []*resolve.Resolution
	Cursor      int
	Height      int
	Offset      int
	Detail      bool // showing the selected resolution
}

// NewBinaryListModel creates a new binary list model.
func NewBinaryListModel(out []*resolve.Resolution) BinaryListModel {
	return BinaryListModel{Resolutions: out, Height: 15}
}

func (m BinaryListModel) Init() tea.Cmd {
	return nil
}

func (m BinaryListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "backspace":
			if !m.Detail {
				return m, tea.Quit
			}
			m.Detail = false
		case "up", "k":
			if !m.Detail && m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if !m.Detail && m.Cursor < len(m.Resolutions)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Resolutions) > 0 {
				m.Detail = true
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m BinaryListModel) View() string {
	if m.Detail {
		return m.detailView()
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Binaries"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Resolutions))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		res := m.Resolutions[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		test := ""
		if res.Test {
			test = "✓"
		}
		rows = append(rows, []string{
			cursor,
			res.Binary.Name,
			res.Binary.Platform,
			res.Binary.BuildType,
			test,
			fmt.Sprintf("%d", len(res.Local)+len(res.Libraries)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Binary", "Platform", "Build", "Test", "Libraries").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(m.Resolutions) > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Resolutions))))
	}
	return b.String()
}

func (m BinaryListModel) detailView() string {
	var b strings.Builder
	renderResolution(&b, m.Resolutions[m.Cursor])
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	return b.String()
}
