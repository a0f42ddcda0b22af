package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/strukto/strukto/pkg/controlflow"
	"github.com/strukto/strukto/pkg/errors"
	"github.com/strukto/strukto/pkg/layout"
)

// methodsCommand creates the methods command. By default it lists the
// methods of a document; with --pick it opens an interactive selector
// and suggests the render command for the chosen method.
func (c *CLI) methodsCommand() *cobra.Command {
	var pick bool

	cmd := &cobra.Command{
		Use:   "methods [file]",
		Short: "List or interactively pick methods from a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := controlflow.ReadDocumentFile(args[0])
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidDocument, err, "load %s", args[0])
			}
			if len(doc.Methods) == 0 {
				printWarning("Document contains no methods")
				return nil
			}

			if !pick {
				for _, m := range doc.Methods {
					marker := " "
					if m.ControlTree != nil {
						marker = styleIconSuccess.Render(iconSuccess)
					}
					fmt.Printf("%s %s\n", marker, StyleValue.Render(layout.MethodDeclaration(&m)))
				}
				return nil
			}

			selected, err := pickMethod(doc)
			if err != nil {
				return err
			}
			if selected == nil {
				return nil // user quit without choosing
			}
			printSuccess("Selected %s", selected.Name)
			printNextStep("Render it", fmt.Sprintf("%s render %s --method %s", appName, args[0], selected.Name))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&pick, "pick", "p", false, "interactively pick a method")

	return cmd
}

// pickMethod runs the interactive selector and returns the chosen
// method, or nil when the user quits.
func pickMethod(doc *controlflow.Document) (*controlflow.Method, error) {
	model := newMethodListModel(doc)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(methodListModel)
	if !ok || m.selected < 0 {
		return nil, nil
	}
	return &doc.Methods[m.selected], nil
}

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// methodListModel is the bubbletea model for interactive method selection.
type methodListModel struct {
	doc      *controlflow.Document
	cursor   int
	selected int
	height   int
	offset   int
}

func newMethodListModel(doc *controlflow.Document) methodListModel {
	return methodListModel{
		doc:      doc,
		selected: -1,
		height:   15,
	}
}

func (m methodListModel) Init() tea.Cmd {
	return nil
}

func (m methodListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.doc.Methods)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			// Methods without a control-flow tree cannot be rendered.
			if m.doc.Methods[m.cursor].ControlTree == nil {
				return m, nil
			}
			m.selected = m.cursor
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m methodListModel) View() string {
	var b strings.Builder

	title := "Select Method"
	if m.doc.Name != "" {
		title = "Select Method · " + m.doc.Name
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.doc.Methods) {
		end = len(m.doc.Methods)
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		meth := m.doc.Methods[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		ret := meth.ReturnType
		if ret == "" {
			ret = "—"
		}
		vis := meth.Visibility
		if vis == "" {
			vis = "—"
		}
		static := ""
		if meth.Static {
			static = "static"
		}
		tree := ""
		if meth.ControlTree != nil {
			tree = "✓"
		}

		rows = append(rows, []string{cursor, meth.Name, ret, vis, static, tree})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Method", "Returns", "Visibility", "", "Tree").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.offset + row
			if actualIdx >= len(m.doc.Methods) {
				return lipgloss.NewStyle()
			}
			hasTree := m.doc.Methods[actualIdx].ControlTree != nil
			isCurrent := actualIdx == m.cursor

			base := lipgloss.NewStyle()
			if isCurrent {
				if hasTree {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Foreground(colorDim).Bold(true)
			}
			if hasTree {
				return base.Foreground(colorWhite)
			}
			return base.Foreground(colorDim)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.doc.Methods))))

	return b.String()
}
