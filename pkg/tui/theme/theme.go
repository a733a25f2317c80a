package theme

import "github.com/charmbracelet/lipgloss"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header HeaderTheme
	List   ListTheme
	Footer FooterTheme
	Modal  ModalTheme
}

// HeaderTheme styles the progress and sort line above the list.
type HeaderTheme struct {
	Title    lipgloss.Style
	Progress lipgloss.Style
	Sort     lipgloss.Style
	Search   lipgloss.Style
	Batch    lipgloss.Style
}

// ListTheme styles task rows.
type ListTheme struct {
	Cursor      lipgloss.Style
	Title       lipgloss.Style
	Done        lipgloss.Style
	Description lipgloss.Style
	Star        lipgloss.Style
	Selected    lipgloss.Style
	Empty       lipgloss.Style
}

// FooterTheme groups styles used by the bottom status and help bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// ModalTheme styles the input and confirmation boxes.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	faint := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	return Theme{
		Header: HeaderTheme{
			Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			Progress: lipgloss.NewStyle().Bold(true),
			Sort:     faint,
			Search:   lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
			Batch:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		},
		List: ListTheme{
			Cursor:      lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Title:       lipgloss.NewStyle(),
			Done:        faint.Strikethrough(true),
			Description: faint,
			Star:        lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
			Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Empty:       faint.Italic(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: faint,
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
	}
}
