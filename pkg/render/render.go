// Package render draws a text.Text as ruby text in the terminal: each word's
// reading sits centered above its characters.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/japaniel/rubylens/pkg/text"
)

// Styles controls how the parts of a ruby line are drawn.
type Styles struct {
	Reading lipgloss.Style
	Word    lipgloss.Style
	Plain   lipgloss.Style
}

// DefaultStyles returns the styles used by the CLI.
func DefaultStyles() Styles {
	return Styles{
		Reading: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Word:    lipgloss.NewStyle().Bold(true),
		Plain:   lipgloss.NewStyle(),
	}
}

// Ruby renders t wrapped to width display cells (0 means no wrapping). Line
// breaks inside plain segments start a new row.
func Ruby(t text.Text, width int) string {
	return DefaultStyles().Ruby(t, width)
}

// Ruby renders t with these styles.
func (s Styles) Ruby(t text.Text, width int) string {
	var (
		rows    []string
		row     []string
		rowWide int
	)
	flush := func() {
		if len(row) == 0 {
			rows = append(rows, "")
		} else {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Bottom, row...))
		}
		row, rowWide = nil, 0
	}
	add := func(block string) {
		w := lipgloss.Width(block)
		if width > 0 && rowWide > 0 && rowWide+w > width {
			flush()
		}
		row = append(row, block)
		rowWide += w
	}

	for _, seg := range t.Segments {
		switch seg.Kind {
		case text.KindWord:
			add(s.wordBlock(seg.Word))
		default:
			for _, r := range seg.Text {
				if r == '\n' {
					flush()
					continue
				}
				add(s.plainBlock(string(r)))
			}
		}
	}
	if len(row) > 0 {
		flush()
	}
	return strings.Join(rows, "\n")
}

// wordBlock is two lines tall: the reading over the characters, both centered
// in the wider of the two, plus one cell of spacing.
func (s Styles) wordBlock(w text.Word) string {
	reading := s.Reading.Render(w.Pronunciation)
	chars := s.Word.Render(w.Characters)
	cell := max(lipgloss.Width(reading), lipgloss.Width(chars)) + 1
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.PlaceHorizontal(cell, lipgloss.Center, reading),
		lipgloss.PlaceHorizontal(cell, lipgloss.Center, chars),
	)
}

func (s Styles) plainBlock(p string) string {
	body := s.Plain.Render(p)
	return lipgloss.JoinVertical(lipgloss.Left, strings.Repeat(" ", lipgloss.Width(body)), body)
}
