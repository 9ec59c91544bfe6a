package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/slicedst/layout"
)

var selectedStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4"))

type column int

const (
	columnHeader column = iota
	columnElem
	columnLen
)

type explorerModel struct {
	input   textinput.Model
	choices []shape
	header  int
	elem    int
	focus   column
	width   int
}

func newExplorerModel(header, elem shape, n int) *explorerModel {
	ti := textinput.New()
	ti.Prompt = "n: "
	ti.Placeholder = "element count"
	ti.CharLimit = 12
	ti.Width = 14
	ti.SetValue(strconv.Itoa(n))

	m := &explorerModel{input: ti, width: 80, choices: slices.Clone(shapes)}
	m.header = m.choose(header)
	m.elem = m.choose(elem)
	return m
}

// choose returns the index of sh, adding it when it is not a primitive.
func (m *explorerModel) choose(sh shape) int {
	for i, c := range m.choices {
		if c.name == sh.name {
			return i
		}
	}
	m.choices = append(m.choices, sh)
	return len(m.choices) - 1
}

func (m *explorerModel) Init() tea.Cmd {
	return nil
}

func (m *explorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "q":
			if m.focus != columnLen {
				return m, tea.Quit
			}

		case "tab", "right":
			m.setFocus((m.focus + 1) % 3)
			return m, nil

		case "shift+tab", "left":
			m.setFocus((m.focus + 2) % 3)
			return m, nil

		case "up", "k":
			m.move(-1)
			return m, nil

		case "down", "j":
			m.move(1)
			return m, nil
		}
	}

	if m.focus == columnLen {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *explorerModel) setFocus(c column) {
	m.focus = c
	if c == columnLen {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *explorerModel) move(delta int) {
	switch m.focus {
	case columnHeader:
		m.header = (m.header + delta + len(m.choices)) % len(m.choices)
	case columnElem:
		m.elem = (m.elem + delta + len(m.choices)) % len(m.choices)
	case columnLen:
		n, _ := strconv.Atoi(m.input.Value())
		m.input.SetValue(strconv.Itoa(max(n-delta, 0)))
	}
}

func (m *explorerModel) block() (layout.Block, error) {
	n, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
	if err != nil {
		return layout.Block{}, fmt.Errorf("n: %w", err)
	}
	return layout.HeaderSlice(m.choices[m.header].layout, m.choices[m.elem].layout, n)
}

func (m *explorerModel) View() string {
	r := renderer{color: true}
	var b strings.Builder

	b.WriteString(titleStyle.Render("HeaderSlice layout"))
	b.WriteString("\n\n")

	pick := func(label string, idx int, c column) string {
		text := label + ": " + m.choices[idx].name
		if m.focus == c {
			return selectedStyle.Render(text)
		}
		return typeStyle.Render(text)
	}
	b.WriteString(pick("header", m.header, columnHeader))
	b.WriteString("   ")
	b.WriteString(pick("element", m.elem, columnElem))
	b.WriteString("   ")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	blk, err := m.block()
	if err != nil {
		b.WriteString(errorStyle.Render(err.Error()))
	} else {
		fmt.Fprintf(&b, "size %d  align %d  header@%d  data@%d  padding %d\n\n",
			blk.Size, blk.Align, blk.HeaderOffset, blk.DataOffset, padding(blk))
		b.WriteString(diagram(r, blk, max(m.width-4, 16)*4))
		b.WriteString("\n\n")
		b.WriteString(r.style(wordStyle, "L") + " length  " +
			r.style(headerStyle, "H") + " header  " +
			r.style(dataStyle, "0") + " elements  " +
			r.style(padStyle, ".") + " padding")
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab switch • ↑/↓ change • esc quit"))
	return b.String()
}

func runInteractive(header, elem shape, n int) error {
	p := tea.NewProgram(newExplorerModel(header, elem, n), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
