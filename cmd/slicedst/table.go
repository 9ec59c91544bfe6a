package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/slicedst/layout"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	wordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5A5A8C"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(lipgloss.Color("#98FB98"))

	dataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(lipgloss.Color("#87CEEB"))

	padStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// renderer applies styles only when writing to a terminal.
type renderer struct {
	color bool
}

func (r renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// row is one line of the layout table.
type row struct {
	n   int
	blk layout.Block
	err error
}

func computeRows(header, elem shape, lengths []int) []row {
	rows := make([]row, len(lengths))
	for i, n := range lengths {
		blk, err := layout.HeaderSlice(header.layout, elem.layout, n)
		rows[i] = row{n: n, blk: blk, err: err}
	}
	return rows
}

// padding returns the bytes of blk not covered by the length word, the
// header and the elements.
func padding(blk layout.Block) uintptr {
	used := layout.Word.Size + blk.Header.Size + blk.Elem.Size*uintptr(blk.Len)
	return blk.Size - used
}

func writeTable(w io.Writer, r renderer, header, elem shape, rows []row) {
	fmt.Fprintf(w, "%s header %s %s, element %s %s\n\n",
		r.style(titleStyle, "HeaderSlice"),
		r.style(typeStyle, header.name), header.layout,
		r.style(typeStyle, elem.name), elem.layout)

	fmt.Fprintf(w, "%12s %12s %6s %8s %8s %8s  %s\n", "n", "size", "align", "header@", "data@", "padding", "human")
	for _, row := range rows {
		if row.err != nil {
			fmt.Fprintf(w, "%12d %s\n", row.n, r.style(errorStyle, row.err.Error()))
			continue
		}
		b := row.blk
		fmt.Fprintf(w, "%12d %12d %6d %8d %8d %8d  %s\n",
			row.n, b.Size, b.Align, b.HeaderOffset, b.DataOffset, padding(b),
			r.style(resultStyle, datasize.ByteSize(b.Size).HR()))
	}
}

// diagram draws the block one cell per byte, up to limit cells.
func diagram(r renderer, blk layout.Block, limit int) string {
	var b strings.Builder
	truncated := blk.Size > uintptr(limit)
	cell := func(s lipgloss.Style, ch byte, count uintptr) {
		for range count {
			if limit == 0 {
				return
			}
			limit--
			b.WriteString(r.style(s, string(ch)))
		}
	}
	cell(wordStyle, 'L', layout.Word.Size)
	cell(padStyle, '.', blk.HeaderOffset-layout.Word.Size)
	cell(headerStyle, 'H', blk.Header.Size)
	cell(padStyle, '.', blk.DataOffset-blk.HeaderOffset-blk.Header.Size)
	for i := 0; i < blk.Len; i++ {
		ch := byte('0' + i%10)
		cell(dataStyle, ch, blk.Elem.Size)
	}
	end := blk.DataOffset + blk.Elem.Size*uintptr(blk.Len)
	cell(padStyle, '.', blk.Size-end)
	if truncated {
		b.WriteString("...")
	}
	return b.String()
}

// parseLengths parses "0,1,3" and ranges such as "0-4".
func parseLengths(s string) ([]int, error) {
	var out []int
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(part, "-"); ok && lo != "" {
			a, err := strconv.Atoi(lo)
			if err != nil {
				return nil, fmt.Errorf("bad range %q: %w", part, err)
			}
			b, err := strconv.Atoi(hi)
			if err != nil || b < a {
				return nil, fmt.Errorf("bad range %q", part)
			}
			for n := a; n <= b; n++ {
				out = append(out, n)
			}
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("bad length %q: %w", part, err)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no lengths given")
	}
	return out, nil
}
