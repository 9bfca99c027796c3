// Package display renders stepcalc results for a terminal: boxed answers,
// ASCII tree diagrams and step traces.
package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/njchilds90/stepcalc"
)

var boxBorder = lipgloss.Border{
	Top:    "=",
	Bottom: "=",
}

// Printer renders boxed messages, optionally colored.
type Printer struct {
	box lipgloss.Style
}

// NewPrinter returns a Printer. With color set the box border is tinted.
func NewPrinter(color bool) *Printer {
	style := lipgloss.NewStyle().
		Border(boxBorder, true, false, true, false).
		Padding(0, 2)
	if color {
		style = style.BorderForeground(lipgloss.Color("#8BC34A"))
	}
	return &Printer{box: style}
}

// Box frames message between two rules of '=' as wide as the longest line
// plus four.
func (p *Printer) Box(message string) string {
	return p.box.Render(message)
}

// Box frames message with the default, uncolored printer.
func Box(message string) string { return NewPrinter(false).Box(message) }

// Trace lists the rewrites of a result: the original text indented by two
// spaces, then one "= " line per later step.
func Trace(trace []string) string {
	if len(trace) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("  " + trace[0] + "\n")
	for _, step := range trace[1:] {
		sb.WriteString("= " + step + "\n")
	}
	return sb.String()
}

// label is how a single node appears in a tree diagram.
func label(n stepcalc.Node) string {
	if b, ok := n.(*stepcalc.BinOp); ok {
		return b.Op().String()
	}
	return n.String()
}

func children(n stepcalc.Node) (left, right stepcalc.Node) {
	if b, ok := n.(*stepcalc.BinOp); ok {
		return b.Left(), b.Right()
	}
	return nil, nil
}

// Tree draws n as a top-down ASCII diagram with '/' and '\' edges.
func Tree(n stepcalc.Node) string {
	var sb strings.Builder
	drawLevel(&sb, []stepcalc.Node{n}, 1, stepcalc.Depth(n))
	return sb.String()
}

func spaces(sb *strings.Builder, count int) {
	if count > 0 {
		sb.WriteString(strings.Repeat(" ", count))
	}
}

func drawLevel(sb *strings.Builder, nodes []stepcalc.Node, level, maxLevel int) {
	empty := true
	for _, n := range nodes {
		if n != nil {
			empty = false
			break
		}
	}
	if empty {
		return
	}

	floor := maxLevel - level
	edgeLines := 1 << max(floor-1, 0)
	firstSpaces := (1 << floor) - 1
	betweenSpaces := (1 << (floor + 1)) - 1

	spaces(sb, firstSpaces)
	next := make([]stepcalc.Node, 0, 2*len(nodes))
	for _, n := range nodes {
		if n != nil {
			sb.WriteString(label(n))
			l, r := children(n)
			next = append(next, l, r)
		} else {
			next = append(next, nil, nil)
			sb.WriteString(" ")
		}
		spaces(sb, betweenSpaces)
	}
	sb.WriteString("\n")

	if floor > 0 {
		for i := 1; i <= edgeLines; i++ {
			for _, n := range nodes {
				spaces(sb, firstSpaces-i)
				if n == nil {
					spaces(sb, 2*edgeLines+i+1)
					continue
				}
				l, r := children(n)
				if l != nil {
					sb.WriteString("/")
				} else {
					spaces(sb, 1)
				}
				spaces(sb, 2*i-1)
				if r != nil {
					sb.WriteString("\\")
				} else {
					spaces(sb, 1)
				}
				spaces(sb, 2*edgeLines-i)
			}
			sb.WriteString("\n")
		}
	}

	drawLevel(sb, next, level+1, maxLevel)
}
