package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xlang/xc/compiler"
)

var (
	diagErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	diagGutterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	diagCaretStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)
)

// diagnose renders a compile error with the source line it points at.
func diagnose(name string, src []byte, err error) string {
	var b strings.Builder

	head := "error"
	if st := compiler.Stage(err); st != "" {
		head += "[" + st + "]"
	}

	b.WriteString(diagErrorStyle.Render(head+":") + " " + err.Error())

	pos, ok := compiler.Position(err)
	if !ok {
		return b.String()
	}

	fmt.Fprintf(&b, "\n  %s %s:%v", diagGutterStyle.Render("-->"), name, pos)

	lines := strings.Split(string(src), "\n")
	if pos.Line > len(lines) {
		return b.String()
	}

	line := strings.TrimRight(lines[pos.Line-1], "\r")
	runes := []rune(line)

	col := pos.Col
	if col > len(runes)+1 {
		col = len(runes) + 1
	}

	label := strconv.Itoa(pos.Line)
	pad := strings.Repeat(" ", len(label))

	// keep tabs so the caret lines up with the source line
	var caret strings.Builder
	for _, r := range runes[:col-1] {
		if r == '\t' {
			caret.WriteRune('\t')
		} else {
			caret.WriteByte(' ')
		}
	}

	fmt.Fprintf(&b, "\n %s %s", pad, diagGutterStyle.Render("|"))
	fmt.Fprintf(&b, "\n %s %s %s", label, diagGutterStyle.Render("|"), line)
	fmt.Fprintf(&b, "\n %s %s %s%s", pad, diagGutterStyle.Render("|"), caret.String(), diagCaretStyle.Render("^"))

	return b.String()
}
