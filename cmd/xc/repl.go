package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xlang/xc/compiler"
	"github.com/xlang/xc/compiler/tp"
)

const (
	replName = "<repl>"

	prompt     = "xc> "
	contPrompt = "... "
)

type (
	replModel struct {
		in textinput.Model

		chunk []string // lines of an unfinished function
		depth int      // brace depth of chunk

		log   []replEntry
		lines lineHistory

		ready    bool
		help     bool
		quitting bool
	}

	replEntry struct {
		src    string
		out    string
		failed bool
	}

	// lineHistory is browsed with up/down. cur == len(lines) means not browsing.
	lineHistory struct {
		lines []string
		cur   int
	}
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Bold(true)
	outStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	replKeys = struct {
		quit, clear, help, prev, next, complete, submit key.Binding
	}{
		quit:     key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
		clear:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		help:     key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "help")),
		prev:     key.NewBinding(key.WithKeys("up")),
		next:     key.NewBinding(key.WithKeys("down")),
		complete: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
		submit:   key.NewBinding(key.WithKeys("enter")),
	}

	replCommands = [][2]string{
		{":types", "list types"},
		{":reset", "drop the unfinished function"},
		{":clear", "clear the transcript"},
		{":help", "toggle this panel"},
		{":quit", "exit"},
	}

	replWords = append([]string{"fn", "mut", "const", "return"}, tp.Names()...)
)

func runREPL() error {
	_, err := tea.NewProgram(newREPLModel(), tea.WithAltScreen()).Run()
	return err
}

func newREPLModel() replModel {
	in := textinput.New()
	in.Prompt = prompt
	in.PromptStyle = titleStyle
	in.Placeholder = "fn main() -> i32 { return 0; }"
	in.Focus()

	return replModel{in: in}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.in.Width = msg.Width - len(prompt) - 2
		m.ready = true

		return m, nil
	case tea.KeyMsg:
		return m.key(msg)
	}

	var cmd tea.Cmd
	m.in, cmd = m.in.Update(msg)

	return m, cmd
}

func (m replModel) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, replKeys.quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, replKeys.clear):
		m.log = nil
	case key.Matches(msg, replKeys.help):
		m.help = !m.help
	case key.Matches(msg, replKeys.prev):
		if l, ok := m.lines.prev(); ok {
			m.setInput(l)
		}
	case key.Matches(msg, replKeys.next):
		if l, ok := m.lines.next(); ok {
			m.setInput(l)
		}
	case key.Matches(msg, replKeys.complete):
		return m.complete(), nil
	case key.Matches(msg, replKeys.submit):
		return m.submit()
	default:
		var cmd tea.Cmd
		m.in, cmd = m.in.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m *replModel) setInput(s string) {
	m.in.SetValue(s)
	m.in.CursorEnd()
}

// submit takes the input line. Once the braces of the collected lines
// balance, they are translated as one unit.
func (m replModel) submit() (tea.Model, tea.Cmd) {
	line := m.in.Value()
	m.in.SetValue("")
	m.lines.rewind()

	trimmed := strings.TrimSpace(line)

	switch {
	case strings.HasPrefix(trimmed, ":"):
		return m.command(trimmed)
	case trimmed == "" && len(m.chunk) == 0:
		return m, nil
	}

	m.lines.add(line)
	m.chunk = append(m.chunk, line)
	m.depth += strings.Count(line, "{") - strings.Count(line, "}")

	if m.depth > 0 {
		m.in.Prompt = contPrompt
		return m, nil
	}

	src := strings.Join(m.chunk, "\n")
	out, failed := translate(src)

	m.log = append(m.log, replEntry{src: src, out: out, failed: failed})
	m.dropChunk()

	return m, nil
}

func (m replModel) command(line string) (tea.Model, tea.Cmd) {
	switch name := strings.Fields(line)[0]; name {
	case ":q", ":quit":
		m.quitting = true
		return m, tea.Quit
	case ":h", ":help":
		m.help = !m.help
	case ":c", ":clear":
		m.log = nil
	case ":r", ":reset":
		m.dropChunk()
	case ":t", ":types":
		m.log = append(m.log, replEntry{src: line, out: "types: " + strings.Join(tp.Names(), " ")})
	default:
		m.log = append(m.log, replEntry{src: line, out: "unknown command " + name + " (try :help)", failed: true})
	}

	return m, nil
}

func (m *replModel) dropChunk() {
	m.chunk = nil
	m.depth = 0
	m.in.Prompt = prompt
}

// complete extends the word under the cursor if exactly one keyword or type
// matches, otherwise lists the candidates.
func (m replModel) complete() replModel {
	v := m.in.Value()
	i := strings.LastIndexAny(v, " \t(){}:;=+") + 1

	word := v[i:]
	if word == "" {
		return m
	}

	var hits []string

	for _, w := range replWords {
		if w != word && strings.HasPrefix(w, word) {
			hits = append(hits, w)
		}
	}

	switch len(hits) {
	case 0:
	case 1:
		m.setInput(v[:i] + hits[0])
	default:
		m.log = append(m.log, replEntry{out: strings.Join(hits, " ")})
	}

	return m
}

func translate(src string) (string, bool) {
	obj, err := compiler.Compile(context.Background(), replName, []byte(src))
	if err != nil {
		return diagnose(replName, []byte(src), err), true
	}

	return strings.TrimSuffix(string(obj), "\n"), false
}

func (m replModel) View() string {
	if m.quitting {
		return dimStyle.Render("bye") + "\n"
	}

	if !m.ready {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("xc repl") + dimStyle.Render("  x in, C out") + "\n\n")

	for _, e := range m.log {
		e.writeTo(&b)
	}

	for _, l := range m.chunk {
		b.WriteString(dimStyle.Render(contPrompt) + l + "\n")
	}

	if m.help {
		b.WriteString(helpPanel() + "\n")
	}

	b.WriteString(m.in.View() + "\n\n")
	b.WriteString(footer())

	return b.String()
}

func (e replEntry) writeTo(b *strings.Builder) {
	if e.src != "" {
		for _, l := range strings.Split(e.src, "\n") {
			b.WriteString(dimStyle.Render(prompt) + l + "\n")
		}
	}

	st := outStyle
	if e.failed {
		st = errStyle
	}

	for _, l := range strings.Split(e.out, "\n") {
		b.WriteString(st.Render(l) + "\n")
	}

	b.WriteString("\n")
}

func helpPanel() string {
	var b strings.Builder

	b.WriteString("lines are collected until braces balance, then translated to C\n")

	for _, c := range replCommands {
		fmt.Fprintf(&b, "\n%s %s", keyStyle.Render(fmt.Sprintf("%-7s", c[0])), dimStyle.Render(c[1]))
	}

	return panelStyle.Render(b.String())
}

func footer() string {
	var parts []string

	for _, k := range []key.Binding{replKeys.complete, replKeys.help, replKeys.clear, replKeys.quit} {
		h := k.Help()
		parts = append(parts, keyStyle.Render(h.Key)+" "+dimStyle.Render(h.Desc))
	}

	return strings.Join(parts, "  ")
}

func (h *lineHistory) add(l string) {
	h.lines = append(h.lines, l)
	h.cur = len(h.lines)
}

func (h *lineHistory) rewind() {
	h.cur = len(h.lines)
}

func (h *lineHistory) prev() (string, bool) {
	if h.cur == 0 {
		return "", false
	}

	h.cur--

	return h.lines[h.cur], true
}

func (h *lineHistory) next() (string, bool) {
	if h.cur >= len(h.lines) {
		return "", false
	}

	h.cur++

	if h.cur == len(h.lines) {
		return "", true
	}

	return h.lines[h.cur], true
}
