package terminal

// LineKind is the role of a transcript line, used for styling.
type LineKind int

const (
	LineCommand LineKind = iota // A past command, drawn after the shell prompt
	LineError                   // Not-found message under a command
	LineOutput                  // Content of the current view
	LineInput                   // The editable input line
)

// Line is one transcript row. Prompt is set for command and input lines.
type Line struct {
	Kind   LineKind
	Prompt string
	Text   string
}

func (l Line) String() string {
	if l.Prompt == "" {
		return l.Text
	}
	return l.Prompt + " " + l.Text
}

// Transcript returns the history, then the current view, then the input line.
func (t *Terminal) Transcript() []Line {
	view := t.table.Lines(t.state.View)
	out := make([]Line, 0, 2*len(t.state.History)+len(view)+1)

	for _, e := range t.state.History {
		out = append(out, Line{Kind: LineCommand, Prompt: t.table.Shell, Text: e.Command})
		if e.Error != "" {
			out = append(out, Line{Kind: LineError, Text: e.Error})
		}
	}
	for _, text := range view {
		out = append(out, Line{Kind: LineOutput, Text: text})
	}

	input := string(t.input)
	if t.cursorVisible {
		input += CursorGlyph
	}
	return append(out, Line{Kind: LineInput, Prompt: t.table.Shell, Text: input})
}

// Lines is Transcript rendered as plain text.
func (t *Terminal) Lines() []string {
	tr := t.Transcript()
	out := make([]string, len(tr))
	for i, l := range tr {
		out[i] = l.String()
	}
	return out
}
