package present

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// Markdown appends a results table to a file when a session finishes.
type Markdown struct {
	mu   sync.Mutex // serialises appends from parallel sessions
	path string
}

// NewMarkdown exports to path, creating it on first use.
func NewMarkdown(path string) *Markdown { return &Markdown{path: path} }

// Record is a no-op; the table is written once, on Finish.
func (m *Markdown) Record(solver.GuessRecord) {}

// Finish appends the table for res.
func (m *Markdown) Finish(res solver.SessionResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if dir := filepath.Dir(m.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(m.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open export: %w", err)
	}
	if _, err := f.WriteString(FormatMarkdown(res)); err != nil {
		_ = f.Close()
		return fmt.Errorf("write export: %w", err)
	}
	return f.Close()
}

const blankRow = "|   |   |   |   |   |   |\n"

// FormatMarkdown renders res: one row per attempt, blank rows for unused
// attempts, then the solution line.
func FormatMarkdown(res solver.SessionResult) string {
	var b strings.Builder
	b.WriteString(blankRow)
	b.WriteString("| - | - | - | - | - | - |\n")
	for i := 0; i < solver.MaxRows; i++ {
		if i >= len(res.Rows) {
			b.WriteString(blankRow)
			continue
		}
		rec := res.Rows[i]
		b.WriteString("| " + capitalize(rec.Word))
		for _, l := range rec.Feedback {
			b.WriteString(" | " + string(l.Letter))
		}
		b.WriteString(" |\n")
	}
	date := daily.DateKey(res.StartedAt)
	if res.Solved {
		fmt.Fprintf(&b, "The Wordle for %s is: %s\n", date, strings.ToUpper(res.Solution))
	} else {
		fmt.Fprintf(&b, "The Wordle for %s was not solved\n", date)
	}
	return b.String()
}
