// internal/present/console.go
//
// Console board for a single session.
// Responsibilities:
//   - Redraw a six-row board after every accepted guess.
//   - Colour tiles green (correct), yellow (present) and grey (absent).
//   - Show the remaining candidate count under the board.
//
// Colours are dropped automatically when the writer is not a terminal.

package present

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

var (
	colorCorrect = lipgloss.Color("#538D4E")
	colorPresent = lipgloss.Color("#B59F3B")
	colorAbsent  = lipgloss.Color("#3A3A3C")
	colorAccent  = lipgloss.Color("#2CD7C7")
	colorText    = lipgloss.Color("#FFFFFF")
)

// Console renders the board to w.
type Console struct {
	mu   sync.Mutex
	w    io.Writer
	rows []solver.GuessRecord

	tile   map[feedback.State]lipgloss.Style
	empty  lipgloss.Style
	accent lipgloss.Style
	frame  lipgloss.Style
	title  lipgloss.Style
}

// NewConsole builds a Console writing to w.
func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	tile := r.NewStyle().Bold(true).Foreground(colorText).Padding(0, 1)
	return &Console{
		w: w,
		tile: map[feedback.State]lipgloss.Style{
			feedback.Correct: tile.Background(colorCorrect),
			feedback.Present: tile.Background(colorPresent),
			feedback.Absent:  tile.Background(colorAbsent),
			feedback.Pending: tile,
		},
		empty:  r.NewStyle().Foreground(colorAccent),
		accent: r.NewStyle().Foreground(colorAccent).Bold(true),
		frame:  r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		title:  r.NewStyle().Bold(true),
	}
}

// Record redraws the board with rec in its row. A record for row 1 starts a
// new board, so a retried session does not inherit the failed attempt's rows.
func (c *Console) Record(rec solver.GuessRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	keep := min(max(rec.Row-1, 0), len(c.rows))
	c.rows = append(c.rows[:keep], rec)
	fmt.Fprintln(c.w, c.render())
}

// Finish prints the outcome line.
func (c *Console) Finish(res solver.SessionResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var line string
	if res.Solved {
		line = fmt.Sprintf("Solved in %d: %s", len(res.Rows), c.accent.Render(strings.ToUpper(res.Solution)))
	} else {
		line = fmt.Sprintf("Not solved after %d guesses", len(res.Rows))
	}
	if n := len(res.Rejected); n > 0 {
		line += fmt.Sprintf(" (%d rejected: %s)", n, strings.Join(res.Rejected, ", "))
	}
	_, err := fmt.Fprintln(c.w, line)
	return err
}

// Render returns the current board.
func (c *Console) Render() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.render()
}

func (c *Console) render() string {
	var b strings.Builder
	b.WriteString(c.title.Render("Wordle"))
	b.WriteString("\n")
	for i := 0; i < solver.MaxRows; i++ {
		if i < len(c.rows) {
			b.WriteString(c.renderRow(c.rows[i]))
		} else {
			b.WriteString(c.empty.Render(fmt.Sprintf("%-5d", i+1)))
		}
		b.WriteString("\n")
	}
	pool := 0
	if n := len(c.rows); n > 0 {
		pool = c.rows[n-1].PoolSize
	}
	b.WriteString("Total potential words: ")
	b.WriteString(c.accent.Render(fmt.Sprint(pool)))
	return c.frame.Render(b.String())
}

func (c *Console) renderRow(rec solver.GuessRecord) string {
	tiles := make([]string, 0, len(rec.Feedback))
	for _, l := range rec.Feedback {
		tiles = append(tiles, c.tile[l.State].Render(strings.ToUpper(string(l.Letter))))
	}
	return fmt.Sprintf("%-5s ", capitalize(rec.Word)) + strings.Join(tiles, "")
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}
