// internal/httpserver/routes_history.go
//
// HTTP routes for the solve history.
// Exposes two endpoints under /history:
//   - GET /history?date=YYYY-MM-DD&limit=N → stored sessions for a date (default today)
//   - GET /history/today                  → today's date and whether it has been solved
//
// Without a configured history store both endpoints fall back to the in-memory
// sessions of this process.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

const defaultHistoryLimit = 20

// mountHistory registers all /history routes.
func (s *Server) mountHistory(r chi.Router) {
	r.Route("/history", func(r chi.Router) {
		r.Get("/", s.handleHistory)
		r.Get("/today", s.handleToday)
	})
}

// historyRes is returned by /history.
type historyRes struct {
	Date     string         `json:"date"`
	Sessions []daily.Result `json:"sessions"`
}

// handleHistory lists sessions for the given date (default today).
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(time.Now())
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	var (
		rows []daily.Result
		err  error
	)
	if s.deps.History != nil {
		rows, err = s.deps.History.List(r.Context(), date, limit)
	} else {
		rows, err = s.memoryHistory(r, date, limit)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if rows == nil {
		rows = []daily.Result{}
	}
	_ = json.NewEncoder(w).Encode(historyRes{Date: date, Sessions: rows})
}

// todayRes is returned by /history/today.
type todayRes struct {
	Date   string `json:"date"`
	Solved bool   `json:"solved"`
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	date := daily.DateKey(time.Now())
	var solved bool
	if s.deps.History != nil {
		ok, err := s.deps.History.AlreadySolved(r.Context(), date)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "server error")
			return
		}
		solved = ok
	} else {
		rows, _ := s.memoryHistory(r, date, 0)
		for _, row := range rows {
			solved = solved || row.Solved
		}
	}
	_ = json.NewEncoder(w).Encode(todayRes{Date: date, Solved: solved})
}

// memoryHistory converts in-memory sessions of date, newest last. limit <= 0 keeps all.
func (s *Server) memoryHistory(r *http.Request, date string, limit int) ([]daily.Result, error) {
	all, err := s.sessions.List(r.Context())
	if err != nil {
		return nil, err
	}
	var out []daily.Result
	for _, res := range all {
		if daily.DateKey(res.StartedAt) != date {
			continue
		}
		out = append(out, toResult(res))
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func toResult(res solver.SessionResult) daily.Result {
	rows := make([]string, 0, len(res.Rows))
	for _, rec := range res.Rows {
		rows = append(rows, rec.Word+":"+rec.Feedback.Pattern())
	}
	return daily.Result{
		ID:        res.ID,
		Date:      daily.DateKey(res.StartedAt),
		Solved:    res.Solved,
		Solution:  res.Solution,
		Guesses:   len(res.Rows),
		Rejected:  len(res.Rejected),
		ElapsedMs: res.FinishedAt.Sub(res.StartedAt).Milliseconds(),
		Rows:      rows,
	}
}
