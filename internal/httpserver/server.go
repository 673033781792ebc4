// internal/httpserver/server.go
//
// HTTP server wiring for the solver.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words", "/metrics".
//   - Game endpoints: POST /game/new, POST /game/guess (local games the solver can play remotely).
//   - Solver endpoints (require auth): POST /solve, GET /sessions/{id}.
//   - History endpoints: mounted under /history (see routes_history.go).
//
// Notes:
//   - Live games and finished sessions are held in memory; finished sessions are
//     also written to the SQLite history when one is configured.
//   - Require-auth middleware enforces presence and validity of a JWT.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/present"
	"github.com/robalobadob/wordle/apps/go-solver/internal/selector"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Deps are the collaborators a Server needs. Dict and Words are required.
type Deps struct {
	Dict            *words.Dictionary
	Words           solver.WordStore
	History         *daily.Store // optional
	Registry        *prometheus.Registry
	Metrics         *solver.Metrics
	JWTSecret       string
	DailySalt       string
	ClientOrigin    string
	FeedbackTimeout time.Duration
	Attempts        int
	RequestTimeout  time.Duration
}

// Server bundles the router, in-memory stores and dependencies.
type Server struct {
	r        *chi.Mux
	deps     Deps
	games    store.Store[*game.Local]
	sessions store.Store[solver.SessionResult]
	http     *httpMetrics
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}
	if d.Metrics == nil {
		d.Metrics = solver.NewMetrics(d.Registry)
	}
	if d.Attempts <= 0 {
		d.Attempts = solver.DefaultAttempts
	}
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 30 * time.Second
	}
	if d.JWTSecret == "" {
		d.JWTSecret = defaultSecret
	}
	s := &Server{
		r:        chi.NewRouter(),
		deps:     d,
		games:    store.NewMemoryStore[*game.Local](10_000),
		sessions: store.NewMemoryStore[solver.SessionResult](1_000),
		http:     newHTTPMetrics(d.Registry),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(s.accessLog)                     // zerolog access log + request metrics
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(d.RequestTimeout)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(d.ClientOrigin))            // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","POST /game/new","POST /game/guess","POST /solve","/sessions/{id}","/history"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", s.handleDebugWords)
	s.r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))

	// Game endpoints (public)
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Post("/game/guess", s.handleGuess)

	// Solver endpoints (require auth)
	s.r.Group(func(r chi.Router) {
		r.Use(s.requireAuth())
		r.Post("/solve", s.handleSolve)
		r.Get("/sessions/{id}", s.handleSession)
	})

	s.mountHistory(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Handler exposes the router (useful for tests and http.Server).
func (s *Server) Handler() http.Handler { return s.r }

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleDebugWords(w http.ResponseWriter, r *http.Request) {
	live, err := s.deps.Words.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]int{"allowed": s.deps.Dict.Len(), "solver": len(live)})
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Answer string `json:"answer"` // optional fixed answer (testing)
}
type newGameRes struct {
	GameID string `json:"gameId"`
}

// handleNewGame creates a new in-memory game.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	if req.Answer != "" && len(words.Normalize([]string{req.Answer})) == 0 {
		writeError(w, http.StatusBadRequest, game.ErrInvalidGuess.Error())
		return
	}
	g := game.NewLocal(game.New(req.Answer, s.deps.Dict))
	if err := s.games.Save(r.Context(), g.ID(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	log.Debug().Str("gameId", g.ID()).Msg("game created")
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: g.ID()})
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Marks []game.Mark `json:"marks"`
	State string      `json:"state"` // "playing" | "won" | "lost"
}

// handleGuess applies a guess to an in-memory game.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g, err := s.games.Get(r.Context(), req.GameID)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	fb, state, err := g.Guess(req.Guess)
	switch {
	case errors.Is(err, game.ErrFinished):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	_ = json.NewEncoder(w).Encode(guessRes{Marks: game.Marks(fb), State: state})
}

// ------------------------------ SOLVER -------------------------------------

// solveReq is the payload for POST /solve.
type solveReq struct {
	FirstGuess string  `json:"firstGuess"`
	Answer     string  `json:"answer"`
	Seed       *uint64 `json:"seed"`
}

// handleSolve plays a local game to completion and returns the SessionResult.
// The answer defaults to the word of the day.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	answer := req.Answer
	if answer == "" {
		answer = daily.Answer(time.Now(), s.deps.DailySalt, s.deps.Dict.Words())
	}

	presenter := present.Multi{present.Log{}}
	if s.deps.History != nil {
		presenter = append(presenter, present.NewHistory(s.deps.History))
	}

	res, err := solver.Retry(r.Context(), s.deps.Attempts, func(ctx context.Context, attempt int) (solver.SessionResult, error) {
		opts := solver.Options{
			OpeningGuess:    req.FirstGuess,
			FeedbackTimeout: s.deps.FeedbackTimeout,
			Presenter:       presenter,
			Metrics:         s.deps.Metrics,
		}
		if req.Seed != nil {
			opts.Selector = selector.Seeded(*req.Seed + uint64(attempt))
		}
		g := game.NewLocal(game.New(answer, s.deps.Dict))
		return solver.NewSession(g, s.deps.Words, opts).Run(ctx)
	})
	switch {
	case errors.Is(err, solver.ErrInvalidOpeningGuess):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if c, ok := CallerFrom(r.Context()); ok {
		log.Info().Str("caller", c.Username).Str("session", res.ID).Bool("solved", res.Solved).Msg("solve request")
	}
	if err := s.sessions.Save(r.Context(), res.ID, res); err != nil {
		log.Warn().Err(err).Str("session", res.ID).Msg("save session")
	}
	_ = json.NewEncoder(w).Encode(res)
}

// handleSession returns a finished session from memory or the history.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := s.sessions.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) && s.deps.History != nil {
		res, err = s.deps.History.Get(r.Context(), id)
	}
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

// writeError writes {"error": msg} with status.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
