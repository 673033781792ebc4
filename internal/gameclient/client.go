// internal/gameclient/client.go
//
// HTTP implementation of solver.Game.
// Plays one game against a Wordle server exposing:
//   - POST /game/new   {answer?}        → {gameId}
//   - POST /game/guess {gameId, guess}  → {marks, state}
//
// A 400 response naming an unknown or malformed word is a rejection (the row is
// not consumed). Every other non-2xx response is an error.

package gameclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// ErrUnexpectedStatus wraps non-2xx responses that are not rejections.
var ErrUnexpectedStatus = errors.New("gameclient: unexpected status")

// Client is a single remote game.
type Client struct {
	base   string
	http   *http.Client
	gameID string

	mu      sync.Mutex
	nextRow int
}

type newGameReq struct {
	Answer string `json:"answer,omitempty"`
}

type newGameRes struct {
	GameID string `json:"gameId"`
}

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type guessRes struct {
	Marks []game.Mark `json:"marks"`
	State string      `json:"state"`
}

type errorRes struct {
	Error string `json:"error"`
}

// New starts a game on the server at baseURL. answer may be empty.
// A nil hc uses http.DefaultClient.
func New(ctx context.Context, baseURL, answer string, hc *http.Client) (*Client, error) {
	if hc == nil {
		hc = http.DefaultClient
	}
	c := &Client{base: strings.TrimRight(baseURL, "/"), http: hc, nextRow: 1}

	var res newGameRes
	status, body, err := c.post(ctx, "/game/new", newGameReq{Answer: answer})
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("new game: %w %d: %s", ErrUnexpectedStatus, status, bytes.TrimSpace(body))
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("decode new game: %w", err)
	}
	if res.GameID == "" {
		return nil, errors.New("new game: empty gameId")
	}
	c.gameID = res.GameID
	log.Debug().Str("gameId", c.gameID).Str("server", c.base).Msg("remote game started")
	return c, nil
}

// GameID is the server-side id.
func (c *Client) GameID() string { return c.gameID }

// Submit sends word for row and waits for the server's verdict.
func (c *Client) Submit(ctx context.Context, word string, row int) (solver.Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if row != c.nextRow {
		return solver.Outcome{}, fmt.Errorf("%w: got %d, want %d", game.ErrRowMismatch, row, c.nextRow)
	}

	status, body, err := c.post(ctx, "/game/guess", guessReq{GameID: c.gameID, Guess: word})
	if err != nil {
		return solver.Outcome{}, err
	}
	switch status {
	case http.StatusOK:
	case http.StatusBadRequest:
		var e errorRes
		_ = json.Unmarshal(body, &e)
		if isRejection(e.Error) {
			return solver.Outcome{Accepted: false, Feedback: feedback.Rejected(word)}, nil
		}
		fallthrough
	default:
		return solver.Outcome{}, fmt.Errorf("guess: %w %d: %s", ErrUnexpectedStatus, status, bytes.TrimSpace(body))
	}

	var res guessRes
	if err := json.Unmarshal(body, &res); err != nil {
		return solver.Outcome{}, fmt.Errorf("decode guess: %w", err)
	}
	fb, err := game.FromMarks(word, res.Marks)
	if err != nil {
		return solver.Outcome{}, fmt.Errorf("decode marks: %w", err)
	}
	c.nextRow++
	return solver.Outcome{Accepted: true, Feedback: fb}, nil
}

func isRejection(msg string) bool {
	return msg == game.ErrNotInWordList.Error() || msg == game.ErrInvalidGuess.Error()
}

func (c *Client) post(ctx context.Context, path string, payload any) (int, []byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(b))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read %s: %w", path, err)
	}
	return resp.StatusCode, body, nil
}
