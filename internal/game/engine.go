// internal/game/engine.go
//
// Core game engine for a single Wordle game.
// Responsibilities:
//   - Create new games with fixed dimensions (6x5).
//   - Validate and apply guesses (length, alphabetic, allowed list).
//   - Score guesses with feedback.Score (classic two-pass algorithm).
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - The allowed list is the *words.Dictionary the game was created with.
//   - randomID() is a compact hex identifier for correlating server state.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

const (
	defaultRows = 6
	defaultCols = feedback.WordLength
)

var (
	ErrFinished      = errors.New("game finished")
	ErrInvalidGuess  = errors.New("invalid guess")
	ErrNotInWordList = errors.New("not in word list")
)

// New constructs a new game instance that accepts the words of dict.
// If withAnswer is empty, a random answer is chosen from dict.
func New(withAnswer string, dict *words.Dictionary) *Game {
	ans := strings.ToLower(strings.TrimSpace(withAnswer))
	if ans == "" {
		ans = dict.RandomWord()
	}
	return &Game{
		ID:      randomID(),
		Answer:  ans,
		Rows:    defaultRows,
		Cols:    defaultCols,
		Guesses: []string{},
		allowed: dict,
	}
}

// ApplyGuess validates and scores a guess, mutating the game state.
// Returns: the scored feedback, the new state string ("playing"/"won"/"lost"), or an error.
//
// Validation rules:
//   - Game must not be finished (ErrFinished).
//   - Guess must be exactly g.Cols letters a–z (ErrInvalidGuess).
//   - Guess must be in the allowed list or be the answer (ErrNotInWordList).
//
// State transitions:
//   - If all tiles are Correct → Finished = true, Won = true.
//   - Else if the number of guesses reaches g.Rows → Finished = true (loss).
func (g *Game) ApplyGuess(guess string) (feedback.Feedback, string, error) {
	if g.Finished {
		return feedback.Feedback{}, g.State(), ErrFinished
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if len(guess) != g.Cols || !words.IsValid(guess) {
		return feedback.Rejected(guess), g.State(), ErrInvalidGuess
	}
	if guess != g.Answer && g.allowed != nil && !g.allowed.Contains(guess) {
		return feedback.Rejected(guess), g.State(), ErrNotInWordList
	}

	fb := feedback.Score(g.Answer, guess)
	g.Guesses = append(g.Guesses, guess)

	if fb.Solved() {
		g.Finished, g.Won = true, true
	} else if len(g.Guesses) >= g.Rows {
		g.Finished = true
	}
	return fb, g.State(), nil
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
