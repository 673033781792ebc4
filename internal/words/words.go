// internal/words/words.go
//
// Dictionary handling for the solver.
//
// Responsibilities:
//   - Normalise raw word lists (lowercase, trimmed, exactly 5 letters a–z, no duplicates).
//   - Read dictionary files: a JSON object mapping word -> weight, or one word per line.
//   - Provide an immutable, sorted Dictionary with fast membership checks.
//   - Expose the embedded default dictionary (loaded once via sync.Once).
//
// Weights are opaque; only key presence matters to the solver.

package words

import (
	"bufio"
	"bytes"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
)

// Length is the size of every valid word.
const Length = 5

// ErrEmpty is returned when a dictionary ends up with no valid words.
var ErrEmpty = errors.New("words: dictionary is empty")

// Dictionary is a sorted, de-duplicated set of valid words.
type Dictionary struct {
	words []string
	set   map[string]struct{}
}

// NewDictionary keeps the valid keys of weights.
func NewDictionary(weights map[string]int) *Dictionary {
	list := make([]string, 0, len(weights))
	for w := range weights {
		list = append(list, w)
	}
	return FromList(list)
}

// FromList builds a Dictionary from raw words.
func FromList(list []string) *Dictionary {
	ws := Normalize(list)
	slices.Sort(ws)
	return &Dictionary{words: ws, set: toSet(ws)}
}

// Words returns a copy of the sorted word list.
func (d *Dictionary) Words() []string { return slices.Clone(d.words) }

// Len is the number of words.
func (d *Dictionary) Len() int { return len(d.words) }

// At returns the i-th word in sorted order.
func (d *Dictionary) At(i int) string { return d.words[i] }

// Contains reports whether w is in the dictionary (case-insensitive).
func (d *Dictionary) Contains(w string) bool {
	_, ok := d.set[strings.ToLower(strings.TrimSpace(w))]
	return ok
}

// Weights returns the dictionary as word -> 1.
func (d *Dictionary) Weights() map[string]int {
	m := make(map[string]int, len(d.words))
	for _, w := range d.words {
		m[w] = 1
	}
	return m
}

// RandomWord returns a cryptographically random word.
// Falls back to "crane" when the dictionary is empty.
func (d *Dictionary) RandomWord() string {
	if len(d.words) == 0 {
		return "crane"
	}
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(d.words))))
	return d.words[n.Int64()]
}

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
	defaultErr  error
)

// Default returns the embedded dictionary.
func Default() (*Dictionary, error) {
	defaultOnce.Do(func() {
		weights, err := assets.Dictionary()
		if err != nil {
			defaultErr = err
			return
		}
		defaultDict = NewDictionary(weights)
		if defaultDict.Len() == 0 {
			defaultErr = ErrEmpty
		}
	})
	return defaultDict, defaultErr
}

// ReadFile loads a dictionary file. JSON objects keep their weights; plain
// text files give every word weight 1. Invalid words are dropped.
func ReadFile(path string) (map[string]int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes dictionary bytes in either supported format.
func Parse(b []byte) (map[string]int, error) {
	trimmed := bytes.TrimSpace(b)
	out := map[string]int{}
	if len(trimmed) > 0 && trimmed[0] == '{' {
		raw := map[string]int{}
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("decode dictionary: %w", err)
		}
		for w, n := range raw {
			if v := normalize(w); v != "" {
				out[v] = n
			}
		}
		return out, nil
	}

	sc := bufio.NewScanner(bytes.NewReader(trimmed))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if v := normalize(line); v != "" {
			out[v] = 1
		}
	}
	return out, sc.Err()
}

// Normalize lowercases and trims each word and keeps only unique valid words, in order.
func Normalize(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, w := range list {
		v := normalize(w)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// IsValid reports whether w is exactly five lowercase ASCII letters.
func IsValid(w string) bool { return len(w) == Length && isAlpha(w) }

func normalize(w string) string {
	w = strings.TrimSpace(strings.ToLower(w))
	if !IsValid(w) {
		return ""
	}
	return w
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
