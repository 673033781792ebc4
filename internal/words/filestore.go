// internal/words/filestore.go
//
// JSON-file WordStore shared by concurrent sessions.
//
// Characteristics:
//   - The file is a JSON object mapping word -> weight.
//   - Remove takes effect in memory immediately and is queued for persistence.
//   - One writer goroutine drains the queue in batches and rewrites the file
//     atomically (temp file + rename).
//   - Before each rewrite the file is read back from disk and every removal made
//     through this store is re-applied, so removals written by another process since
//     the last write survive.

package words

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("words: store closed")

type removal struct {
	word string     // empty for a flush request
	ack  chan error // optional
}

// FileStore persists the dictionary to a JSON file.
type FileStore struct {
	path string

	mu      sync.RWMutex // guards words, removed, gen, saved
	words   map[string]int
	removed map[string]struct{}
	gen     int // bumped on every Remove
	saved   int // gen covered by the last successful persist

	sendMu sync.RWMutex // guards closed and sends on queue
	closed bool
	queue  chan removal
	done   chan struct{}
	err    error // last persist error, written by the writer only
}

// OpenFileStore opens path, creating it from seed when it does not exist yet.
func OpenFileStore(path string, seed map[string]int) (*FileStore, error) {
	words, err := ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if len(seed) == 0 {
			return nil, fmt.Errorf("open %s: %w", path, ErrEmpty)
		}
		words = maps.Clone(seed)
		if err := writeAtomic(path, words); err != nil {
			return nil, err
		}
		log.Info().Str("path", path).Int("words", len(words)).Msg("created dictionary file")
	case err != nil:
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	s := &FileStore{
		path:    path,
		words:   words,
		removed: map[string]struct{}{},
		queue:   make(chan removal, 64),
		done:    make(chan struct{}),
	}
	go s.writer()
	return s, nil
}

// Path is the backing file.
func (s *FileStore) Path() string { return s.path }

// Load returns the words not yet removed.
func (s *FileStore) Load(ctx context.Context) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.words), nil
}

// Remove drops word now and queues the file rewrite.
func (s *FileStore) Remove(ctx context.Context, word string) error {
	s.mu.Lock()
	delete(s.words, word)
	s.removed[word] = struct{}{}
	s.gen++
	s.mu.Unlock()
	return s.send(ctx, removal{word: word})
}

// Flush blocks until every removal queued so far is on disk.
func (s *FileStore) Flush(ctx context.Context) error {
	ack := make(chan error, 1)
	if err := s.send(ctx, removal{ack: ack}); err != nil {
		return err
	}
	select {
	case err := <-ack:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close persists pending removals and stops the writer.
// Removals whose queueing was cancelled are written here.
func (s *FileStore) Close() error {
	s.sendMu.Lock()
	if s.closed {
		s.sendMu.Unlock()
		<-s.done
		return s.err
	}
	s.closed = true
	close(s.queue)
	s.sendMu.Unlock()
	<-s.done

	s.mu.RLock()
	stale := s.gen != s.saved
	s.mu.RUnlock()
	if stale {
		s.err = s.persist()
		if s.err != nil {
			log.Error().Err(s.err).Str("path", s.path).Msg("persist dictionary on close")
		}
	}
	return s.err
}

func (s *FileStore) send(ctx context.Context, r removal) error {
	s.sendMu.RLock()
	defer s.sendMu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	select {
	case s.queue <- r:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// writer is the only goroutine touching the file after open.
func (s *FileStore) writer() {
	defer close(s.done)
	for first := range s.queue {
		batch := []removal{first}
	drain:
		for {
			select {
			case r, ok := <-s.queue:
				if !ok {
					break drain
				}
				batch = append(batch, r)
			default:
				break drain
			}
		}

		dirty := false
		for _, r := range batch {
			if r.word != "" {
				dirty = true
			}
		}
		var err error
		if dirty {
			err = s.persist()
			if err != nil {
				log.Error().Err(err).Str("path", s.path).Msg("persist dictionary")
			} else {
				log.Debug().Str("path", s.path).Int("batch", len(batch)).Msg("dictionary rewritten")
			}
			s.err = err
		}
		for _, r := range batch {
			if r.ack != nil {
				r.ack <- err
			}
		}
	}
}

// persist merges this store's removals into the on-disk file and rewrites it.
func (s *FileStore) persist() error {
	s.mu.RLock()
	removed := maps.Clone(s.removed)
	current := maps.Clone(s.words)
	gen := s.gen
	s.mu.RUnlock()

	onDisk, err := ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("reread %s: %w", s.path, err)
		}
		onDisk = current
	}
	for w := range removed {
		delete(onDisk, w)
	}
	if err := writeAtomic(s.path, onDisk); err != nil {
		return err
	}
	s.mu.Lock()
	s.saved = max(s.saved, gen)
	s.mu.Unlock()
	return nil
}

// writeAtomic replaces path with the JSON encoding of words.
func writeAtomic(path string, words map[string]int) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	b, err := json.MarshalIndent(words, "", " ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".words-*.json")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}
