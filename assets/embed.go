// assets/embed.go
//
// Embedded default dictionary.
// words.json maps each five-letter word to an opaque weight, the same shape the
// file-backed WordStore persists.

package assets

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed words.json
var FS embed.FS

// DictionaryFile is the name of the embedded dictionary inside FS.
const DictionaryFile = "words.json"

// Dictionary decodes the embedded word -> weight map.
func Dictionary() (map[string]int, error) {
	b, err := FS.ReadFile(DictionaryFile)
	if err != nil {
		return nil, err
	}
	out := map[string]int{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", DictionaryFile, err)
	}
	return out, nil
}
