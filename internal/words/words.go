// internal/words/words.go
//
// Dictionary loading and word validation.
//
// Responsibilities:
//   - Load the word list from a configured file or fall back to the embedded default.
//   - Keep a read-only lookup set keyed by the normalised spelling.
//   - Validate words traced on the board, applying the Q rule and the minimum length.
//
// Q rule:
//   A 'Q' face on the board reads as "Qu". Lookups normalise both sides by
//   collapsing every "qu" to "q", so a board path Q-E-E-N and a path
//   Q-U-E-E-N both find "queen". Effective length is the number of board
//   letters traced, so a Q cell always counts as one unit.
//
// Initialization behavior (Init):
//   1. If path is non-empty, load one word per line from that file.
//   2. Otherwise use assets.WordList().
//   Runs once (sync.Once); later calls return the first result.

package words

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/robalobadob/wordgrid/assets"
)

// MinLength is the shortest effective length that can ever be recognized.
const MinLength = 3

// Dictionary is a read-only set of normalised words. Safe for concurrent reads.
type Dictionary struct {
	set map[string]struct{}
}

// Result is the outcome of validating a traced word.
type Result struct {
	Recognized bool   `json:"recognized"`
	Length     int    `json:"length"`  // effective length
	Display    string `json:"display"` // uppercase, q expanded to QU
}

// New builds a dictionary from raw words. Non-alphabetic entries are dropped.
func New(list []string) *Dictionary {
	keys := lo.FilterMap(list, func(w string, _ int) (string, bool) {
		w = strings.ToLower(strings.TrimSpace(w))
		return Normalize(w), w != "" && isAlpha(w)
	})
	return &Dictionary{set: lo.SliceToMap(keys, func(k string) (string, struct{}) { return k, struct{}{} })}
}

// Load reads a word list file (one word per line, '#' comments allowed).
func Load(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: open %s: %w", path, err)
	}
	defer f.Close()
	list, err := assets.ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}
	return New(list), nil
}

// Contains reports whether word (any case, either q spelling) is in the set.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.set[Normalize(word)]
	return ok
}

// Len is the number of distinct normalised words.
func (d *Dictionary) Len() int { return len(d.set) }

// Validate checks the raw board letters of a traced path.
// A miss is simply "not recognized"; there is no error case.
func (d *Dictionary) Validate(raw string) Result {
	res := Result{
		Length:  len(raw),
		Display: Display(raw),
	}
	res.Recognized = res.Length >= MinLength && d.Contains(raw)
	return res
}

// Display is the canonical uppercase spelling of raw board letters, Q shown as QU.
func Display(raw string) string {
	return strings.ToUpper(Expand(Normalize(raw)))
}

// Normalize lowercases w and collapses every "qu" to "q".
func Normalize(w string) string {
	return strings.ReplaceAll(strings.ToLower(w), "qu", "q")
}

// Expand spells every q as "qu". Input is expected to be normalised.
func Expand(w string) string {
	return strings.ReplaceAll(w, "q", "qu")
}

// EffectiveLength counts a "qu" digraph as one letter.
func EffectiveLength(w string) int { return len(Normalize(w)) }

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// --- package default -------------------------------------------------------

var (
	initOnce   sync.Once
	defaultDic *Dictionary
	initialErr error
)

// Init loads the process-wide dictionary exactly once.
// Returns an error if the list ends up empty.
func Init(path string) error {
	initOnce.Do(func() {
		if path != "" {
			defaultDic, initialErr = Load(path)
			if initialErr != nil {
				return
			}
		} else {
			list, err := assets.WordList()
			if err != nil {
				initialErr = err
				return
			}
			defaultDic = New(list)
		}
		if defaultDic.Len() == 0 {
			initialErr = errors.New("words: dictionary is empty")
		}
	})
	return initialErr
}

// Default returns the dictionary loaded by Init, or an empty one before Init.
func Default() *Dictionary {
	if defaultDic == nil {
		return New(nil)
	}
	return defaultDic
}
