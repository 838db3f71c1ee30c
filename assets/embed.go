// assets/embed.go
//
// Embedded default word list. Used when WORDS_FILE is not configured so the
// server and the shell always start with a playable dictionary.

package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed words.txt
var FS embed.FS

// ReadWords reads one word per line, skipping blanks and '#' comments,
// and lowercases everything.
func ReadWords(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// WordList returns the embedded default dictionary.
func WordList() ([]string, error) {
	f, err := FS.Open("words.txt")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadWords(f)
}
