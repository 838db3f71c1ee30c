package assets

import (
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestReadWordsSkipsCommentsAndBlanks(t *testing.T) {
	is := is.New(t)
	got, err := ReadWords(strings.NewReader("# header\n\n Cat \nQUEEN\n"))
	is.NoErr(err)
	is.Equal(got, []string{"cat", "queen"})
}

func TestWordListEmbedded(t *testing.T) {
	is := is.New(t)
	got, err := WordList()
	is.NoErr(err)
	is.True(len(got) > 1000)
}
