package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestValidateCat(t *testing.T) {
	is := is.New(t)
	d := New([]string{"cat", "at"})
	res := d.Validate("CAT")
	is.True(res.Recognized)
	is.Equal(res.Length, 3)
	is.Equal(res.Display, "CAT")
}

func TestValidateMinimumLength(t *testing.T) {
	is := is.New(t)
	d := New([]string{"at", "qi"})
	is.True(d.Contains("at"))
	is.True(!d.Validate("AT").Recognized)
	is.True(!d.Validate("QI").Recognized)
}

func TestValidateMiss(t *testing.T) {
	is := is.New(t)
	d := New([]string{"cat"})
	res := d.Validate("TAC")
	is.True(!res.Recognized)
	is.Equal(res.Length, 3)
}

func TestQRule(t *testing.T) {
	is := is.New(t)
	d := New([]string{"queen", "quit"})

	// Q-U-E-E-N traced letter by letter.
	res := d.Validate("QUEEN")
	is.True(res.Recognized)
	is.Equal(res.Length, 5)
	is.Equal(res.Display, "QUEEN")

	// Q cell standing for "Qu".
	res = d.Validate("QEEN")
	is.True(res.Recognized)
	is.Equal(res.Length, 4)
	is.Equal(res.Display, "QUEEN")

	// QIT is three board letters and spells "quit".
	res = d.Validate("QIT")
	is.True(res.Recognized)
	is.Equal(res.Length, 3)
	is.Equal(res.Display, "QUIT")
}

func TestEffectiveLength(t *testing.T) {
	is := is.New(t)
	is.Equal(EffectiveLength("queen"), 4)
	is.Equal(EffectiveLength("cat"), 3)
	is.Equal(EffectiveLength("QUIQU"), 3)
	is.Equal(Normalize("QUEEN"), "qeen")
	is.Equal(Expand("qeen"), "queen")
}

func TestNewDropsJunk(t *testing.T) {
	is := is.New(t)
	d := New([]string{"Cat", " dog ", "x-ray", "", "n0pe"})
	is.Equal(d.Len(), 2)
	is.True(d.Contains("CAT"))
	is.True(d.Contains("dog"))
}

func TestLoadFile(t *testing.T) {
	is := is.New(t)
	p := filepath.Join(t.TempDir(), "list.txt")
	is.NoErr(os.WriteFile(p, []byte("# words\nstar\nrats\n"), 0o644))
	d, err := Load(p)
	is.NoErr(err)
	is.Equal(d.Len(), 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	is.True(err != nil)
}

func TestInitEmbedded(t *testing.T) {
	is := is.New(t)
	is.NoErr(Init(""))
	is.True(Default().Contains("queen"))
	is.True(Default().Contains("cat"))
}

func TestDisplay(t *testing.T) {
	is := is.New(t)
	is.Equal(Display("QEEN"), "QUEEN")
	is.Equal(Display("QUEEN"), "QUEEN")
	is.Equal(Display("cat"), "CAT")
	is.Equal(Display(""), "")
}
