package dice

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestClassicIsValid(t *testing.T) {
	is := is.New(t)
	is.Equal(len(Classic), Cells)
	is.NoErr(Classic.Validate())
}

func TestValidateRejectsShortSet(t *testing.T) {
	is := is.New(t)
	err := Classic[:24].Validate()
	is.True(errors.Is(err, ErrSetSize))
}

func TestValidateRejectsEmptyDie(t *testing.T) {
	is := is.New(t)
	s := append(Set{}, Classic...)
	s[3] = ""
	is.True(errors.Is(s.Validate(), ErrSetSize))
}

func TestValidateRejectsBadFace(t *testing.T) {
	is := is.New(t)
	s := append(Set{}, Classic...)
	s[0] = "AAa1RS"
	err := s.Validate()
	is.True(err != nil)
	is.True(!errors.Is(err, ErrSetSize))
}
