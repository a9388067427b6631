package card

import (
	"testing"

	"github.com/matryer/is"
)

func TestCardIdentity(t *testing.T) {
	is := is.New(t)
	c := New(Spade, King)
	is.Equal(c.Suit(), Spade)
	is.Equal(c.Rank(), King)
	is.Equal(c, New(Spade, King))
	is.True(c != New(Heart, King))
}

func TestColors(t *testing.T) {
	is := is.New(t)
	is.True(New(Club, Ace).Black())
	is.True(New(Spade, 5).Black())
	is.True(!New(Diamond, 5).Black())
	is.True(!New(Heart, King).Black())
	is.True(New(Club, 3).SameColor(New(Spade, 9)))
	is.True(!New(Club, 3).SameColor(New(Heart, 3)))
}

func TestCodeRoundTrip(t *testing.T) {
	is := is.New(t)
	for i := 0; i < NumCards; i++ {
		c := Card(i)
		got, err := Parse(c.Code())
		is.NoErr(err)
		is.Equal(got, c)
	}
}

func TestCodes(t *testing.T) {
	is := is.New(t)
	is.Equal(New(Heart, Ace).Code(), "1h")
	is.Equal(New(Spade, King).Code(), "ks")
	is.Equal(New(Diamond, 9).Code(), "td")
	is.Equal(New(Club, 9).String(), "TC")
	is.Equal(New(Heart, Ace).String(), "AH")
}

func TestParseErrors(t *testing.T) {
	is := is.New(t)
	_, err := Parse("zz")
	is.True(err != nil)
	_, err = Parse("1")
	is.True(err != nil)
	_, err = Parse("0h")
	is.True(err != nil)
	_, err = Parse("5x")
	is.True(err != nil)
}
