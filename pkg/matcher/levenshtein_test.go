package matcher

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"hello", "helo", 1},
		{"hello", "hallo", 1},
		{"flaw", "lawn", 2},
		{"intention", "execution", 5},
		{"café", "cafe", 1},
		{"same", "same", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
			assert.Equal(t, tt.want, Distance(tt.b, tt.a))
		})
	}
}

func TestDistance_Properties(t *testing.T) {
	alphabet := rapid.StringOfN(rapid.RuneFrom([]rune("abcdeé ")), 0, 12, -1)

	t.Run("symmetric", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			a, b := alphabet.Draw(rt, "a"), alphabet.Draw(rt, "b")
			if Distance(a, b) != Distance(b, a) {
				rt.Fatalf("distance(%q,%q) != distance(%q,%q)", a, b, b, a)
			}
		})
	})

	t.Run("zero only for identical strings", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			a, b := alphabet.Draw(rt, "a"), alphabet.Draw(rt, "b")
			if Distance(a, a) != 0 {
				rt.Fatalf("distance(%q,%q) != 0", a, a)
			}
			if a != b && Distance(a, b) == 0 {
				rt.Fatalf("distance(%q,%q) == 0 for different strings", a, b)
			}
		})
	})

	t.Run("bounded by lengths", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			a, b := alphabet.Draw(rt, "a"), alphabet.Draw(rt, "b")
			la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
			d := Distance(a, b)
			if d > max(la, lb) || d < max(la-lb, lb-la) {
				rt.Fatalf("distance(%q,%q) = %d out of bounds", a, b, d)
			}
		})
	})

	t.Run("triangle inequality", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			a, b, c := alphabet.Draw(rt, "a"), alphabet.Draw(rt, "b"), alphabet.Draw(rt, "c")
			if Distance(a, c) > Distance(a, b)+Distance(b, c) {
				rt.Fatalf("triangle inequality violated for %q %q %q", a, b, c)
			}
		})
	})
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"hello", "there"}, Tokenize("  Hello,   THERE! "))
	assert.Equal(t, []string{"what's", "up"}, Tokenize("what's up?"))
	assert.Empty(t, Tokenize(" ... !! "))
	assert.Empty(t, Tokenize(""))
}

func TestWindows(t *testing.T) {
	tokens := []string{"a", "b", "c"}
	assert.Equal(t, tokens, windows(tokens, 1))
	assert.Equal(t, []string{"a b", "b c"}, windows(tokens, 2))
	assert.Equal(t, []string{"a b c"}, windows(tokens, 3))
	assert.Nil(t, windows(tokens, 4))
}
