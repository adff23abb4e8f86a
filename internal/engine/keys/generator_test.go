package keys

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomGenerator_Generate(t *testing.T) {
	g := NewGenerator()

	for i := 0; i < 50; i++ {
		key := g.Generate()
		assert.Len(t, key, KeyLength)
		for _, c := range key {
			assert.True(t, c >= '0' && c <= '9', "unexpected character %q in %s", c, key)
		}
	}
}

func TestRandomGenerator_DeterministicWithSource(t *testing.T) {
	a := NewGeneratorWithSource(rand.NewSource(42))
	b := NewGeneratorWithSource(rand.NewSource(42))

	assert.Equal(t, a.Generate(), b.Generate())
}

func TestMask(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"1234567890123456", "************3456"},
		{"12", "**"},
		{"", ""},
		{"1234", "1234"},
		{"12345", "*2345"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, Mask(tt.key))
		})
	}
}
