package keys

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

const (
	keyDigits    = "0123456789"
	KeyLength    = 16
	visibleChars = 4
)

// Generator produces display-only private keys. It is not suitable for
// secrets.
type Generator interface {
	Generate() string
}

type RandomGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewGenerator() *RandomGenerator {
	return NewGeneratorWithSource(rand.NewSource(time.Now().UnixNano()))
}

func NewGeneratorWithSource(src rand.Source) *RandomGenerator {
	return &RandomGenerator{rnd: rand.New(src)}
}

// Generate returns KeyLength independently drawn decimal digits.
func (g *RandomGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	b := make([]byte, KeyLength)
	for i := range b {
		b[i] = keyDigits[g.rnd.Intn(len(keyDigits))]
	}
	return string(b)
}

// Mask hides all but the last four characters of key. Keys shorter than
// four characters are hidden entirely.
func Mask(key string) string {
	if len(key) < visibleChars {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-visibleChars) + key[len(key)-visibleChars:]
}
