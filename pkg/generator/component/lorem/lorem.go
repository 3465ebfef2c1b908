// Package lorem generates pseudo-latin filler text.
//
// An Engine precomputes a buffer of random indexes and reads it in windows, so that
// producing millions of words costs one slice lookup per word. Buffers belong to the
// Engine; each generation run creates its own.
package lorem

import (
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tigerroll/wpgen/pkg/generator/support/util/exception"
)

// RandomKeysCount is the size of the precomputed index buffers.
const RandomKeysCount = 1000

// MinTextLength is the smallest maximum length Text accepts.
const MinTextLength = 5

const moduleName = "lorem"

// window reads fixed-size runs out of a buffer of random keys.
type window struct {
	keys  []int
	index int
}

func newWindow(rng *rand.Rand, poolSize int) *window {
	keys := make([]int, RandomKeysCount)
	for i := range keys {
		keys[i] = rng.IntN(poolSize)
	}
	return &window{keys: keys, index: rng.IntN(RandomKeysCount)}
}

// next returns n keys. When the run would overrun the buffer the cursor jumps to a
// random position that leaves room for it.
func (w *window) next(rng *rand.Rand, n int) []int {
	out := make([]int, 0, n)
	for n > 0 {
		take := min(n, len(w.keys))
		if w.index+take > len(w.keys) {
			w.index = rng.IntN(len(w.keys) - take + 1)
		}
		out = append(out, w.keys[w.index:w.index+take]...)
		w.index += take
		n -= take
	}
	return out
}

// Engine produces words, sentences and paragraphs. It is not safe for concurrent use.
type Engine struct {
	rng *rand.Rand

	words *window

	sentences    *window
	sentencePool []string
}

// New returns an Engine drawing from rng.
func New(rng *rand.Rand) *Engine {
	return &Engine{
		rng:   rng,
		words: newWindow(rng, len(wordList)),
	}
}

// Names returns a copy of the first name list.
func Names() []string {
	return append([]string(nil), nameList...)
}

// Vocabulary returns a copy of the word list.
func Vocabulary() []string {
	return append([]string(nil), wordList...)
}

// Word returns a single random word.
func (e *Engine) Word() string {
	return wordList[e.rng.IntN(len(wordList))]
}

// Words returns n words.
func (e *Engine) Words(n int) []string {
	if n <= 0 {
		return nil
	}
	keys := e.words.next(e.rng, n)
	words := make([]string, len(keys))
	for i, k := range keys {
		words[i] = wordList[k]
	}
	return words
}

// Sentence returns a capitalized sentence ending in a period.
// When variable is true the word count is jittered to 60..140% of nbWords, plus one.
func (e *Engine) Sentence(nbWords int, variable bool) string {
	if nbWords <= 0 {
		return ""
	}
	if variable {
		nbWords = e.jitter(nbWords)
	}
	return upperFirst(strings.Join(e.Words(nbWords), " ")) + "."
}

// Sentences returns n sentences drawn from a pool of prebuilt six word sentences.
func (e *Engine) Sentences(n int) []string {
	if n <= 0 {
		return nil
	}
	if e.sentences == nil {
		e.sentencePool = make([]string, RandomKeysCount)
		for i := range e.sentencePool {
			e.sentencePool[i] = e.Sentence(6, true)
		}
		e.sentences = newWindow(e.rng, len(e.sentencePool))
	}
	keys := e.sentences.next(e.rng, n)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = e.sentencePool[k]
	}
	return out
}

// Paragraph returns nbSentences sentences joined by spaces.
func (e *Engine) Paragraph(nbSentences int, variable bool) string {
	if nbSentences <= 0 {
		return ""
	}
	if variable {
		nbSentences = e.jitter(nbSentences)
	}
	return strings.Join(e.Sentences(nbSentences), " ")
}

// Paragraphs returns n paragraphs of about three sentences each.
func (e *Engine) Paragraphs(n int) []string {
	out := make([]string, 0, max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, e.Paragraph(3, true))
	}
	return out
}

// Text returns text no longer than maxChars. Short limits yield words, medium limits
// sentences and long limits paragraphs.
func (e *Engine) Text(maxChars int) (string, error) {
	if maxChars < MinTextLength {
		return "", exception.NewGeneratorErrorf(moduleName, exception.KindValidation,
			"text can only be generated with at least %d characters", MinTextLength)
	}

	var unit func() string
	switch {
	case maxChars < 25:
		unit = e.Word
	case maxChars < 100:
		unit = func() string { return e.Sentence(6, true) }
	default:
		unit = func() string { return e.Paragraph(3, true) }
	}

	var parts []string
	for len(parts) == 0 {
		parts = fill(unit, maxChars)
	}

	if maxChars < 25 {
		parts[0] = upperFirst(parts[0])
		parts[len(parts)-1] += "."
	}
	return strings.Join(parts, ""), nil
}

// fill appends units until the total reaches limit, then drops the unit that crossed it.
func fill(unit func() string, limit int) []string {
	var parts []string
	size := 0
	for size < limit {
		part := unit()
		if size > 0 {
			part = " " + part
		}
		parts = append(parts, part)
		size += len(part)
	}
	return parts[:len(parts)-1]
}

func (e *Engine) jitter(n int) int {
	return n*(60+e.rng.IntN(81))/100 + 1
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
