// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vectors loads pretrained word embeddings and finds words similar
// to a topic by cosine similarity.
package vectors

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// reNonAlnum strips everything but letters and digits from candidate words
// before lookup, so "city," and "(city)" resolve to the same vector.
var reNonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Model holds word embeddings keyed by surface form.
type Model struct {
	dim  int
	vecs map[string][]float32
}

// Load reads a word2vec/GloVe text-format embeddings file: one word per
// line followed by its vector components, with an optional "count dim"
// header line. All vectors must share one dimensionality.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening vectors file: %w", err)
	}
	defer f.Close()

	m := &Model{vecs: make(map[string][]float32)}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		// word2vec files open with a "count dim" header.
		if lineNo == 1 && len(fields) == 2 {
			if _, err := strconv.Atoi(fields[0]); err == nil {
				continue
			}
		}

		if len(fields) < 2 {
			return nil, fmt.Errorf("vectors file line %d: no components", lineNo)
		}

		vec := make([]float32, len(fields)-1)
		for i, s := range fields[1:] {
			v, err := strconv.ParseFloat(s, 32)
			if err != nil {
				return nil, fmt.Errorf("vectors file line %d: %w", lineNo, err)
			}
			vec[i] = float32(v)
		}

		if m.dim == 0 {
			m.dim = len(vec)
		} else if len(vec) != m.dim {
			return nil, fmt.Errorf("vectors file line %d: dimension %d, want %d", lineNo, len(vec), m.dim)
		}
		m.vecs[fields[0]] = vec
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading vectors file: %w", err)
	}
	if len(m.vecs) == 0 {
		return nil, fmt.Errorf("vectors file %s holds no vectors", path)
	}
	return m, nil
}

// Len returns the vocabulary size.
func (m *Model) Len() int { return len(m.vecs) }

// Vector returns the embedding for word, trying the exact form first and
// the lowercased form second.
func (m *Model) Vector(word string) ([]float32, bool) {
	if v, ok := m.vecs[word]; ok {
		return v, true
	}
	v, ok := m.vecs[strings.ToLower(word)]
	return v, ok
}

// PhraseVector returns the mean of the word vectors in phrase. It reports
// false when no word of the phrase is in the vocabulary.
func (m *Model) PhraseVector(phrase string) ([]float32, bool) {
	sum := make([]float32, m.dim)
	n := 0
	for _, word := range strings.Fields(phrase) {
		v, ok := m.Vector(word)
		if !ok {
			continue
		}
		for i := range v {
			sum[i] += v[i]
		}
		n++
	}
	if n == 0 {
		return nil, false
	}
	for i := range sum {
		sum[i] /= float32(n)
	}
	return sum, true
}

// Cosine returns the cosine similarity of a and b, or 0 when either has
// zero magnitude.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// SimilarWords returns the unique words of text whose similarity to topic
// exceeds threshold, excluding the topic itself. Words are title-cased and
// sorted for deterministic output. A topic with no known vector yields nil.
func (m *Model) SimilarWords(text, topic string, threshold float64) []string {
	topicVec, ok := m.PhraseVector(topic)
	if !ok {
		return nil
	}
	topicLower := strings.ToLower(topic)

	caser := cases.Title(language.English)
	seen := make(map[string]bool)
	var similar []string

	for _, raw := range strings.Fields(text) {
		word := reNonAlnum.ReplaceAllString(raw, "")
		if word == "" || strings.EqualFold(word, topicLower) {
			continue
		}
		titled := caser.String(word)
		if seen[titled] {
			continue
		}
		seen[titled] = true

		v, ok := m.Vector(word)
		if !ok {
			continue
		}
		if Cosine(topicVec, v) > threshold {
			similar = append(similar, titled)
		}
	}

	sort.Strings(similar)
	return similar
}
