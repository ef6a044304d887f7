package lexical

import (
	"math"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// BM25 scoring parameters, standard values.
const (
	k1 = 1.5
	b  = 0.75
)

type Hit struct {
	Id    string
	Score float64
}

type document struct {
	id     string
	length int
	freqs  map[string]int
}

// Index is an in-memory BM25 index over document ids. Build replaces
// the whole corpus; Search is safe for concurrent readers.
type Index struct {
	mu        sync.RWMutex
	docs      []document
	docFreq   map[string]int
	avgLength float64
}

func NewIndex() *Index {
	return &Index{docFreq: map[string]int{}}
}

// Tokenize lowercases and splits on anything that is not a letter or a
// digit. Vietnamese diacritics survive because they are letters.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Build replaces the index contents with the given corpus.
func (idx *Index) Build(ids []string, texts []string) {
	docs := make([]document, 0, len(texts))
	docFreq := map[string]int{}
	totalLength := 0

	for i, text := range texts {
		tokens := Tokenize(text)
		freqs := map[string]int{}
		for _, tok := range tokens {
			freqs[tok]++
		}
		for tok := range freqs {
			docFreq[tok]++
		}
		docs = append(docs, document{id: ids[i], length: len(tokens), freqs: freqs})
		totalLength += len(tokens)
	}

	avg := 0.0
	if len(docs) > 0 {
		avg = float64(totalLength) / float64(len(docs))
	}

	idx.mu.Lock()
	idx.docs = docs
	idx.docFreq = docFreq
	idx.avgLength = avg
	idx.mu.Unlock()
}

// Search returns up to limit documents scored by BM25, best first.
// Documents with zero score are omitted.
func (idx *Index) Search(query string, limit int) []Hit {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.docs) == 0 {
		return nil
	}

	queryTokens := Tokenize(query)
	n := float64(len(idx.docs))

	var hits []Hit
	for _, doc := range idx.docs {
		score := 0.0
		for _, tok := range queryTokens {
			tf := doc.freqs[tok]
			if tf == 0 {
				continue
			}
			df := float64(idx.docFreq[tok])
			idf := math.Log(1 + (n-df+0.5)/(df+0.5))
			norm := 1 - b + b*float64(doc.length)/idx.avgLength
			score += idf * float64(tf) * (k1 + 1) / (float64(tf) + k1*norm)
		}
		if score > 0 {
			hits = append(hits, Hit{Id: doc.id, Score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

// Size reports the number of indexed documents.
func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}
