package classifier

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// tokenPattern matches runs of two or more word characters, the default
// token pattern of the vectorizer the artifacts were exported from.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}\p{Mn}_]{2,}`)

// SparseVector maps feature column to value. Absent columns are missing,
// not zero, for the tree evaluator.
type SparseVector map[int]float64

type vectorizerFile struct {
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
	NgramRange  [2]int         `json:"ngram_range"`
	Lowercase   *bool          `json:"lowercase"`
	SublinearTF bool           `json:"sublinear_tf"`
	Norm        string         `json:"norm"`
	StopWords   []string       `json:"stop_words"`
}

// Vectorizer turns text into TF-IDF weighted sparse vectors over a fixed
// vocabulary. It is immutable after loading.
type Vectorizer struct {
	vocabulary  map[string]int
	idf         []float64
	minN        int
	maxN        int
	lowercase   bool
	sublinearTF bool
	norm        string
	stopWords   map[string]struct{}
}

// LoadVectorizer reads a vectorizer exported as JSON.
func LoadVectorizer(path string) (*Vectorizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vectorizer: %w", err)
	}

	var file vectorizerFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse vectorizer %s: %w", path, err)
	}

	return newVectorizer(file)
}

func newVectorizer(file vectorizerFile) (*Vectorizer, error) {
	if len(file.Vocabulary) == 0 {
		return nil, fmt.Errorf("vectorizer vocabulary is empty")
	}
	if len(file.IDF) != len(file.Vocabulary) {
		return nil, fmt.Errorf("vectorizer has %d idf weights for %d terms", len(file.IDF), len(file.Vocabulary))
	}
	for term, col := range file.Vocabulary {
		if col < 0 || col >= len(file.IDF) {
			return nil, fmt.Errorf("vocabulary term %q has out of range column %d", term, col)
		}
	}

	minN, maxN := file.NgramRange[0], file.NgramRange[1]
	if minN == 0 && maxN == 0 {
		minN, maxN = 1, 1
	}
	if minN < 1 || maxN < minN {
		return nil, fmt.Errorf("invalid ngram range [%d, %d]", minN, maxN)
	}

	norm := strings.ToLower(file.Norm)
	if norm == "" {
		norm = "l2"
	}
	switch norm {
	case "none", "l1", "l2":
	default:
		return nil, fmt.Errorf("unsupported norm %q", file.Norm)
	}

	lowercase := true
	if file.Lowercase != nil {
		lowercase = *file.Lowercase
	}

	stopWords := make(map[string]struct{}, len(file.StopWords))
	for _, w := range file.StopWords {
		stopWords[w] = struct{}{}
	}

	return &Vectorizer{
		vocabulary:  file.Vocabulary,
		idf:         file.IDF,
		minN:        minN,
		maxN:        maxN,
		lowercase:   lowercase,
		sublinearTF: file.SublinearTF,
		norm:        norm,
		stopWords:   stopWords,
	}, nil
}

// NumFeatures is the width of the vectors produced by Transform.
func (v *Vectorizer) NumFeatures() int {
	return len(v.idf)
}

// Transform vectorizes one document. Terms outside the vocabulary are dropped.
func (v *Vectorizer) Transform(text string) SparseVector {
	if v.lowercase {
		text = cases.Lower(language.Und).String(text)
	}

	tokens := tokenPattern.FindAllString(text, -1)
	if len(v.stopWords) > 0 {
		kept := tokens[:0]
		for _, tok := range tokens {
			if _, stop := v.stopWords[tok]; !stop {
				kept = append(kept, tok)
			}
		}
		tokens = kept
	}

	counts := make(map[int]float64)
	for n := v.minN; n <= v.maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			term := tokens[i]
			if n > 1 {
				term = strings.Join(tokens[i:i+n], " ")
			}
			if col, ok := v.vocabulary[term]; ok {
				counts[col]++
			}
		}
	}

	vec := make(SparseVector, len(counts))
	for col, tf := range counts {
		if v.sublinearTF {
			tf = 1 + math.Log(tf)
		}
		vec[col] = tf * v.idf[col]
	}

	v.normalize(vec)
	return vec
}

func (v *Vectorizer) normalize(vec SparseVector) {
	var total float64
	switch v.norm {
	case "l2":
		for _, x := range vec {
			total += x * x
		}
		total = math.Sqrt(total)
	case "l1":
		for _, x := range vec {
			total += math.Abs(x)
		}
	default:
		return
	}

	if total == 0 {
		return
	}
	for col, x := range vec {
		vec[col] = x / total
	}
}
