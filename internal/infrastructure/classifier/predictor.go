package classifier

import (
	"fmt"
	"path/filepath"
)

// LabelPredictor assigns one label from a closed set to a text.
type LabelPredictor interface {
	Predict(text string) (string, error)
	Labels() []string
}

// ConstantPredictor always answers the same label.
type ConstantPredictor struct {
	label string
}

func NewConstantPredictor(label string) *ConstantPredictor {
	return &ConstantPredictor{label: label}
}

func (p *ConstantPredictor) Predict(string) (string, error) {
	return p.label, nil
}

func (p *ConstantPredictor) Labels() []string {
	return []string{p.label}
}

// TreePredictor chains a TF-IDF vectorizer, a tree ensemble and a label
// encoder loaded from one artifact set.
type TreePredictor struct {
	vectorizer *Vectorizer
	model      *TreeEnsemble
	encoder    *LabelEncoder
}

// ArtifactSet names the three files of one trained predictor.
type ArtifactSet struct {
	Dir            string
	VectorizerFile string
	ModelFile      string
	EncoderFile    string
}

func (a ArtifactSet) path(name string) string {
	return filepath.Join(a.Dir, name)
}

// LoadTreePredictor reads and cross-checks an artifact set.
func LoadTreePredictor(set ArtifactSet) (*TreePredictor, error) {
	vectorizer, err := LoadVectorizer(set.path(set.VectorizerFile))
	if err != nil {
		return nil, err
	}
	model, err := LoadTreeEnsemble(set.path(set.ModelFile))
	if err != nil {
		return nil, err
	}
	encoder, err := LoadLabelEncoder(set.path(set.EncoderFile))
	if err != nil {
		return nil, err
	}

	return NewTreePredictor(vectorizer, model, encoder)
}

func NewTreePredictor(vectorizer *Vectorizer, model *TreeEnsemble, encoder *LabelEncoder) (*TreePredictor, error) {
	if n := len(encoder.Classes()); n != model.NumClass() {
		return nil, fmt.Errorf("label encoder has %d classes but model predicts %d", n, model.NumClass())
	}
	if nf := model.NumFeature(); nf > 0 && nf != vectorizer.NumFeatures() {
		return nil, fmt.Errorf("model expects %d features but vectorizer produces %d", nf, vectorizer.NumFeatures())
	}

	return &TreePredictor{
		vectorizer: vectorizer,
		model:      model,
		encoder:    encoder,
	}, nil
}

func (p *TreePredictor) Predict(text string) (string, error) {
	class, err := p.model.PredictClass(p.vectorizer.Transform(text))
	if err != nil {
		return "", err
	}
	return p.encoder.Decode(class)
}

func (p *TreePredictor) Labels() []string {
	return p.encoder.Classes()
}
