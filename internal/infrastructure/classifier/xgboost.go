package classifier

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	objectiveSoftprob = "multi:softprob"
	objectiveSoftmax  = "multi:softmax"
	objectiveLogistic = "binary:logistic"
)

// flexFloat accepts numbers, numeric strings, and the bracketed single
// element vectors newer boosters write for base_score ("[5E-1]").
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexFloat(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected number or string, got %s", string(data))
	}
	s = strings.Trim(strings.TrimSpace(s), "[]")
	if s == "" {
		*f = 0
		return nil
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("parse %q: %w", s, err)
	}
	*f = flexFloat(n)
	return nil
}

// flexBool accepts JSON booleans and 0/1 integers.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch strings.TrimSpace(string(data)) {
	case "true", "1":
		*b = true
	case "false", "0":
		*b = false
	default:
		return fmt.Errorf("expected boolean, got %s", string(data))
	}
	return nil
}

type xgbTree struct {
	LeftChildren    []int      `json:"left_children"`
	RightChildren   []int      `json:"right_children"`
	SplitIndices    []int      `json:"split_indices"`
	SplitConditions []float64  `json:"split_conditions"`
	DefaultLeft     []flexBool `json:"default_left"`
}

type xgbModel struct {
	Trees    []xgbTree `json:"trees"`
	TreeInfo []int     `json:"tree_info"`
}

type xgbFile struct {
	Learner struct {
		LearnerModelParam struct {
			BaseScore  flexFloat `json:"base_score"`
			NumClass   flexFloat `json:"num_class"`
			NumFeature flexFloat `json:"num_feature"`
		} `json:"learner_model_param"`
		Objective struct {
			Name string `json:"name"`
		} `json:"objective"`
		GradientBooster struct {
			Name  string    `json:"name"`
			Model *xgbModel `json:"model"`
			// dart boosters nest the tree model one level deeper
			GBTree *struct {
				Model *xgbModel `json:"model"`
			} `json:"gbtree"`
		} `json:"gradient_booster"`
	} `json:"learner"`
}

// TreeEnsemble evaluates a gradient boosted tree model saved in the
// booster's JSON format.
type TreeEnsemble struct {
	objective  string
	baseMargin float64
	numClass   int
	numFeature int
	trees      []xgbTree
	treeGroup  []int
}

// LoadTreeEnsemble reads a booster saved with save_model("*.json").
func LoadTreeEnsemble(path string) (*TreeEnsemble, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}

	var file xgbFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}

	return newTreeEnsemble(file)
}

func newTreeEnsemble(file xgbFile) (*TreeEnsemble, error) {
	learner := file.Learner
	model := learner.GradientBooster.Model
	if model == nil && learner.GradientBooster.GBTree != nil {
		model = learner.GradientBooster.GBTree.Model
	}
	if model == nil || len(model.Trees) == 0 {
		return nil, fmt.Errorf("model has no trees")
	}
	if len(model.TreeInfo) != len(model.Trees) {
		return nil, fmt.Errorf("model has %d trees but %d tree_info entries", len(model.Trees), len(model.TreeInfo))
	}

	objective := learner.Objective.Name
	numClass := int(learner.LearnerModelParam.NumClass)
	baseScore := float64(learner.LearnerModelParam.BaseScore)

	e := &TreeEnsemble{
		objective:  objective,
		numFeature: int(learner.LearnerModelParam.NumFeature),
		trees:      model.Trees,
		treeGroup:  model.TreeInfo,
	}

	switch objective {
	case objectiveSoftprob, objectiveSoftmax:
		if numClass < 2 {
			return nil, fmt.Errorf("objective %s needs num_class >= 2, got %d", objective, numClass)
		}
		e.numClass = numClass
		e.baseMargin = baseScore
	case objectiveLogistic:
		e.numClass = 2
		if baseScore <= 0 || baseScore >= 1 {
			return nil, fmt.Errorf("binary:logistic base_score must be in (0, 1), got %v", baseScore)
		}
		e.baseMargin = math.Log(baseScore / (1 - baseScore))
	default:
		return nil, fmt.Errorf("unsupported objective %q", objective)
	}

	for i, tree := range e.trees {
		if err := validateTree(tree); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		group := e.treeGroup[i]
		if objective == objectiveLogistic {
			if group != 0 {
				return nil, fmt.Errorf("tree %d belongs to group %d in a binary model", i, group)
			}
		} else if group < 0 || group >= e.numClass {
			return nil, fmt.Errorf("tree %d belongs to unknown class %d", i, group)
		}
	}

	return e, nil
}

func validateTree(t xgbTree) error {
	n := len(t.LeftChildren)
	if n == 0 {
		return fmt.Errorf("tree is empty")
	}
	if len(t.RightChildren) != n || len(t.SplitIndices) != n || len(t.SplitConditions) != n {
		return fmt.Errorf("tree node arrays differ in length")
	}
	if len(t.DefaultLeft) != 0 && len(t.DefaultLeft) != n {
		return fmt.Errorf("default_left has %d entries for %d nodes", len(t.DefaultLeft), n)
	}
	for i := 0; i < n; i++ {
		l, r := t.LeftChildren[i], t.RightChildren[i]
		if l == -1 {
			continue
		}
		if l <= i || l >= n || r <= i || r >= n {
			return fmt.Errorf("node %d has invalid children %d/%d", i, l, r)
		}
	}
	return nil
}

// NumClass is the number of labels the model chooses between.
func (e *TreeEnsemble) NumClass() int {
	return e.numClass
}

// NumFeature is the input width the model was trained on; zero if unknown.
func (e *TreeEnsemble) NumFeature() int {
	return e.numFeature
}

// PredictClass returns the index of the most likely class for x.
func (e *TreeEnsemble) PredictClass(x SparseVector) (int, error) {
	margins, err := e.margins(x)
	if err != nil {
		return 0, err
	}

	if e.objective == objectiveLogistic {
		if sigmoid(margins[0]) > 0.5 {
			return 1, nil
		}
		return 0, nil
	}

	best := 0
	for k := 1; k < len(margins); k++ {
		if margins[k] > margins[best] {
			best = k
		}
	}
	return best, nil
}

func (e *TreeEnsemble) margins(x SparseVector) ([]float64, error) {
	groups := e.numClass
	if e.objective == objectiveLogistic {
		groups = 1
	}

	margins := make([]float64, groups)
	for k := range margins {
		margins[k] = e.baseMargin
	}

	for i := range e.trees {
		leaf, err := evalTree(&e.trees[i], x)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		margins[e.treeGroup[i]] += leaf
	}

	for _, m := range margins {
		if math.IsNaN(m) || math.IsInf(m, 0) {
			return nil, fmt.Errorf("model produced a non-finite margin")
		}
	}
	return margins, nil
}

func evalTree(t *xgbTree, x SparseVector) (float64, error) {
	node := 0
	for steps := 0; steps <= len(t.LeftChildren); steps++ {
		left := t.LeftChildren[node]
		if left == -1 {
			return t.SplitConditions[node], nil
		}

		value, present := x[t.SplitIndices[node]]
		switch {
		case !present:
			if len(t.DefaultLeft) > 0 && bool(t.DefaultLeft[node]) {
				node = left
			} else {
				node = t.RightChildren[node]
			}
		case value < t.SplitConditions[node]:
			node = left
		default:
			node = t.RightChildren[node]
		}
	}
	return 0, fmt.Errorf("tree walk did not reach a leaf")
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
