// Package classifier predicts ticket category and priority from text using
// artifacts exported from the trained TF-IDF + gradient boosting pipeline.
package classifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
	"github.com/helpdesk-ai/helpdesk/internal/shared/config"
	"github.com/helpdesk-ai/helpdesk/internal/shared/logger"
)

// Classifier is loaded once at startup and shared by all requests. It holds
// no mutable state.
type Classifier struct {
	category  LabelPredictor
	priority  LabelPredictor
	normalize bool
	logger    logger.Interface
}

func New(category, priority LabelPredictor, normalize bool, logger logger.Interface) *Classifier {
	return &Classifier{
		category:  category,
		priority:  priority,
		normalize: normalize,
		logger:    logger,
	}
}

// Load builds a classifier from the configured model directory. Any missing
// or inconsistent artifact is reported as ticket.ErrModelUnavailable.
func Load(cfg config.ClassifierConfig, log logger.Interface) (*Classifier, error) {
	if strings.TrimSpace(cfg.ModelDir) == "" {
		return nil, fmt.Errorf("%w: model directory not configured", ticket.ErrModelUnavailable)
	}

	priority, err := LoadTreePredictor(artifactSet(cfg, cfg.ModelDir))
	if err != nil {
		return nil, fmt.Errorf("%w: priority model: %v", ticket.ErrModelUnavailable, err)
	}

	var category LabelPredictor = NewConstantPredictor(cfg.DefaultCategory)
	if cfg.CategoryModelDir != "" {
		category, err = LoadTreePredictor(artifactSet(cfg, cfg.CategoryModelDir))
		if err != nil {
			return nil, fmt.Errorf("%w: category model: %v", ticket.ErrModelUnavailable, err)
		}
	} else if strings.TrimSpace(cfg.DefaultCategory) == "" {
		return nil, fmt.Errorf("%w: no category model and no default category", ticket.ErrModelUnavailable)
	}

	log.Infow("classifier loaded",
		"model_dir", cfg.ModelDir,
		"category_model_dir", cfg.CategoryModelDir,
		"priority_labels", priority.Labels(),
		"category_labels", category.Labels(),
		"normalize_input", cfg.NormalizeInput,
	)

	return New(category, priority, cfg.NormalizeInput, log), nil
}

func artifactSet(cfg config.ClassifierConfig, dir string) ArtifactSet {
	return ArtifactSet{
		Dir:            dir,
		VectorizerFile: cfg.VectorizerFile,
		ModelFile:      cfg.ModelFile,
		EncoderFile:    cfg.LabelEncoderFile,
	}
}

// Classify labels the ticket formed by subject and body.
func (c *Classifier) Classify(ctx context.Context, subject, body string) (ticket.Classification, error) {
	if err := ctx.Err(); err != nil {
		return ticket.Classification{}, err
	}

	text := subject + " " + body
	if c.normalize {
		text = ticket.NormalizeText(text)
	}

	category, err := c.category.Predict(text)
	if err != nil {
		return ticket.Classification{}, fmt.Errorf("%w: category: %v", ticket.ErrInference, err)
	}

	priority, err := c.priority.Predict(text)
	if err != nil {
		return ticket.Classification{}, fmt.Errorf("%w: priority: %v", ticket.ErrInference, err)
	}

	classification, err := ticket.NewClassification(category, priority)
	if err != nil {
		return ticket.Classification{}, fmt.Errorf("%w: %v", ticket.ErrInference, err)
	}

	c.logger.Debugw("ticket classified", "category", category, "priority", priority)
	return classification, nil
}

// PriorityLabels is the closed set of priorities the model can produce.
func (c *Classifier) PriorityLabels() []string {
	return c.priority.Labels()
}

func (c *Classifier) CategoryLabels() []string {
	return c.category.Labels()
}
