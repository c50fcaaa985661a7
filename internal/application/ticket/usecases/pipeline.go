package usecases

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
	"github.com/helpdesk-ai/helpdesk/internal/shared/errors"
	"github.com/helpdesk-ai/helpdesk/internal/shared/logger"
)

// PipelineConfig bounds each external stage. A zero timeout leaves the stage
// bounded only by the request context.
type PipelineConfig struct {
	OCRTimeout      time.Duration
	ClassifyTimeout time.Duration
	GenerateTimeout time.Duration
	PersistTimeout  time.Duration
	// StoreNullOnFailure persists NULL instead of the error text when
	// generation fails.
	StoreNullOnFailure bool
}

// IntakeOutcome is what the pipeline decided about one ticket.
type IntakeOutcome struct {
	Classification ticket.Classification
	Resolution     ticket.Resolution
}

// StoredResolution is the resolution text to persist for this outcome.
func (o *IntakeOutcome) StoredResolution(storeNull bool) *string {
	return o.Resolution.Stored(storeNull)
}

// IntakePipeline runs classification then generation for one ticket. It holds
// no per-request state and is shared by the submit use cases.
type IntakePipeline struct {
	classifier Classifier
	generator  ResolutionGenerator
	extractor  TextExtractor
	config     PipelineConfig
	logger     logger.Interface
}

func NewIntakePipeline(
	classifier Classifier,
	generator ResolutionGenerator,
	extractor TextExtractor,
	config PipelineConfig,
	logger logger.Interface,
) *IntakePipeline {
	return &IntakePipeline{
		classifier: classifier,
		generator:  generator,
		extractor:  extractor,
		config:     config,
		logger:     logger,
	}
}

func (p *IntakePipeline) Config() PipelineConfig {
	return p.config
}

// Process classifies subject and body and drafts a resolution for them.
// Only classification can fail; a generation failure is part of the outcome.
func (p *IntakePipeline) Process(ctx context.Context, subject, body string) (*IntakeOutcome, error) {
	classification, err := p.classify(ctx, subject, body)
	if err != nil {
		return nil, err
	}

	resolution := p.generate(ctx, ticket.ResolutionRequest{
		Subject:    subject,
		Body:       body,
		TicketType: classification.Category,
		Priority:   classification.Priority,
	})

	return &IntakeOutcome{
		Classification: classification,
		Resolution:     resolution,
	}, nil
}

// ExtractText runs OCR on image under the OCR stage timeout.
func (p *IntakePipeline) ExtractText(ctx context.Context, image []byte) (string, error) {
	stageCtx, cancel := withStageTimeout(ctx, p.config.OCRTimeout)
	defer cancel()

	text, err := p.extractor.Extract(stageCtx, image)
	if err != nil {
		p.logger.Errorw("text extraction failed", "error", err, "image_bytes", len(image))
		if stderrors.Is(err, ticket.ErrImageDecode) {
			return "", newStageError(StageOCR, errors.NewOCRDecodeError("uploaded file is not a readable image"))
		}
		if stderrors.Is(err, context.DeadlineExceeded) {
			return "", newStageError(StageOCR, errors.NewOCREngineError("text extraction timed out"))
		}
		return "", newStageError(StageOCR, errors.NewOCREngineError("text extraction failed"))
	}

	return text, nil
}

// PersistContext returns the context a store write should run under.
func (p *IntakePipeline) PersistContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return withStageTimeout(ctx, p.config.PersistTimeout)
}

func (p *IntakePipeline) classify(ctx context.Context, subject, body string) (ticket.Classification, error) {
	stageCtx, cancel := withStageTimeout(ctx, p.config.ClassifyTimeout)
	defer cancel()

	classification, err := p.classifier.Classify(stageCtx, subject, body)
	if err != nil {
		p.logger.Errorw("classification failed", "error", err)
		if stderrors.Is(err, context.DeadlineExceeded) {
			return ticket.Classification{}, newStageError(StageClassify, errors.NewModelInferenceError("classification timed out"))
		}
		return ticket.Classification{}, newStageError(StageClassify, errors.NewModelInferenceError("failed to classify ticket"))
	}

	return classification, nil
}

func (p *IntakePipeline) generate(ctx context.Context, req ticket.ResolutionRequest) ticket.Resolution {
	stageCtx, cancel := withStageTimeout(ctx, p.config.GenerateTimeout)
	defer cancel()

	resolution := p.generator.Generate(stageCtx, req)
	if !resolution.IsGenerated() {
		p.logger.Warnw("resolution generation failed, storing ticket without a resolution",
			"reason", resolution.FailureReason(),
			"ticket_type", req.TicketType,
			"priority", req.Priority,
		)
	}
	return resolution
}

func withStageTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
