// Package ocr extracts the text shown in uploaded screenshots.
package ocr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/helpdesk-ai/helpdesk/internal/shared/config"
	"github.com/helpdesk-ai/helpdesk/internal/shared/logger"
)

const EngineTesseract = "tesseract"

// Extractor decodes an upload and returns the recognized words joined by
// single spaces. An image without text yields "".
type Extractor struct {
	recognizer Recognizer
	maxPixels  int64
	logger     logger.Interface
}

// NewExtractor falls back to DefaultMaxPixels when maxPixels is not positive.
func NewExtractor(recognizer Recognizer, maxPixels int64, logger logger.Interface) *Extractor {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	return &Extractor{
		recognizer: recognizer,
		maxPixels:  maxPixels,
		logger:     logger,
	}
}

func NewFromConfig(cfg config.OCRConfig, log logger.Interface) (*Extractor, error) {
	switch cfg.Engine {
	case "", EngineTesseract:
		return NewExtractor(NewTesseractRecognizer(cfg.TesseractPath, cfg.Language), cfg.MaxPixels, log), nil
	default:
		return nil, fmt.Errorf("unsupported ocr engine %q", cfg.Engine)
	}
}

func (e *Extractor) Extract(ctx context.Context, data []byte) (string, error) {
	start := time.Now()

	prepared, format, err := prepareImage(data, e.maxPixels)
	if err != nil {
		return "", err
	}

	words, err := e.recognizer.Recognize(ctx, prepared)
	if err != nil {
		return "", err
	}

	text := strings.Join(words, " ")
	e.logger.Debugw("text extracted from image",
		"format", format,
		"words", len(words),
		"duration", time.Since(start),
	)
	return text, nil
}
