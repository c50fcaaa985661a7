package ocr

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
	"github.com/helpdesk-ai/helpdesk/internal/shared/utils/logutil"
)

const (
	tsvWordLevel   = 5
	maxStderrBytes = 512
)

// Recognizer finds text fragments in a PNG image, in reading order.
type Recognizer interface {
	Recognize(ctx context.Context, png []byte) ([]string, error)
}

// TesseractRecognizer shells out to the tesseract CLI and reads its TSV output.
type TesseractRecognizer struct {
	binary   string
	language string
}

func NewTesseractRecognizer(binary, language string) *TesseractRecognizer {
	if binary == "" {
		binary = "tesseract"
	}
	if language == "" {
		language = "eng"
	}
	return &TesseractRecognizer{binary: binary, language: language}
}

func (r *TesseractRecognizer) Recognize(ctx context.Context, png []byte) ([]string, error) {
	cmd := exec.CommandContext(ctx, r.binary, "stdin", "stdout", "-l", r.language, "tsv")
	cmd.Stdin = bytes.NewReader(png)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %v", ticket.ErrOCREngine, ctxErr)
		}
		msg := logutil.TruncateForLog(stderr.String(), maxStderrBytes)
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%w: tesseract: %s", ticket.ErrOCREngine, msg)
	}

	words, err := parseTSV(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ticket.ErrOCREngine, err)
	}
	return words, nil
}

// parseTSV returns the word-level text column of tesseract TSV output.
func parseTSV(data []byte) ([]string, error) {
	var words []string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	header := true
	for scanner.Scan() {
		line := scanner.Text()
		if header {
			header = false
			if !strings.HasPrefix(line, "level") {
				return nil, fmt.Errorf("unexpected tsv header %q", line)
			}
			continue
		}
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 12 {
			continue
		}
		level, err := strconv.Atoi(fields[0])
		if err != nil || level != tsvWordLevel {
			continue
		}
		text := strings.TrimSpace(strings.Join(fields[11:], "\t"))
		if text != "" {
			words = append(words, text)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read tsv: %w", err)
	}

	return words, nil
}
