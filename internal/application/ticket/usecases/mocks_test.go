package usecases

import (
	"context"
	"sync"

	"github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
	vo "github.com/helpdesk-ai/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-ai/helpdesk/internal/shared/logger"
)

type mockClassifier struct {
	ClassifyFunc func(ctx context.Context, subject, body string) (ticket.Classification, error)
	calls        []string
}

func (m *mockClassifier) Classify(ctx context.Context, subject, body string) (ticket.Classification, error) {
	m.calls = append(m.calls, subject+" "+body)
	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, subject, body)
	}
	return ticket.Classification{Category: "software", Priority: "high"}, nil
}

type mockGenerator struct {
	GenerateFunc func(ctx context.Context, req ticket.ResolutionRequest) ticket.Resolution
	requests     []ticket.ResolutionRequest
}

func (m *mockGenerator) Generate(ctx context.Context, req ticket.ResolutionRequest) ticket.Resolution {
	m.requests = append(m.requests, req)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return ticket.GeneratedResolution("1. Restart the VPN client.")
}

type mockExtractor struct {
	ExtractFunc func(ctx context.Context, image []byte) (string, error)
}

func (m *mockExtractor) Extract(ctx context.Context, image []byte) (string, error) {
	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, image)
	}
	return "error 0x80070005", nil
}

type mockTicketRepository struct {
	SaveFunc          func(ctx context.Context, t *ticket.Ticket) error
	ListSummariesFunc func(ctx context.Context, page ticket.PageRequest) ([]*ticket.Summary, int64, error)
	saved             []*ticket.Ticket
}

func (m *mockTicketRepository) Source() vo.Source {
	return vo.SourceText
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	if m.SaveFunc != nil {
		if err := m.SaveFunc(ctx, t); err != nil {
			return err
		}
	} else if err := t.SetID(uint(len(m.saved) + 1)); err != nil {
		return err
	}
	m.saved = append(m.saved, t)
	return nil
}

func (m *mockTicketRepository) ListSummaries(ctx context.Context, page ticket.PageRequest) ([]*ticket.Summary, int64, error) {
	if m.ListSummariesFunc != nil {
		return m.ListSummariesFunc(ctx, page)
	}
	return nil, 0, nil
}

type mockOcrTicketRepository struct {
	SaveFunc          func(ctx context.Context, t *ticket.OcrTicket) error
	ListSummariesFunc func(ctx context.Context, page ticket.PageRequest) ([]*ticket.Summary, int64, error)
	GetImageFunc      func(ctx context.Context, id string) (*ticket.Image, error)
	saved             []*ticket.OcrTicket
}

func (m *mockOcrTicketRepository) Source() vo.Source {
	return vo.SourceImage
}

func (m *mockOcrTicketRepository) Save(ctx context.Context, t *ticket.OcrTicket) error {
	if m.SaveFunc != nil {
		if err := m.SaveFunc(ctx, t); err != nil {
			return err
		}
	} else if err := t.SetID("65f1c0ffee0000000000000a"); err != nil {
		return err
	}
	m.saved = append(m.saved, t)
	return nil
}

func (m *mockOcrTicketRepository) ListSummaries(ctx context.Context, page ticket.PageRequest) ([]*ticket.Summary, int64, error) {
	if m.ListSummariesFunc != nil {
		return m.ListSummariesFunc(ctx, page)
	}
	return nil, 0, nil
}

func (m *mockOcrTicketRepository) GetImage(ctx context.Context, id string) (*ticket.Image, error) {
	if m.GetImageFunc != nil {
		return m.GetImageFunc(ctx, id)
	}
	return nil, ticket.ErrTicketNotFound
}

type mockNotifier struct {
	mu      sync.Mutex
	notices []EscalationNotice
	done    chan struct{}
	err     error
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{done: make(chan struct{}, 1)}
}

func (m *mockNotifier) NotifyEscalation(ctx context.Context, notice EscalationNotice) error {
	m.mu.Lock()
	m.notices = append(m.notices, notice)
	m.mu.Unlock()
	m.done <- struct{}{}
	return m.err
}

type mockRenderer struct {
	ToHTMLSanitizedFunc func(markdown string) (string, error)
}

func (m *mockRenderer) ToHTMLSanitized(markdown string) (string, error) {
	if m.ToHTMLSanitizedFunc != nil {
		return m.ToHTMLSanitizedFunc(markdown)
	}
	return "<p>" + markdown + "</p>", nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)           {}
func (m *mockLogger) Info(msg string, args ...any)            {}
func (m *mockLogger) Warn(msg string, args ...any)            {}
func (m *mockLogger) Error(msg string, args ...any)           {}
func (m *mockLogger) Fatal(msg string, args ...any)           {}
func (m *mockLogger) With(args ...any) logger.Interface       { return m }
func (m *mockLogger) Named(name string) logger.Interface      { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...any) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...any) {}
func (m *mockLogger) Fatalw(msg string, keysAndValues ...any) {}

func newTestPipeline(classifier Classifier, generator ResolutionGenerator, extractor TextExtractor, cfg PipelineConfig) *IntakePipeline {
	return NewIntakePipeline(classifier, generator, extractor, cfg, &mockLogger{})
}
