package translator

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/valpere/vieng/internal"
)

// Memory is the subset of the translation memory the cache needs.
type Memory interface {
	GetCachedTranslation(ctx context.Context, sourceText, sourceLang, targetLang, serviceUsed, model string) (string, bool, error)
	SaveToMemory(ctx context.Context, sourceText, sourceLang, targetLang, serviceUsed, model, finalText string) error
	SaveRequest(ctx context.Context, req internal.TranslationRequest) error
}

// CachedService serves repeated sentences from the translation memory and
// records every model call. Entries are keyed by backend name and model, so
// the returned text is the same either way.
type CachedService struct {
	next   TranslationService
	memory Memory
	logger *slog.Logger
}

func NewCachedService(next TranslationService, memory Memory, logger *slog.Logger) *CachedService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedService{next: next, memory: memory, logger: logger}
}

func (s *CachedService) Name() string {
	return s.next.Name()
}

// model returns the model the wrapped service will use for cfg.
func (s *CachedService) model(cfg ServiceConfig) string {
	if cfg.Model != "" {
		return cfg.Model
	}
	if m, ok := s.next.(interface{ Model() string }); ok {
		return m.Model()
	}
	return ""
}

func (s *CachedService) Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error) {
	start := time.Now()
	service, model := s.next.Name(), s.model(cfg)
	cached, found, err := s.memory.GetCachedTranslation(ctx, req.Text, req.SourceLang, req.TargetLang, service, model)
	if err != nil {
		s.logger.Warn("translation memory lookup failed", "error", err)
	}
	if err == nil && found {
		return &ServiceResult{
			ServiceName:    service,
			TranslatedText: cached,
			Confidence:     1.0,
			Metadata:       map[string]string{"cache": "hit"},
			Latency:        time.Since(start),
		}, nil
	}

	res, err := s.next.Translate(ctx, cfg, req)
	if err != nil || res == nil || res.Error != "" || res.TranslatedText == "" {
		return res, err
	}

	if err := s.memory.SaveToMemory(ctx, req.Text, req.SourceLang, req.TargetLang, service, model, res.TranslatedText); err != nil {
		s.logger.Warn("failed to save translation memory", "error", err)
	}
	if err := s.memory.SaveRequest(ctx, internal.TranslationRequest{
		ID:          uuid.New().String(),
		SourceText:  req.Text,
		SourceLang:  req.SourceLang,
		TargetLang:  req.TargetLang,
		Translation: res.TranslatedText,
		ServiceUsed: res.ServiceName,
		LatencyMs:   int(res.Latency.Milliseconds()),
		Timestamp:   time.Now(),
	}); err != nil {
		s.logger.Warn("failed to save translation request", "error", err)
	}
	return res, nil
}

func (s *CachedService) IsAvailable(ctx context.Context) error {
	return s.next.IsAvailable(ctx)
}

func (s *CachedService) SupportedLanguages(ctx context.Context) ([]string, error) {
	return s.next.SupportedLanguages(ctx)
}
