package translator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/valpere/vieng/internal/translator"

// LanguageChecker reports whether text is written in lang.
type LanguageChecker interface {
	IsValid(text, lang string) (bool, error)
}

// Adapter turns a Vietnamese sentence into English through a single
// TranslationService. It never retries; a failed call is returned as is.
type Adapter struct {
	service TranslationService
	cfg     ServiceConfig
	checker LanguageChecker
	logger  *slog.Logger

	tracer       trace.Tracer
	translations metric.Int64Counter
	latency      metric.Float64Histogram
}

// NewAdapter wraps service. checker may be nil to skip the advisory
// language checks.
func NewAdapter(service TranslationService, cfg ServiceConfig, checker LanguageChecker, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	meter := otel.Meter(instrumentationName)
	// On error the API hands back a no-op instrument, so the values are
	// always safe to use.
	translations, err := meter.Int64Counter("vieng.translations",
		metric.WithDescription("Completed translation calls"))
	if err != nil {
		logger.Warn("failed to create translations counter", "error", err)
	}
	latency, err := meter.Float64Histogram("vieng.translate.latency",
		metric.WithDescription("Translation model latency"),
		metric.WithUnit("ms"))
	if err != nil {
		logger.Warn("failed to create translate latency histogram", "error", err)
	}

	return &Adapter{
		service:      service,
		cfg:          cfg,
		checker:      checker,
		logger:       logger.With("component", "translator", "backend", service.Name()),
		tracer:       otel.Tracer(instrumentationName),
		translations: translations,
		latency:      latency,
	}
}

// Backend names the underlying service.
func (a *Adapter) Backend() string {
	return a.service.Name()
}

// Translate returns the English translation of text.
func (a *Adapter) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}

	ctx, span := a.tracer.Start(ctx, "translate", trace.WithAttributes(
		attribute.String("translator.backend", a.service.Name()),
		attribute.Int("translator.input_runes", len([]rune(text))),
	))
	defer span.End()

	a.checkLanguage(text, SourceLang, "input")

	start := time.Now()
	res, err := a.service.Translate(ctx, a.cfg, TranslateRequest{
		Text:       text,
		SourceLang: SourceLang,
		TargetLang: TargetLang,
	})
	a.latency.Record(ctx, float64(time.Since(start).Milliseconds()),
		metric.WithAttributes(attribute.String("backend", a.service.Name())))

	if err == nil && res != nil && res.Error != "" {
		err = errors.New(res.Error)
	}
	if err == nil && (res == nil || res.TranslatedText == "") {
		err = errors.New("empty translation returned")
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.logger.Error("translation failed", "error", err)
		return "", fmt.Errorf("%s: %w", a.service.Name(), err)
	}

	cacheHit := res.Metadata["cache"] == "hit"
	a.translations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("backend", a.service.Name()),
		attribute.Bool("cache_hit", cacheHit),
	))
	span.SetAttributes(attribute.Bool("translator.cache_hit", cacheHit))
	a.logger.Info("translated", "latency", res.Latency, "cache_hit", cacheHit)

	a.checkLanguage(res.TranslatedText, TargetLang, "output")
	return res.TranslatedText, nil
}

// checkLanguage only logs; a mismatch never blocks a translation.
func (a *Adapter) checkLanguage(text, lang, side string) {
	if a.checker == nil {
		return
	}
	if ok, err := a.checker.IsValid(text, lang); !ok {
		a.logger.Warn("unexpected language", "side", side, "want", lang, "error", err)
	}
}
