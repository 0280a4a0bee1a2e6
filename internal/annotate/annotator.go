package annotate

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/valpere/vieng/internal/depviz"
	"github.com/valpere/vieng/internal/parser"
)

const instrumentationName = "github.com/valpere/vieng/internal/annotate"

// NoTenseMessage is shown when the rule table finds nothing.
const NoTenseMessage = "No recognizable tense found."

// ErrEmptyText is returned when Annotate is called with blank text.
var ErrEmptyText = errors.New("annotate: empty text")

// Analysis is the grammar breakdown of one translated sentence. It lives
// for a single render.
type Analysis struct {
	Text    string  `json:"sentence"`
	Tokens  []Token `json:"tokens"`
	Tenses  []Tense `json:"tenses"`
	Diagram string  `json:"-"`
}

// Pairs yields (token text, tag) in document order. The sequence can be
// ranged over any number of times.
func (a *Analysis) Pairs() iter.Seq2[string, POS] {
	return func(yield func(string, POS) bool) {
		for _, tok := range a.Tokens {
			if !yield(tok.Text, tok.POS) {
				return
			}
		}
	}
}

// TenseNames returns the detected categories as display strings.
func (a *Analysis) TenseNames() []string {
	names := make([]string, len(a.Tenses))
	for i, t := range a.Tenses {
		names[i] = t.String()
	}
	return names
}

type Annotator struct {
	parser  parser.Parser
	diagram depviz.Options
	logger  *slog.Logger
	tracer  trace.Tracer
	latency metric.Float64Histogram
}

func New(p parser.Parser, logger *slog.Logger) *Annotator {
	if logger == nil {
		logger = slog.Default()
	}
	latency, err := otel.Meter(instrumentationName).Float64Histogram("vieng.parse.latency",
		metric.WithDescription("Parsing model latency"),
		metric.WithUnit("ms"))
	if err != nil {
		logger.Warn("failed to create parse latency histogram", "error", err)
	}
	return &Annotator{
		parser:  p,
		diagram: depviz.DefaultOptions(),
		logger:  logger.With("component", "annotator", "parser", p.Name()),
		tracer:  otel.Tracer(instrumentationName),
		latency: latency,
	}
}

// Annotate parses text and derives its tokens, diagram and tenses. Parser
// failures are returned unchanged apart from wrapping.
func (a *Annotator) Annotate(ctx context.Context, text string) (*Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	ctx, span := a.tracer.Start(ctx, "parse", trace.WithAttributes(
		attribute.String("parser.name", a.parser.Name()),
	))
	defer span.End()

	start := time.Now()
	sentences, err := a.parser.Parse(ctx, text)
	a.latency.Record(ctx, float64(time.Since(start).Milliseconds()),
		metric.WithAttributes(attribute.String("parser", a.parser.Name())))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.logger.Error("parse failed", "error", err)
		return nil, fmt.Errorf("%s: %w", a.parser.Name(), err)
	}

	tokens := TokensFromSentences(sentences)
	analysis := &Analysis{
		Text:    text,
		Tokens:  tokens,
		Tenses:  DetectTenses(tokens),
		Diagram: depviz.Render(diagramNodes(tokens), a.diagram),
	}
	span.SetAttributes(
		attribute.Int("parser.tokens", len(tokens)),
		attribute.StringSlice("annotate.tenses", analysis.TenseNames()),
	)
	a.logger.Debug("annotated", "tokens", len(tokens), "tenses", analysis.TenseNames())
	return analysis, nil
}

func diagramNodes(tokens []Token) [][]depviz.Node {
	var sentences [][]depviz.Node
	for i, tok := range tokens {
		if i == 0 || tok.Sentence != tokens[i-1].Sentence {
			sentences = append(sentences, nil)
		}
		last := len(sentences) - 1
		sentences[last] = append(sentences[last], depviz.Node{
			Text: tok.Text,
			Tag:  tok.POS.String(),
			Head: tok.Head,
			Rel:  tok.DepRel,
		})
	}
	return sentences
}
