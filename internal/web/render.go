package web

import (
	"bytes"
	"context"
	"html/template"
	"strings"

	"github.com/valpere/vieng/internal/annotate"
)

// NoTranslationMessage is shown by Analyze before anything was translated.
const NoTranslationMessage = "No translation available. Please translate a sentence first."

type translateData struct {
	Input       string
	Translation string
}

type pair struct {
	Text string
	Tag  string
}

type analyzeData struct {
	Message  string
	Sentence string
	Pairs    []pair
	Diagram  template.HTML
	Tenses   []string
	NoTense  string
}

func (s *Server) renderHome(_ context.Context, _ *Request) (template.HTML, error) {
	return s.execute("home", s.home)
}

// renderTranslate translates the text query parameter. Blank input renders
// the form only and never reaches the translator.
func (s *Server) renderTranslate(ctx context.Context, req *Request) (template.HTML, error) {
	text := strings.TrimSpace(req.Query.Get("text"))
	data := translateData{Input: text}
	if text != "" {
		out, err := s.translator.Translate(ctx, text)
		if err != nil {
			return "", err
		}
		*req.State = req.State.WithTranslation(out)
		data.Translation = out
	}
	return s.execute("translate", data)
}

// renderAnalyze annotates the session's last translation.
func (s *Server) renderAnalyze(ctx context.Context, req *Request) (template.HTML, error) {
	sentence, ok := req.State.LastTranslation()
	if !ok {
		return s.execute("analyze", analyzeData{Message: NoTranslationMessage})
	}

	analysis, err := s.annotator.Annotate(ctx, sentence)
	if err != nil {
		return "", err
	}

	data := analyzeData{
		Sentence: sentence,
		Diagram:  template.HTML(analysis.Diagram),
		Tenses:   analysis.TenseNames(),
		NoTense:  annotate.NoTenseMessage,
	}
	for text, pos := range analysis.Pairs() {
		data.Pairs = append(data.Pairs, pair{Text: text, Tag: pos.String()})
	}
	return s.execute("analyze", data)
}

func (s *Server) execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
