package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/valpere/vieng/internal/annotate"
)

type translateRequest struct {
	Text string `json:"text"`
}

type translateResponse struct {
	Translation string `json:"translation"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// analyzeResponse carries the no-tense message alongside an empty tense
// list, as the Analyze view does.
type analyzeResponse struct {
	Sentence string           `json:"sentence"`
	Tokens   []annotate.Token `json:"tokens"`
	Tenses   []annotate.Tense `json:"tenses"`
	Message  string           `json:"message,omitempty"`
}

func newAnalyzeResponse(a *annotate.Analysis) analyzeResponse {
	resp := analyzeResponse{Sentence: a.Text, Tokens: a.Tokens, Tenses: a.Tenses}
	if len(resp.Tenses) == 0 {
		resp.Tenses = []annotate.Tense{}
		resp.Message = annotate.NoTenseMessage
	}
	return resp
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode error", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// handleTranslate is the JSON form of the Translate view. Blank text is a
// no-op answered with 204.
func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var body translateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "body must be JSON with a 'text' field")
		return
	}
	text := strings.TrimSpace(body.Text)
	if text == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	id, state := s.loadSession(w, r)
	out, err := s.translator.Translate(r.Context(), text)
	if err != nil {
		s.logger.Error("translate failed", "error", err)
		s.sessions.Save(id, state)
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.sessions.Save(id, state.WithTranslation(out))
	s.writeJSON(w, http.StatusOK, translateResponse{Translation: out})
}

// handleAnalyze is the JSON form of the Analyze view.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	id, state := s.loadSession(w, r)
	s.sessions.Save(id, state)

	sentence, ok := state.LastTranslation()
	if !ok {
		s.writeJSON(w, http.StatusOK, messageResponse{Message: NoTranslationMessage})
		return
	}
	analysis, err := s.annotator.Annotate(r.Context(), sentence)
	if err != nil {
		s.logger.Error("analyze failed", "error", err)
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, newAnalyzeResponse(analysis))
}

func (s *Server) handleTags(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.tags)
}
