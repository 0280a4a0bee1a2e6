package parser

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/valpere/vieng/internal/conllu"
)

const willResult = "# text = He will come.\n" +
	"1\tHe\the\tPRON\tPRP\tCase=Nom|Number=Sing|Person=3|PronType=Prs\t3\tnsubj\t_\t_\n" +
	"2\twill\twill\tAUX\tMD\tVerbForm=Fin\t3\taux\t_\t_\n" +
	"3\tcome\tcome\tVERB\tVB\tVerbForm=Inf\t0\troot\t_\tSpaceAfter=No\n" +
	"4\t.\t.\tPUNCT\t.\t_\t3\tpunct\t_\t_\n\n"

func TestUDPipe_Parse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/process" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("bad form: %v", err)
			return
		}
		if got := r.PostForm.Get("data"); got != "He will come." {
			t.Errorf("unexpected data %q", got)
		}
		if got := r.PostForm.Get("model"); got != "english-ewt" {
			t.Errorf("unexpected model %q", got)
		}
		for _, key := range []string{"tokenizer", "tagger", "parser"} {
			if _, ok := r.PostForm[key]; !ok {
				t.Errorf("expected %s to be requested", key)
			}
		}
		json.NewEncoder(w).Encode(udpipeResponse{Model: "english-ewt-ud-2.12", Result: willResult})
	}))
	defer server.Close()

	p := NewUDPipe(server.URL, "", time.Second)
	sentences, err := p.Parse(context.Background(), "He will come.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sentences) != 1 {
		t.Fatalf("expected 1 sentence, got %d", len(sentences))
	}
	rows := sentences[0].Rows
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[1].Lemma != "will" || rows[1].UPosTag != "AUX" {
		t.Errorf("unexpected row: %+v", rows[1])
	}
}

func TestUDPipe_Parse_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown model", http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := NewUDPipe(server.URL, "klingon", time.Second).Parse(context.Background(), "Hello.")
	if err == nil {
		t.Fatal("expected error for non-OK status")
	}
}

func TestUDPipe_Parse_BadConllu(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(udpipeResponse{Result: "1\tbroken\n"})
	}))
	defer server.Close()

	_, err := NewUDPipe(server.URL, "", time.Second).Parse(context.Background(), "Hello.")
	if !errors.Is(err, conllu.ErrMalformedRow) {
		t.Errorf("expected ErrMalformedRow, got %v", err)
	}
}

func TestUDPipe_Defaults(t *testing.T) {
	p := NewUDPipe("", "", 0)
	if p.baseURL != DefaultUDPipeBaseURL {
		t.Errorf("expected default base URL, got %q", p.baseURL)
	}
	if p.Model() != DefaultUDPipeModel {
		t.Errorf("expected default model, got %q", p.Model())
	}
	if p.Name() != "udpipe" {
		t.Errorf("expected name udpipe, got %q", p.Name())
	}
}

func TestParserInterface(t *testing.T) {
	var _ Parser = (*UDPipe)(nil)
}
