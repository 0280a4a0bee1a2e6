package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/valpere/vieng/internal/annotate"
	"github.com/valpere/vieng/internal/session"
	"github.com/valpere/vieng/internal/translator"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := loadConfig(viper.New(), "")
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if c.Server.Addr != defaultAddr || c.Server.SessionTTL != session.DefaultTTL {
		t.Errorf("unexpected server config %+v", c.Server)
	}
	if c.Translator.Backend != "marian" || c.Translator.Timeout != 120*time.Second {
		t.Errorf("unexpected translator config %+v", c.Translator)
	}
	if c.Parser.Model != "english-ewt" {
		t.Errorf("unexpected parser model %q", c.Parser.Model)
	}
	if c.Cache.DB != defaultCacheDB || c.Cache.Disabled {
		t.Errorf("unexpected cache config %+v", c.Cache)
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vieng.yaml")
	yaml := `
server:
  addr: ":9090"
  session_ttl: 5m
translator:
  backend: ollama
  model: qwen2.5:7b
  base_url: http://ollama:11434
  timeout: 45s
cors:
  origins:
    - https://learn.example.com
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("VIENG_TRANSLATOR_MODEL", "gemma2:9b")
	t.Setenv("VIENG_CACHE_DISABLED", "true")

	c, err := loadConfig(viper.New(), path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if c.Server.Addr != ":9090" || c.Server.SessionTTL != 5*time.Minute {
		t.Errorf("unexpected server config %+v", c.Server)
	}
	if c.Translator.Backend != "ollama" || c.Translator.BaseURL != "http://ollama:11434" {
		t.Errorf("unexpected translator config %+v", c.Translator)
	}
	if c.Translator.Timeout != 45*time.Second {
		t.Errorf("expected translator timeout 45s, got %v", c.Translator.Timeout)
	}
	if c.Translator.Model != "gemma2:9b" {
		t.Errorf("expected env to override file, got %q", c.Translator.Model)
	}
	if !c.Cache.Disabled {
		t.Error("expected cache disabled from env")
	}
	if len(c.CORS.Origins) != 1 || c.CORS.Origins[0] != "https://learn.example.com" {
		t.Errorf("unexpected origins %v", c.CORS.Origins)
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	if _, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for a missing explicit config file")
	}
}

func TestBuildService(t *testing.T) {
	for _, name := range []string{"", "marian", "google", "ollama", "mymemory"} {
		svc, err := buildService(TranslatorConfig{Backend: name})
		if err != nil {
			t.Errorf("buildService(%q): %v", name, err)
			continue
		}
		want := name
		if want == "" {
			want = "marian"
		}
		if svc.Name() != want {
			t.Errorf("buildService(%q).Name() = %q", name, svc.Name())
		}
	}
	if _, err := buildService(TranslatorConfig{Backend: "systran"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestBuildService_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	svc, err := buildService(TranslatorConfig{
		Backend:       "marian",
		ServiceConfig: translator.ServiceConfig{BaseURL: server.URL, Timeout: 50 * time.Millisecond},
	})
	if err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	if _, err := svc.Translate(context.Background(), translator.ServiceConfig{}, translator.TranslateRequest{
		Text: "Xin chào", SourceLang: translator.SourceLang, TargetLang: translator.TargetLang,
	}); err == nil {
		t.Fatal("expected the configured timeout to abort the call")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("translator.timeout ignored, call took %v", elapsed)
	}
}

func TestSnippet(t *testing.T) {
	if got := snippet("Xin chào", 40); got != "Xin chào" {
		t.Errorf("unexpected %q", got)
	}
	long := strings.Repeat("ệ", 50)
	if got := snippet(long, 10); got != strings.Repeat("ệ", 7)+"..." {
		t.Errorf("unexpected %q", got)
	}
}

func TestReadInput(t *testing.T) {
	got, err := readInput(strings.NewReader("ignored"), []string{"Tôi", "là", "sinh", "viên."})
	if err != nil || got != "Tôi là sinh viên." {
		t.Errorf("readInput(args) = %q, %v", got, err)
	}
	got, err = readInput(strings.NewReader("Xin chào\n"), nil)
	if err != nil || got != "Xin chào\n" {
		t.Errorf("readInput(stdin) = %q, %v", got, err)
	}
}

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	a := &annotate.Analysis{
		Tokens: []annotate.Token{{Text: "Hello", POS: annotate.POSIntj, Lemma: "hello", DepRel: "root"}},
	}
	if err := printAnalysis(&buf, a); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "INTJ") || !strings.Contains(out, annotate.NoTenseMessage) {
		t.Errorf("unexpected output:\n%s", out)
	}

	buf.Reset()
	a.Tenses = []annotate.Tense{annotate.PastSimple}
	if err := printAnalysis(&buf, a); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Past Simple") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}
