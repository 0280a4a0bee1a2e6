/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/valpere/vieng/internal/annotate"
	"github.com/valpere/vieng/internal/detector"
	"github.com/valpere/vieng/internal/parser"
	"github.com/valpere/vieng/internal/translator"
	"github.com/valpere/vieng/internal/validator"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// buildService constructs the translation backend named in the config.
func buildService(c TranslatorConfig) (translator.TranslationService, error) {
	switch c.Backend {
	case "", "marian":
		return translator.NewMarianService(c.BaseURL, c.Model, c.APIKey, c.Timeout), nil
	case "google":
		return translator.NewGoogleService(c.Credentials, c.Timeout), nil
	case "ollama":
		return translator.NewOllamaTranslator(c.BaseURL, c.Model, c.Timeout), nil
	case "mymemory":
		// MyMemory takes a contact address instead of a key.
		return translator.NewMyMemoryService(c.BaseURL, c.APIKey, c.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown translator backend: %s", c.Backend)
	}
}

// newAdapter wires the configured backend, the optional translation memory
// and the advisory language checks. The returned closer releases the
// memory database.
func newAdapter(c Config, logger *slog.Logger) (*translator.Adapter, io.Closer, error) {
	svc, err := buildService(c.Translator)
	if err != nil {
		return nil, nil, err
	}

	var closer io.Closer = nopCloser{}
	if !c.Cache.Disabled && c.Cache.DB != "" {
		db, err := openStore(c.Cache.DB)
		if err != nil {
			return nil, nil, err
		}
		svc = translator.NewCachedService(svc, db, logger)
		closer = db
	}

	checker := validator.New(detector.New())
	return translator.NewAdapter(svc, c.Translator.ServiceConfig, checker, logger), closer, nil
}

func newAnnotator(c Config, logger *slog.Logger) *annotate.Annotator {
	return annotate.New(parser.NewUDPipe(c.Parser.BaseURL, c.Parser.Model, c.Parser.Timeout), logger)
}
