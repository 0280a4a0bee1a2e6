// Package parser talks to the external English tagger and dependency parser.
package parser

import (
	"context"

	"github.com/valpere/vieng/internal/conllu"
)

// Parser tokenizes, tags and dependency-parses English text.
type Parser interface {
	Name() string
	Parse(ctx context.Context, text string) ([]conllu.Sentence, error)
}
