package annotate

import (
	"strings"

	"github.com/valpere/vieng/internal/conllu"
)

// Token is one word of the parsed translation. Tokens are read-only once
// built from the parser output.
type Token struct {
	Sentence int      `json:"sentence"`
	ID       int      `json:"id"`
	Text     string   `json:"text"`
	POS      POS      `json:"pos"`
	Lemma    string   `json:"lemma"`
	Feats    Features `json:"feats"`
	Head     int      `json:"head"`
	DepRel   string   `json:"dep"`
}

// IsRoot reports whether the token heads its sentence. Parsers disagree on
// case ("ROOT" vs "root").
func (t Token) IsRoot() bool {
	return strings.EqualFold(t.DepRel, "root")
}

// TokensFromSentences flattens parsed sentences into document order.
func TokensFromSentences(sentences []conllu.Sentence) []Token {
	var tokens []Token
	for i, s := range sentences {
		for _, row := range s.Rows {
			tokens = append(tokens, Token{
				Sentence: i,
				ID:       row.ID,
				Text:     row.Form,
				POS:      ParsePOS(row.UPosTag),
				Lemma:    row.Lemma,
				Feats:    featuresFromConllu(row.Feats),
				Head:     row.Head,
				DepRel:   row.DepRel,
			})
		}
	}
	return tokens
}
