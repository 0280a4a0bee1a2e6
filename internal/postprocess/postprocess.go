// Package postprocess cleans raw model output before it reaches a user.
//
// Clean is applied to text returned by the Ollama backend; StripSpecialTokens
// is applied to decoded MarianMT output.
package postprocess

import (
	"regexp"
	"strings"
)

// Clean turns an LLM completion of the translation prompt into the bare
// English sentence. Steps run in order:
//  1. reasoning blocks, closed or cut off
//  2. a leading answer label such as "Translation:"
//  3. trailing notes after the first blank line
//  4. quotes copied from the prompt's quoted source text
func Clean(text string) string {
	text = removeThinkingBlocks(text)
	text = removeAnswerLabel(text)
	text = removeTrailingNotes(text)
	text = removeQuoteWrapping(text)
	return strings.TrimSpace(text)
}

// Reasoning models wrap their scratch work in one of these tags. RE2 has no
// backreferences, so each pair is spelled out.
var (
	thinkingBlockRe     = regexp.MustCompile(`(?is)<(think|thinking|reasoning|reflection)>.*?</(?:think|thinking|reasoning|reflection)>`)
	truncatedThinkingRe = regexp.MustCompile(`(?is)<(?:think|thinking|reasoning|reflection)>.*$`)
)

func removeThinkingBlocks(text string) string {
	text = thinkingBlockRe.ReplaceAllString(text, "")
	text = truncatedThinkingRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// answerLabelRe matches the prompt's own "Translation:" cue repeated back,
// optionally behind a chatty lead-in. The colon is required.
var answerLabelRe = regexp.MustCompile(
	`(?i)^(?:(?:sure|certainly|of course)[,.!]?\s+)?` +
		`(?:(?:here(?:'s| is)(?: the| your)?\s+)?(?:english\s+)?translation|english)\s*:`,
)

func removeAnswerLabel(text string) string {
	if loc := answerLabelRe.FindStringIndex(text); loc != nil {
		return strings.TrimSpace(text[loc[1]:])
	}
	return text
}

// noteRe matches an explanation the model appends below its answer.
var noteRe = regexp.MustCompile(`(?i)^(?:\(?note|explanation|literally)\b`)

func removeTrailingNotes(text string) string {
	answer, rest, found := strings.Cut(text, "\n\n")
	if found && noteRe.MatchString(strings.TrimSpace(rest)) {
		return strings.TrimSpace(answer)
	}
	return text
}

// removeQuoteWrapping strips one pair of straight or curly double quotes
// around the whole text.
func removeQuoteWrapping(text string) string {
	for _, pair := range [][2]string{{`"`, `"`}, {"“", "”"}} {
		if len(text) > len(pair[0])+len(pair[1])-1 &&
			strings.HasPrefix(text, pair[0]) && strings.HasSuffix(text, pair[1]) {
			return strings.TrimSpace(text[len(pair[0]) : len(text)-len(pair[1])])
		}
	}
	return text
}

// specialTokenRe matches the MarianMT tokenizer's special tokens. Decoded
// output that was not produced with skip_special_tokens still carries them.
var specialTokenRe = regexp.MustCompile(`<pad>|</s>|<s>|<unk>`)

var spaceRunRe = regexp.MustCompile(`\s{2,}`)

// StripSpecialTokens removes tokenizer special tokens and collapses the
// whitespace they leave behind.
func StripSpecialTokens(text string) string {
	text = specialTokenRe.ReplaceAllString(text, " ")
	text = spaceRunRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
