// Package detector guesses the language of a piece of text.
package detector

import (
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

// candidates are the languages a learner is likely to paste into the
// translate box. Vietnamese and English are the pair the pipeline serves;
// the rest keep the detector from forcing everything into one of those two.
var candidates = []lingua.Language{
	lingua.Vietnamese,
	lingua.English,
	lingua.French,
	lingua.Chinese,
	lingua.Indonesian,
	lingua.Tagalog,
	lingua.German,
	lingua.Spanish,
}

type Detector struct {
	detector lingua.LanguageDetector
}

func New() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(candidates...).
		Build()
	return &Detector{detector: detector}
}

func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if text == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(text)
}

// DetectISO returns the lower-case ISO 639-1 code of the detected language.
func (d *Detector) DetectISO(text string) (string, bool) {
	lang, ok := d.Detect(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
