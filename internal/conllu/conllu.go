// Package conllu reads dependency parses in the CoNLL-U format.
//
// Each word line has ten tab-separated fields:
//
//	ID FORM LEMMA UPOS XPOS FEATS HEAD DEPREL DEPS MISC
//
// "_" marks an empty field, lines starting with '#' are comments and a blank
// line ends a sentence. Multiword token ranges ("3-4") and empty nodes ("5.1")
// are skipped. See https://universaldependencies.org/format.html.
package conllu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

const (
	FieldSeparator    = "\t"
	NumFields         = 10
	FeaturesSeparator = "|"
	FeatureSeparator  = "="
	FeatureValueDelim = ","
	textCommentPrefix = "# text = "
	emptyField        = "_"
)

// ErrMalformedRow is wrapped by every row-level parse error.
var ErrMalformedRow = errors.New("conllu: malformed row")

// Features maps a feature name to its values, e.g. Tense → [Pres].
type Features map[string][]string

// Has reports whether name carries value.
func (f Features) Has(name, value string) bool {
	for _, v := range f[name] {
		if v == value {
			return true
		}
	}
	return false
}

func (f Features) String() string {
	if len(f) == 0 {
		return emptyField
	}
	strs := make([]string, 0, len(f))
	for k, vs := range f {
		strs = append(strs, k+FeatureSeparator+strings.Join(vs, FeatureValueDelim))
	}
	sort.Strings(strs)
	return strings.Join(strs, FeaturesSeparator)
}

// A Row is a single word line.
type Row struct {
	ID      int
	Form    string
	Lemma   string
	UPosTag string
	XPosTag string
	Feats   Features
	Head    int
	DepRel  string
	Deps    string
	Misc    string
}

func (r Row) String() string {
	fields := []string{
		strconv.Itoa(r.ID),
		r.Form,
		r.Lemma,
		r.UPosTag,
		r.XPosTag,
		r.Feats.String(),
		strconv.Itoa(r.Head),
		r.DepRel,
		r.Deps,
		r.Misc,
	}
	for i, field := range fields {
		if field == "" {
			fields[i] = emptyField
		}
	}
	return strings.Join(fields, FieldSeparator)
}

// A Sentence is the rows of one sentence in file order.
type Sentence struct {
	Text     string
	Comments []string
	Rows     []Row
}

func parseString(value string) string {
	if value == emptyField {
		return ""
	}
	return value
}

func parseInt(value string) (int, error) {
	if value == emptyField {
		return 0, nil
	}
	return strconv.Atoi(value)
}

// ParseFeatures parses "Mood=Ind|Tense=Past,Pres". Repeated names are merged.
func ParseFeatures(featuresStr string) (Features, error) {
	if featuresStr == emptyField || featuresStr == "" {
		return nil, nil
	}

	featureList := strings.Split(featuresStr, FeaturesSeparator)
	features := make(Features, len(featureList))
	for _, featureStr := range featureList {
		name, value, ok := strings.Cut(featureStr, FeatureSeparator)
		if !ok || name == "" || value == "" {
			return nil, fmt.Errorf("%w: bad feature %q", ErrMalformedRow, featureStr)
		}
		features[name] = append(features[name], strings.Split(value, FeatureValueDelim)...)
	}
	return features, nil
}

// ParseRow parses the fields of one word line.
func ParseRow(record []string) (Row, error) {
	var row Row
	if len(record) != NumFields {
		return row, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRow, NumFields, len(record))
	}

	id, err := parseInt(record[0])
	if err != nil {
		return row, fmt.Errorf("%w: ID field (%s): %v", ErrMalformedRow, record[0], err)
	}
	row.ID = id

	row.UPosTag = parseString(record[3])
	row.XPosTag = parseString(record[4])

	// PUNCT and SYM forms are taken as is, "_" can be a real underscore.
	if row.UPosTag == "PUNCT" || row.UPosTag == "SYM" {
		row.Form = record[1]
	} else {
		row.Form = parseString(record[1])
	}
	row.Lemma = parseString(record[2])

	row.Feats, err = ParseFeatures(record[5])
	if err != nil {
		return row, fmt.Errorf("FEATS field (%s): %w", record[5], err)
	}

	row.Head, err = parseInt(record[6])
	if err != nil {
		return row, fmt.Errorf("%w: HEAD field (%s): %v", ErrMalformedRow, record[6], err)
	}
	row.DepRel = parseString(record[7])
	row.Deps = parseString(record[8])
	row.Misc = parseString(record[9])
	return row, nil
}

// Read parses every sentence in r.
func Read(r io.Reader) ([]Sentence, error) {
	var (
		sentences []Sentence
		current   Sentence
		lineNo    int
	)
	flush := func() {
		if len(current.Rows) > 0 {
			sentences = append(sentences, current)
		}
		current = Sentence{}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case strings.TrimSpace(line) == "":
			flush()
			continue
		case strings.HasPrefix(line, "#"):
			if text, ok := strings.CutPrefix(line, textCommentPrefix); ok {
				current.Text = text
			}
			current.Comments = append(current.Comments, line)
			continue
		}

		record := strings.Split(line, FieldSeparator)
		if strings.ContainsAny(record[0], "-.") {
			continue
		}
		row, err := ParseRow(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		current.Rows = append(current.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed reading CoNLL-U: %w", err)
	}
	flush()
	return sentences, nil
}
