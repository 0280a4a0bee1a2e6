package conllu

import (
	"errors"
	"strings"
	"testing"
)

func TestParseRow(t *testing.T) {
	row := strings.Split("2	is	be	AUX	VBZ	Mood=Ind|Number=Sing|Person=3|Tense=Pres|VerbForm=Fin	4	aux	_	_",
		FieldSeparator)

	parsed, err := ParseRow(row)
	if err != nil {
		t.Fatal(err)
	}

	if parsed.ID != 2 {
		t.Errorf("Expected ID 2, got %d", parsed.ID)
	}
	if parsed.Form != "is" {
		t.Errorf("Expected FORM is, got %s", parsed.Form)
	}
	if parsed.Lemma != "be" {
		t.Errorf("Expected LEMMA be, got %s", parsed.Lemma)
	}
	if parsed.UPosTag != "AUX" {
		t.Errorf("Expected UPOS AUX, got %s", parsed.UPosTag)
	}
	if len(parsed.Feats) != 5 {
		t.Errorf("Expected 5 features, got %d", len(parsed.Feats))
	}
	if !parsed.Feats.Has("Tense", "Pres") {
		t.Errorf("Expected Tense=Pres in %v", parsed.Feats)
	}
	if parsed.Feats.Has("Tense", "Past") {
		t.Errorf("Did not expect Tense=Past in %v", parsed.Feats)
	}
	if parsed.Head != 4 {
		t.Errorf("Expected HEAD 4, got %d", parsed.Head)
	}
	if parsed.DepRel != "aux" {
		t.Errorf("Expected DEPREL aux, got %s", parsed.DepRel)
	}
}

func TestParseRowWithoutFeatures(t *testing.T) {
	row := strings.Split("5	.	.	PUNCT	.	_	4	punct	_	SpaceAfter=No", FieldSeparator)

	parsed, err := ParseRow(row)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Feats != nil {
		t.Errorf("Expected no features, got %v", parsed.Feats)
	}
	if parsed.Misc != "SpaceAfter=No" {
		t.Errorf("Expected MISC SpaceAfter=No, got %q", parsed.Misc)
	}
}

func TestParseRowPunctUnderscore(t *testing.T) {
	row := strings.Split("1	_	_	PUNCT	NFP	_	0	root	_	_", FieldSeparator)

	parsed, err := ParseRow(row)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Form != "_" {
		t.Errorf("Expected punctuation form to be kept as _, got %q", parsed.Form)
	}
}

func TestParseFeaturesMultiValue(t *testing.T) {
	feats, err := ParseFeatures("PronType=Int,Rel|Number=Sing")
	if err != nil {
		t.Fatal(err)
	}
	if !feats.Has("PronType", "Int") || !feats.Has("PronType", "Rel") {
		t.Errorf("Expected both PronType values, got %v", feats)
	}
	if got := feats.String(); got != "Number=Sing|PronType=Int,Rel" {
		t.Errorf("Unexpected String(): %q", got)
	}
}

func TestParseRowErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few fields", "1	I	I	PRON"},
		{"bad id", "x	I	I	PRON	PRP	_	2	nsubj	_	_"},
		{"bad head", "1	I	I	PRON	PRP	_	y	nsubj	_	_"},
		{"bad feature", "1	I	I	PRON	PRP	Case	2	nsubj	_	_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRow(strings.Split(tt.line, FieldSeparator))
			if !errors.Is(err, ErrMalformedRow) {
				t.Errorf("expected ErrMalformedRow, got %v", err)
			}
		})
	}
}

const sample = `# newdoc
# sent_id = 1
# text = She is cooking dinner.
1	She	she	PRON	PRP	Case=Nom|Gender=Fem|Number=Sing|Person=3|PronType=Prs	3	nsubj	_	_
2	is	be	AUX	VBZ	Mood=Ind|Number=Sing|Person=3|Tense=Pres|VerbForm=Fin	3	aux	_	_
3	cooking	cook	VERB	VBG	Tense=Pres|VerbForm=Part	0	root	_	_
4	dinner	dinner	NOUN	NN	Number=Sing	3	obj	_	SpaceAfter=No
5	.	.	PUNCT	.	_	3	punct	_	_

# sent_id = 2
# text = I won't go.
1	I	I	PRON	PRP	Case=Nom|Number=Sing|Person=1|PronType=Prs	4	nsubj	_	_
2-3	won't	_	_	_	_	_	_	_	_
2	wo	will	AUX	MD	VerbForm=Fin	4	aux	_	_
3	n't	not	PART	RB	_	4	advmod	_	_
4	go	go	VERB	VB	VerbForm=Inf	0	root	_	_
4.1	gone	go	VERB	VBN	_	_	_	4:conj	_
5	.	.	PUNCT	.	_	4	punct	_	_
`

func TestRead(t *testing.T) {
	sentences, err := Read(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	if len(sentences) != 2 {
		t.Fatalf("Expected 2 sentences, got %d", len(sentences))
	}

	first := sentences[0]
	if first.Text != "She is cooking dinner." {
		t.Errorf("Unexpected text %q", first.Text)
	}
	if len(first.Comments) != 3 {
		t.Errorf("Expected 3 comments, got %d", len(first.Comments))
	}
	if len(first.Rows) != 5 {
		t.Fatalf("Expected 5 rows, got %d", len(first.Rows))
	}
	if first.Rows[2].DepRel != "root" || first.Rows[2].Head != 0 {
		t.Errorf("Expected row 3 to be the root, got %+v", first.Rows[2])
	}

	second := sentences[1]
	if len(second.Rows) != 5 {
		t.Fatalf("Expected multiword range and empty node to be skipped, got %d rows", len(second.Rows))
	}
	if second.Rows[1].Lemma != "will" {
		t.Errorf("Expected lemma will, got %q", second.Rows[1].Lemma)
	}
}

func TestReadMalformed(t *testing.T) {
	_, err := Read(strings.NewReader("1	broken\n"))
	if !errors.Is(err, ErrMalformedRow) {
		t.Errorf("expected ErrMalformedRow, got %v", err)
	}
}

func TestRowString(t *testing.T) {
	line := "3	cooking	cook	VERB	VBG	Tense=Pres|VerbForm=Part	0	root	_	_"
	row, err := ParseRow(strings.Split(line, FieldSeparator))
	if err != nil {
		t.Fatal(err)
	}
	if got := row.String(); got != line {
		t.Errorf("String() = %q, want %q", got, line)
	}
}
