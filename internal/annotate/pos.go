package annotate

// POS is a Universal Dependencies part-of-speech tag.
type POS uint8

const (
	POSX POS = iota
	POSAdj
	POSAdp
	POSAdv
	POSAux
	POSCConj
	POSDet
	POSIntj
	POSNoun
	POSNum
	POSPart
	POSPron
	POSPropN
	POSPunct
	POSSConj
	POSSym
	POSVerb
)

var posTags = [...]struct {
	name        string
	description string
}{
	POSX:     {"X", "Other (catch-all)"},
	POSAdj:   {"ADJ", "Adjective"},
	POSAdp:   {"ADP", "Adposition (preposition or postposition)"},
	POSAdv:   {"ADV", "Adverb"},
	POSAux:   {"AUX", "Auxiliary verb"},
	POSCConj: {"CCONJ", "Coordinating conjunction"},
	POSDet:   {"DET", "Determiner"},
	POSIntj:  {"INTJ", "Interjection"},
	POSNoun:  {"NOUN", "Noun"},
	POSNum:   {"NUM", "Numeral"},
	POSPart:  {"PART", "Particle"},
	POSPron:  {"PRON", "Pronoun"},
	POSPropN: {"PROPN", "Proper noun"},
	POSPunct: {"PUNCT", "Punctuation"},
	POSSConj: {"SCONJ", "Subordinating conjunction"},
	POSSym:   {"SYM", "Symbol"},
	POSVerb:  {"VERB", "Verb"},
}

var posByName = func() map[string]POS {
	m := make(map[string]POS, len(posTags))
	for p, tag := range posTags {
		m[tag.name] = POS(p)
	}
	return m
}()

// ParsePOS maps a UPOS tag to its POS. Unknown tags map to POSX.
func ParsePOS(tag string) POS {
	if p, ok := posByName[tag]; ok {
		return p
	}
	return POSX
}

func (p POS) String() string {
	if int(p) < len(posTags) {
		return posTags[p].name
	}
	return posTags[POSX].name
}

// Description is the learner-facing explanation of the tag.
func (p POS) Description() string {
	if int(p) < len(posTags) {
		return posTags[p].description
	}
	return posTags[POSX].description
}

// MarshalText encodes the tag name, so JSON output reads "VERB" not 16.
func (p POS) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// AllPOS lists the seventeen tags alphabetically with X last, the order
// used by the tag glossary.
func AllPOS() []POS {
	return []POS{
		POSAdj, POSAdp, POSAdv, POSAux, POSCConj, POSDet, POSIntj, POSNoun, POSNum,
		POSPart, POSPron, POSPropN, POSPunct, POSSConj, POSSym, POSVerb, POSX,
	}
}
