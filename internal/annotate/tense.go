package annotate

// Tense is one of the twelve English tense categories, in display order.
type Tense uint8

const (
	PastSimple Tense = iota
	PastContinuous
	PastPerfect
	PastPerfectContinuous
	PresentSimple
	PresentContinuous
	PresentPerfect
	PresentPerfectContinuous
	FutureSimple
	FutureContinuous
	FuturePerfect
	FuturePerfectContinuous

	numTenses
)

var tenseNames = [numTenses]string{
	PastSimple:               "Past Simple",
	PastContinuous:           "Past Continuous",
	PastPerfect:              "Past Perfect",
	PastPerfectContinuous:    "Past Perfect Continuous",
	PresentSimple:            "Present Simple",
	PresentContinuous:        "Present Continuous",
	PresentPerfect:           "Present Perfect",
	PresentPerfectContinuous: "Present Perfect Continuous",
	FutureSimple:             "Future Simple",
	FutureContinuous:         "Future Continuous",
	FuturePerfect:            "Future Perfect",
	FuturePerfectContinuous:  "Future Perfect Continuous",
}

func (t Tense) String() string {
	if t < numTenses {
		return tenseNames[t]
	}
	return "Unknown"
}

func (t Tense) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// AllTenses lists every category in display order.
func AllTenses() []Tense {
	all := make([]Tense, numTenses)
	for i := range all {
		all[i] = Tense(i)
	}
	return all
}

// TenseSet holds one flag per category.
type TenseSet [numTenses]bool

func (s *TenseSet) Set(t Tense) {
	if t < numTenses {
		s[t] = true
	}
}

func (s TenseSet) Has(t Tense) bool {
	return t < numTenses && s[t]
}

// List returns the set categories in display order.
func (s TenseSet) List() []Tense {
	var out []Tense
	for i, on := range s {
		if on {
			out = append(out, Tense(i))
		}
	}
	return out
}

// A tenseRule claims the tokens it matches. Fire may still decline to set a
// flag, in which case the token contributes nothing.
type tenseRule struct {
	match func(Token) bool
	fire  func(Token) (Tense, bool)
}

// tenseRules is evaluated top to bottom and the first rule whose match
// claims a token is the only one applied to it.
//
// Only Past Simple, Present Simple, Present Continuous and Future Simple are
// reachable. The perfect, perfect-continuous, past-continuous and
// future-continuous categories have no rule and are never reported.
var tenseRules = []tenseRule{
	{match: auxWithLemma("be"), fire: presentOrPast},
	{match: auxWithLemma("will"), fire: always(FutureSimple)},
	{match: hasPOS(POSAux), fire: nothing},
	{match: hasPOS(POSVerb), fire: verbTense},
}

func hasPOS(p POS) func(Token) bool {
	return func(t Token) bool { return t.POS == p }
}

func auxWithLemma(lemma string) func(Token) bool {
	return func(t Token) bool { return t.POS == POSAux && t.Lemma == lemma }
}

func always(tense Tense) func(Token) (Tense, bool) {
	return func(Token) (Tense, bool) { return tense, true }
}

func nothing(Token) (Tense, bool) {
	return 0, false
}

// presentOrPast checks Tense=Pres before Tense=Past.
func presentOrPast(t Token) (Tense, bool) {
	switch {
	case t.Feats.Has(TensePres):
		return PresentSimple, true
	case t.Feats.Has(TensePast):
		return PastSimple, true
	}
	return 0, false
}

func verbTense(t Token) (Tense, bool) {
	if tense, ok := presentOrPast(t); ok {
		return tense, true
	}
	if t.IsRoot() && t.Feats.Has(AspectProg) {
		return PresentContinuous, true
	}
	return 0, false
}

// DetectTenses applies the rule table to tokens in document order. The
// result depends only on the tokens.
func DetectTenses(tokens []Token) []Tense {
	var flags TenseSet
	for _, tok := range tokens {
		for _, rule := range tenseRules {
			if !rule.match(tok) {
				continue
			}
			if tense, ok := rule.fire(tok); ok {
				flags.Set(tense)
			}
			break
		}
	}
	return flags.List()
}
