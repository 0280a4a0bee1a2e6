package annotate

import (
	"sort"
	"strings"

	"github.com/valpere/vieng/internal/conllu"
)

// Feature is one morphological key=value pair, e.g. Tense=Past.
type Feature struct {
	Name  string
	Value string
}

func (f Feature) String() string {
	return f.Name + "=" + f.Value
}

// Features the tense rules look at.
var (
	TensePres  = Feature{Name: "Tense", Value: "Pres"}
	TensePast  = Feature{Name: "Tense", Value: "Past"}
	AspectProg = Feature{Name: "Aspect", Value: "Prog"}
)

// Features is the set of morphological features on a token.
type Features map[Feature]struct{}

func featuresFromConllu(feats conllu.Features) Features {
	set := make(Features, len(feats))
	for name, values := range feats {
		for _, v := range values {
			set[Feature{Name: name, Value: v}] = struct{}{}
		}
	}
	return set
}

// Has reports whether f is in the set. A nil set has no features.
func (fs Features) Has(f Feature) bool {
	_, ok := fs[f]
	return ok
}

func (fs Features) String() string {
	if len(fs) == 0 {
		return ""
	}
	strs := make([]string, 0, len(fs))
	for f := range fs {
		strs = append(strs, f.String())
	}
	sort.Strings(strs)
	return strings.Join(strs, "|")
}

// MarshalText encodes the set in CoNLL-U FEATS form.
func (fs Features) MarshalText() ([]byte, error) {
	return []byte(fs.String()), nil
}
