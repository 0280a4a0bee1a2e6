package annotate

import (
	"encoding/json"
	"testing"
)

func TestParsePOS(t *testing.T) {
	for _, p := range AllPOS() {
		if got := ParsePOS(p.String()); got != p {
			t.Errorf("ParsePOS(%q) = %v, want %v", p.String(), got, p)
		}
	}
	if got := ParsePOS("NNP"); got != POSX {
		t.Errorf("expected unknown tag to map to X, got %v", got)
	}
	if got := ParsePOS(""); got != POSX {
		t.Errorf("expected empty tag to map to X, got %v", got)
	}
}

func TestAllPOS(t *testing.T) {
	all := AllPOS()
	if len(all) != 17 {
		t.Fatalf("expected 17 tags, got %d", len(all))
	}
	seen := map[POS]bool{}
	for _, p := range all {
		if seen[p] {
			t.Errorf("duplicate tag %v", p)
		}
		seen[p] = true
		if p.Description() == "" {
			t.Errorf("missing description for %v", p)
		}
	}
	if all[0] != POSAdj || all[16] != POSX {
		t.Errorf("unexpected order: first %v last %v", all[0], all[16])
	}
}

func TestFeatures(t *testing.T) {
	fs := mustFeats("VerbForm=Fin|Mood=Ind|Tense=Pres")
	if !fs.Has(TensePres) {
		t.Error("expected Tense=Pres")
	}
	if fs.Has(TensePast) {
		t.Error("did not expect Tense=Past")
	}
	if got := fs.String(); got != "Mood=Ind|Tense=Pres|VerbForm=Fin" {
		t.Errorf("String() = %q", got)
	}

	var empty Features
	if empty.Has(AspectProg) {
		t.Error("nil set should have no features")
	}
	if !mustFeats("Aspect=Prog|Tense=Pres").Has(AspectProg) {
		t.Error("expected Aspect=Prog")
	}
}

func TestTokenJSON(t *testing.T) {
	token := Token{ID: 1, Text: "is", POS: POSAux, Lemma: "be", Feats: mustFeats("Tense=Pres"), Head: 2, DepRel: "aux"}
	data, err := json.Marshal(token)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["pos"] != "AUX" {
		t.Errorf("expected pos AUX, got %v", decoded["pos"])
	}
	if decoded["feats"] != "Tense=Pres" {
		t.Errorf("expected feats Tense=Pres, got %v", decoded["feats"])
	}
}
