package depviz

import (
	"strings"
	"testing"
)

func sheIsCooking() []Node {
	return []Node{
		{Text: "She", Tag: "PRON", Head: 3, Rel: "nsubj"},
		{Text: "is", Tag: "AUX", Head: 3, Rel: "aux"},
		{Text: "cooking", Tag: "VERB", Head: 0, Rel: "root"},
		{Text: "dinner", Tag: "NOUN", Head: 3, Rel: "obj"},
	}
}

func TestBuildArcs(t *testing.T) {
	arcs := buildArcs(sheIsCooking())
	if len(arcs) != 3 {
		t.Fatalf("expected 3 arcs (root has none), got %d", len(arcs))
	}

	nsubj := arcs[0]
	if nsubj.start != 0 || nsubj.end != 2 || !nsubj.toLeft || nsubj.level != 2 {
		t.Errorf("unexpected nsubj arc: %+v", nsubj)
	}
	obj := arcs[2]
	if obj.start != 2 || obj.end != 3 || obj.toLeft || obj.level != 1 {
		t.Errorf("unexpected obj arc: %+v", obj)
	}
}

func TestBuildArcs_SkipsBadHeads(t *testing.T) {
	nodes := []Node{
		{Text: "a", Head: 1},
		{Text: "b", Head: 9},
		{Text: "c", Head: -1},
	}
	if arcs := buildArcs(nodes); len(arcs) != 0 {
		t.Errorf("expected no arcs, got %+v", arcs)
	}
}

func TestRender(t *testing.T) {
	out := Render([][]Node{sheIsCooking(), {{Text: "Hi", Tag: "INTJ"}}}, DefaultOptions())

	if got := strings.Count(out, "<svg"); got != 2 {
		t.Errorf("expected 2 svg elements, got %d", got)
	}
	for _, want := range []string{">cooking<", ">VERB<", ">nsubj<", ">obj<", `id="arc-0-0"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestRender_Escapes(t *testing.T) {
	out := Render([][]Node{{{Text: "<b>", Tag: "SYM"}}}, DefaultOptions())
	if strings.Contains(out, "<b>") {
		t.Error("expected word text to be escaped")
	}
	if !strings.Contains(out, "&lt;b&gt;") {
		t.Error("expected escaped word text")
	}
}

func TestRender_Empty(t *testing.T) {
	if out := Render(nil, DefaultOptions()); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}
