package stepcalc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func render(steps []Node) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.String()
	}
	return out
}

func TestMergeSteps(t *testing.T) {
	origLeft := OpOf(OpAdd, N(1), N(2))
	origRight := OpOf(OpSub, N(9), N(4))
	left := derivation{node: N(3), steps: []Node{origLeft, N(3)}}
	right := derivation{node: N(5), steps: []Node{origRight, N(5)}}

	got := render(mergeSteps(OpMul, left, right, origRight))
	want := []string{"3*(9-4)", "3*5"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mergeSteps mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeSteps_LeavesUnchanged(t *testing.T) {
	got := mergeSteps(OpAdd, leafDerivation(N(1)), leafDerivation(N(2)), N(2))
	if len(got) != 0 {
		t.Errorf("want no steps, got %v", render(got))
	}
}

func TestMergeSteps_LongLeftHistory(t *testing.T) {
	left := derivation{
		node:  N(4),
		steps: []Node{OpOf(OpMul, OpOf(OpAdd, N(1), N(1)), N(2)), OpOf(OpMul, N(2), N(2)), N(4)},
	}
	got := render(mergeSteps(OpDiv, left, leafDerivation(N(8)), N(8)))
	want := []string{"2*2/8", "4/8"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mergeSteps mismatch (-want +got):\n%s", diff)
	}
}

func TestDerivationPush_SkipsRepeats(t *testing.T) {
	d := derivation{steps: []Node{FracOf(5, 3)}}
	d.push(FracOf(5, 3))
	d.push(N(2))
	d.push(N(2))
	if diff := cmp.Diff([]string{"5/3", "2"}, render(d.steps)); diff != "" {
		t.Errorf("push mismatch (-want +got):\n%s", diff)
	}
}

func TestFailedKeepsOnlyOriginal(t *testing.T) {
	orig := OpOf(OpDiv, N(5), N(0))
	d := failed(orig, divisionByZero(N(5)))
	if diff := cmp.Diff([]string{"5/0"}, render(d.steps)); diff != "" {
		t.Errorf("failed steps mismatch (-want +got):\n%s", diff)
	}
	if !IsError(d.node) {
		t.Errorf("want error node, got %s", d.node)
	}
}
