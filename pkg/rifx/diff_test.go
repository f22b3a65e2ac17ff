package rifx

import "testing"

func TestCompare(t *testing.T) {
	t.Parallel()

	headA := make([]byte, 12)
	headB := make([]byte, 12)
	headB[1] = 0x5e
	headB[7] = 0x37

	a := container(chunk(IDHead, headA), chunk(IDList, []byte("Fold")), chunk("tdsn", []byte{1}))
	b := container(chunk(IDHead, headB), chunk(IDList, []byte("Fold1234")), chunk("tdsb", []byte{1}), chunk("xtra", nil))

	diffs, err := Compare(a, b)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	want := []DiffKind{DiffContent, DiffSize, DiffID, DiffAdded}
	if len(diffs) != len(want) {
		t.Fatalf("diff count: got %d want %d (%+v)", len(diffs), len(want), diffs)
	}
	for i, d := range diffs {
		if d.Kind != want[i] {
			t.Errorf("diff %d: got %s want %s", i, d.Kind, want[i])
		}
		if d.Index != i {
			t.Errorf("diff %d: index %d", i, d.Index)
		}
	}
	if offs := diffs[0].Offsets; len(offs) != 2 || offs[0] != 1 || offs[1] != 7 {
		t.Fatalf("content offsets: got %v want [1 7]", offs)
	}
	if diffs[3].A != nil || diffs[3].B == nil {
		t.Fatalf("added diff should only carry B: %+v", diffs[3])
	}
}

func TestCompareIdentical(t *testing.T) {
	t.Parallel()

	a := container(chunk(IDHead, make([]byte, 12)))
	diffs, err := Compare(a, append([]byte(nil), a...))
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if len(diffs) != 0 {
		t.Fatalf("expected no diffs, got %+v", diffs)
	}
}
