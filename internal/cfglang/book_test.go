package cfglang

import "testing"

func TestBookGroupsAreIndependent(t *testing.T) {
	var b Book
	g0 := b.NewGroup()
	b.Write("a")
	b.Write("b")
	g1 := b.NewGroup()
	b.Write("c")

	if n := b.GroupLen(g0); n != 2 {
		t.Fatalf("GroupLen(g0) = %d, want 2", n)
	}
	if n := b.GroupLen(g1); n != 1 {
		t.Fatalf("GroupLen(g1) = %d, want 1", n)
	}
	if w, ok := b.Word(g0, 1); !ok || w != "b" {
		t.Fatalf("Word(g0,1) = %q,%v, want b,true", w, ok)
	}
	if w, ok := b.Word(g1, 0); !ok || w != "c" {
		t.Fatalf("Word(g1,0) = %q,%v, want c,true", w, ok)
	}
}

func TestBookUndoDiscardsTailGroup(t *testing.T) {
	var b Book
	b.NewGroup()
	b.Write("x")
	g1 := b.NewGroup()
	b.Write("y")
	b.Undo()

	if b.GroupCount() != 1 {
		t.Fatalf("GroupCount after Undo = %d, want 1", b.GroupCount())
	}
	if _, ok := b.Word(g1, 0); ok {
		t.Fatalf("Word(g1,0) should be gone after Undo")
	}
}

func TestBookWritePanicsOnNonTailGroup(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic writing into a non-tail group")
		}
	}()
	var b Book
	b.NewGroup()
	b.Write("a")
	// corrupt the arena so the tail group's extent no longer reaches the
	// end of the word slice; Write must refuse to extend it silently.
	b.words = append(b.words, "stray")
	b.Write("unreachable")
}

func TestGroupReplayLiteral(t *testing.T) {
	r := newLiteralReplay([]string{"1", "2"})
	if !r.active() {
		t.Fatal("literal replay should be active before exhaustion")
	}
	w, ok := r.next()
	if !ok || w != "1" {
		t.Fatalf("first next() = %q,%v, want 1,true", w, ok)
	}
	w, ok = r.next()
	if !ok || w != "2" {
		t.Fatalf("second next() = %q,%v, want 2,true", w, ok)
	}
	if _, ok := r.next(); ok {
		t.Fatal("third next() should report exhaustion")
	}
	if r.active() {
		t.Fatal("replay should no longer be active once exhausted")
	}
}

func TestGroupReplaySingleGlobalIndex(t *testing.T) {
	var b Book
	b.NewGroup()
	b.Write("a")
	g1 := b.NewGroup()
	b.Write("b")
	b.Write("c")

	idx, ok := b.GlobalIndex(g1, 1)
	if !ok {
		t.Fatal("GlobalIndex should resolve")
	}
	r := newSingleReplay(&b, idx)
	w, ok := r.next()
	if !ok || w != "c" {
		t.Fatalf("single replay = %q,%v, want c,true", w, ok)
	}
	if _, ok := r.next(); ok {
		t.Fatal("single replay must yield exactly one word")
	}
}
