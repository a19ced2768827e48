package cfglang

import "testing"

func dispatchAll(e *Engine, src string) {
	ctx := NewBufferContext(src)
	for !ctx.eofReached {
		e.DispatchLine(ctx)
		if e.blocked() {
			return
		}
	}
}

func TestDeclareResourceBindsValues(t *testing.T) {
	e := New()
	dispatchAll(e, "db host localhost port\n")

	e.Fetch("db", "host")
	if !e.Iterate() {
		t.Fatal("expected at least one value")
	}
	if v := e.Resource(); v != "localhost" && v != "port" {
		t.Fatalf("unexpected first value %q", v)
	}
}

func TestDeclareResourceWithNoValuesIsDiscarded(t *testing.T) {
	e := New()
	before := e.sequences.GroupCount()
	dispatchAll(e, "db host\n")
	if e.sequences.GroupCount() != before {
		t.Fatal("an empty resource declaration should not leave a group behind")
	}
	e.Fetch("db", "host")
	if e.Iterate() {
		t.Fatal("no resource should be bound")
	}
}

func TestDeclareEnumCascade(t *testing.T) {
	e := New()
	dispatchAll(e, "LET_ENUM n 1 3 2 0\n")

	g, ok := e.keysVars.Find("n", nsVariable)
	if !ok {
		t.Fatal("expected n to be bound")
	}
	got := make([]string, e.vars.GroupLen(int(g)))
	for i := range got {
		got[i], _ = e.vars.Word(int(g), i)
	}
	want := []string{"1", "2", "3"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestDeclareEnumSingleParamDefaultsMinZero(t *testing.T) {
	e := New()
	dispatchAll(e, "LET_ENUM n 10\n")

	g, ok := e.keysVars.Find("n", nsVariable)
	if !ok {
		t.Fatal("expected n to be bound")
	}
	if n := e.vars.GroupLen(int(g)); n != 11 {
		t.Fatalf("GroupLen = %d, want 11 (steps = max-min = 10)", n)
	}
	first, _ := e.vars.Word(int(g), 0)
	if first != "0" {
		t.Fatalf("first value = %q, want 0", first)
	}
}

func TestCombineVarAppend(t *testing.T) {
	e := New()
	dispatchAll(e, "LET base a b\nVAR combined base _suffix\n")

	g, ok := e.keysVars.Find("combined", nsVariable)
	if !ok {
		t.Fatal("expected combined to be bound")
	}
	v0, _ := e.vars.Word(int(g), 0)
	v1, _ := e.vars.Word(int(g), 1)
	if v0 != "a_suffix" || v1 != "b_suffix" {
		t.Fatalf("got %q,%q, want a_suffix,b_suffix", v0, v1)
	}
}

func TestSectionGatesSubsequentLines(t *testing.T) {
	e := New()
	dispatchAll(e, "SECTION enterprise\nns prop only-if-enterprise\n")

	e.Fetch("ns", "prop")
	if e.Iterate() {
		t.Fatal("resource declared under an unmet SECTION tag must not bind")
	}
}

func TestSectionAddOpensGate(t *testing.T) {
	e := New()
	dispatchAll(e, "SECTION_ADD enterprise\nSECTION enterprise\nns prop value\n")

	e.Fetch("ns", "prop")
	if !e.Iterate() {
		t.Fatal("resource declared under a satisfied SECTION tag should bind")
	}
}

func TestRestrictBlocksSubsequentMutation(t *testing.T) {
	e := New()
	dispatchAll(e, "RESTRICT\nLET v 1\n")

	if _, ok := e.keysVars.Find("v", nsVariable); ok {
		t.Fatal("LET after RESTRICT should be a no-op")
	}
}

func TestRestrictStillAllowsResourceDeclaration(t *testing.T) {
	e := New()
	dispatchAll(e, "RESTRICT\nns prop value\n")

	e.Fetch("ns", "prop")
	if !e.Iterate() {
		t.Fatal("resource declaration should still run in restricted mode")
	}
}

func TestForEachBindsAliasPerValue(t *testing.T) {
	e := New()
	dispatchAll(e, "LET hosts a b c\nFOR_EACH hosts h\nLET JOIN seen_ % h yes\nFOR_END\n")

	for _, want := range []string{"a", "b", "c"} {
		if _, ok := e.keysVars.Find("seen_"+want, nsVariable); !ok {
			t.Fatalf("expected seen_%s to be bound", want)
		}
	}
}

func TestForEachWithoutAliasDefaultsToVarName(t *testing.T) {
	e := New()
	dispatchAll(e, "LET_ENUM n 1 3 2 0\nFOR_EACH n\nLET JOIN seen_ % n yes\nFOR_END\n")

	for _, want := range []string{"1", "2", "3"} {
		if _, ok := e.keysVars.Find("seen_"+want, nsVariable); !ok {
			t.Fatalf("expected seen_%s to be bound", want)
		}
	}
	if _, ok := e.keysVars.Find("n", nsIteration); ok {
		t.Fatal("loop alias should not remain bound after FOR_END")
	}
}
