package cfglang

import "testing"

func TestEvalArithmetic(t *testing.T) {
	e := New()
	ctx := NewBufferContext("+ 2 3\n")
	res := e.nextToken(ctx)
	if res.kind != Number || res.str != "5.00000000" {
		t.Fatalf("result = %+v, want Number 5.00000000", res)
	}
}

func TestEvalUnknownWordPassesThroughAsString(t *testing.T) {
	e := New()
	ctx := NewBufferContext("hello\n")
	res := e.nextToken(ctx)
	if res.kind != String || res.str != "hello" {
		t.Fatalf("result = %+v, want String hello", res)
	}
}

func TestEvalJoinConcatenates(t *testing.T) {
	e := New()
	ctx := NewBufferContext("JOIN foo bar\n")
	res := e.nextToken(ctx)
	if res.kind != String || res.str != "foobar" {
		t.Fatalf("result = %+v, want String foobar", res)
	}
}

func TestEvalHexColorNumeralCoercion(t *testing.T) {
	e := New()
	ctx := NewBufferContext("ABS #ff0000\n")
	res := e.nextToken(ctx)
	if res.kind != Number {
		t.Fatalf("result = %+v, want a Number", res)
	}
	if res.num <= 0 {
		t.Fatalf("expected a positive packed ARGB word, got %v", res.num)
	}
}

// TestEvalConditionalDoesNotLeakTheDiscardedBranch exercises the
// structural-capture fix for the discarded-branch hazard (DESIGN.md
// Open Question decision 1): the false branch here is itself a RANDOM
// expression, which must never be evaluated, and the line must be fully
// consumed by the single conditional statement with nothing left over.
func TestEvalConditionalDoesNotLeakTheDiscardedBranch(t *testing.T) {
	e := New()
	ctx := NewBufferContext("< 1 2 1 RANDOM 0 1\n")

	res := e.nextToken(ctx)
	if res.kind != String || res.str != "1" {
		t.Fatalf("result = %+v, want String 1 (true branch)", res)
	}

	next := e.nextToken(ctx)
	if next.kind != Invalid {
		t.Fatalf("expected the line to be fully consumed, got %+v", next)
	}
}

func TestEvalConditionalFalseBranch(t *testing.T) {
	e := New()
	ctx := NewBufferContext("> 1 2 yes no\n")
	res := e.nextToken(ctx)
	if res.kind != String || res.str != "no" {
		t.Fatalf("result = %+v, want String no", res)
	}
}

func TestEvalVarInjectionFallsBackToParam(t *testing.T) {
	e := New()
	e.PushParam("greeting", Parameter{Kind: ParamString, Str: "hi"})
	ctx := NewBufferContext("% greeting\n")
	res := e.nextToken(ctx)
	if res.kind != String || res.str != "hi" {
		t.Fatalf("result = %+v, want String hi", res)
	}
}

func TestEvalVarInjectionReplaysWholeGroup(t *testing.T) {
	e := New()
	g := e.vars.NewGroup()
	e.vars.Write("a")
	e.vars.Write("b")
	e.keysVars.Write("v", nsVariable, uint64(g))

	ctx := NewBufferContext("% v\n")
	first := e.nextToken(ctx)
	if first.kind != String || first.str != "a" {
		t.Fatalf("first = %+v, want String a", first)
	}
	second := e.nextToken(ctx)
	if second.kind != String || second.str != "b" {
		t.Fatalf("second = %+v, want String b", second)
	}
}
