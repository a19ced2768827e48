package cfglang

import "testing"

func TestReadWordSkipsSeparators(t *testing.T) {
	ctx := NewBufferContext("  hello   world\n")
	w, ok := ctx.readWord()
	if !ok || w != "hello" {
		t.Fatalf("first word = %q,%v, want hello,true", w, ok)
	}
	w, ok = ctx.readWord()
	if !ok || w != "world" {
		t.Fatalf("second word = %q,%v, want world,true", w, ok)
	}
	if _, ok := ctx.readWord(); ok {
		t.Fatal("expected no more words after the line ends")
	}
}

func TestReadWordHonorsQuotes(t *testing.T) {
	ctx := NewBufferContext(`"has spaces" 'and "nested"'` + "\n")
	w, ok := ctx.readWord()
	if !ok || w != "has spaces" {
		t.Fatalf("quoted word = %q,%v, want \"has spaces\",true", w, ok)
	}
	w, ok = ctx.readWord()
	if !ok || w != `and "nested"` {
		t.Fatalf("single-quoted word = %q,%v", w, ok)
	}
}

func TestReadWordTruncatesAtTokenMaxLen(t *testing.T) {
	long := make([]byte, TokenMaxLen+10)
	for i := range long {
		long[i] = 'x'
	}
	ctx := NewBufferContext(string(long) + "\n")
	w, ok := ctx.readWord()
	if !ok {
		t.Fatal("expected a word")
	}
	if len(w) != TokenMaxLen-1 {
		t.Fatalf("len(w) = %d, want %d", len(w), TokenMaxLen-1)
	}
}

func TestGotoEOLResetsReplayState(t *testing.T) {
	ctx := NewBufferContext("a b\nc d\n")
	var book Book
	book.NewGroup()
	book.Write("x")
	ctx.varReplay = newGroupReplay(&book, 0)
	ctx.exprStack = append(ctx.exprStack, newLiteralReplay([]string{"y"}))

	ctx.gotoEOL()

	if ctx.varReplay.active() {
		t.Fatal("varReplay should be reset by gotoEOL")
	}
	if len(ctx.exprStack) != 0 {
		t.Fatal("exprStack should be cleared by gotoEOL")
	}
	if !ctx.eolReached {
		t.Fatal("eolReached should be set after gotoEOL")
	}
}

func TestGetTokenRawPrefersExprStackOverFreshInput(t *testing.T) {
	ctx := NewBufferContext("fresh\n")
	ctx.exprStack = append(ctx.exprStack, newLiteralReplay([]string{"captured"}))

	w, kind := ctx.getTokenRaw()
	if kind != String || w != "captured" {
		t.Fatalf("getTokenRaw = %q,%v, want captured,String", w, kind)
	}
	w, kind = ctx.getTokenRaw()
	if kind != String || w != "fresh" {
		t.Fatalf("getTokenRaw after exhaustion = %q,%v, want fresh,String", w, kind)
	}
}
