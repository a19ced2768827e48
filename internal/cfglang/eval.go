package cfglang

import (
	"strconv"
	"strings"
	"time"
)

// evalResult is a fully-evaluated token: its kind, its textual rendering
// (what gets embedded into a resource/variable value) and, for Number
// results, the float64 value so further arithmetic does not need to
// round-trip through the formatted string.
type evalResult struct {
	kind TokenKind
	str  string
	num  float64
}

func invalidResult() evalResult { return evalResult{kind: Invalid} }

func stringResult(s string) evalResult { return evalResult{kind: String, str: s} }

func numberResult(v float64) evalResult {
	return evalResult{kind: Number, str: formatNumber(v), num: v}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', 8, 64)
}

// nextToken is the single entry point used throughout the interpreter to
// obtain "the next, fully evaluated token": it drains a raw word (from
// replay buffers or fresh input) and runs it through the substitution
// evaluator (spec.md S4.2 "apply").
func (e *Engine) nextToken(ctx *Context) evalResult {
	raw, kind := ctx.getTokenRaw()
	if kind != String {
		return invalidResult()
	}
	return e.apply(ctx, raw)
}

// apply implements spec.md S4.2: look raw up in the cached token table;
// unrecognized words pass through unchanged as STRING. Depth is bounded
// on every entry.
func (e *Engine) apply(ctx *Context, raw string) evalResult {
	kind, known := e.tokens[raw]
	if !known {
		return stringResult(raw)
	}

	if !ctx.enterDepth() {
		return invalidResult()
	}
	defer ctx.exitDepth()

	switch {
	case kind == Comment:
		return invalidResult()
	case kind == EOF:
		ctx.eofReached = true
		ctx.eolReached = true
		return invalidResult()
	case kind == Escape:
		return e.evalEscape(ctx)
	case kind == Filler:
		return e.nextToken(ctx)
	case kind == Join:
		return e.evalJoin(ctx)
	case kind == VarInjection:
		return e.evalVarInjection(ctx)
	case isComparison(kind):
		return e.evalConditional(ctx, kind)
	case kind == ConstTimestamp:
		return numberResult(float64(time.Now().Unix()))
	case isConst(kind):
		return numberResult(constOps[kind])
	case isUnary(kind):
		return e.evalUnary(ctx, kind)
	case kind == OpRandom:
		return e.evalRandom(ctx)
	case isBinary(kind):
		return e.evalBinary(ctx, kind)
	case isTernary(kind):
		return e.evalTernary(ctx, kind)
	case isColorOp(kind):
		return e.evalColor(ctx, kind)
	default:
		// statement-introducing keywords encountered where an expression
		// was expected are not substitutions; hand them back verbatim so
		// the dispatcher can classify them itself.
		return stringResult(raw)
	}
}

// evalEscape clears eol_reached and returns the next raw token
// unmodified, bypassing substitution. This is how a following newline
// can be consumed into the current line. Whether this is meant to escape
// a single word or a full line is ambiguous in the source spec; the
// one-token semantics are preserved per DESIGN.md decision 3.
func (e *Engine) evalEscape(ctx *Context) evalResult {
	ctx.eolReached = false
	if len(ctx.exprStack) == 0 && !ctx.varReplay.active() && !ctx.iterReplay.active() {
		// readWord leaves the separator after a word unread, so step over
		// the blanks and the single newline that follow the escape token;
		// the next word then comes from the following line.
		for b := ctx.peekChar(); b == ' ' || b == '\t' || b == '\v'; b = ctx.peekChar() {
			ctx.readChar()
		}
		if ctx.peekChar() == '\n' {
			ctx.readChar()
		}
	}
	raw, kind := ctx.getTokenRaw()
	if kind != String {
		return invalidResult()
	}
	return stringResult(raw)
}

func (e *Engine) evalJoin(ctx *Context) evalResult {
	a := e.nextToken(ctx)
	b := e.nextToken(ctx)
	if a.kind == Invalid || b.kind == Invalid {
		return invalidResult()
	}
	joined := a.str + b.str
	if len(joined) > TokenMaxLen-1 {
		joined = joined[:TokenMaxLen-1]
	}
	return stringResult(joined)
}

// evalVarInjection implements (% name): look the name up in the VARIABLE
// namespace (falling back to PARAMETER, spec.md S4.5), and arrange for
// the rest of the line to replay that group/value one word per call.
func (e *Engine) evalVarInjection(ctx *Context) evalResult {
	nameRes := e.nextToken(ctx)
	if nameRes.kind == Invalid {
		return invalidResult()
	}
	name := nameRes.str

	if globalIdx, ok := ctx.resolveIterationAlias(e, name); ok {
		ctx.varReplay = newSingleReplay(&e.iteration, globalIdx)
		w, ok := ctx.varReplay.next()
		if !ok {
			return invalidResult()
		}
		return e.apply(ctx, w)
	}

	if group, ok := e.keysVars.Find(name, nsVariable); ok {
		ctx.varReplay = newGroupReplay(&e.vars, int(group))
		w, ok := ctx.varReplay.next()
		if !ok {
			return invalidResult()
		}
		return e.apply(ctx, w)
	}

	if p, ok := e.params[name]; ok {
		return stringResult(p.String())
	}

	return invalidResult()
}

// resolveIterationAlias looks name up in the ITERATION namespace, which
// binds to a single global word index rather than a whole group
// (spec.md S4.3 "Variable expansion under iteration").
func (c *Context) resolveIterationAlias(e *Engine, name string) (int, bool) {
	v, ok := e.keysVars.Find(name, nsIteration)
	if !ok {
		return 0, false
	}
	return int(v), true
}

// evalConditional implements IF_* per DESIGN.md decision 1: both branches
// are captured structurally (unevaluated) before either is selected, so
// the discarded branch never runs and can never leak side effects (RNG
// draws, nested conditionals) into the chosen result.
func (e *Engine) evalConditional(ctx *Context, kind TokenKind) evalResult {
	a, aok := e.getTokenNumeral(ctx)
	b, bok := e.getTokenNumeral(ctx)
	trueWords := e.captureExpr(ctx)
	falseWords := e.captureExpr(ctx)
	if !aok || !bok {
		return invalidResult()
	}

	chosen := trueWords
	if !compare(kind, a, b) {
		chosen = falseWords
	}
	if len(chosen) == 0 {
		return invalidResult()
	}
	ctx.exprStack = append(ctx.exprStack, newLiteralReplay(chosen))
	return e.nextToken(ctx)
}

func (e *Engine) evalUnary(ctx *Context, kind TokenKind) evalResult {
	x, ok := e.getTokenNumeral(ctx)
	if !ok {
		return invalidResult()
	}
	return numberResult(unaryOps[kind](x))
}

func (e *Engine) evalBinary(ctx *Context, kind TokenKind) evalResult {
	a, aok := e.getTokenNumeral(ctx)
	b, bok := e.getTokenNumeral(ctx)
	if !aok || !bok {
		return invalidResult()
	}
	return numberResult(binaryOps[kind](a, b))
}

func (e *Engine) evalRandom(ctx *Context) evalResult {
	a, aok := e.getTokenNumeral(ctx)
	b, bok := e.getTokenNumeral(ctx)
	if !aok || !bok {
		return invalidResult()
	}
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	return numberResult(lo + ctx.rng.Float64()*(hi-lo))
}

func (e *Engine) evalTernary(ctx *Context, kind TokenKind) evalResult {
	a, aok := e.getTokenNumeral(ctx)
	b, bok := e.getTokenNumeral(ctx)
	c, cok := e.getTokenNumeral(ctx)
	if !aok || !bok || !cok {
		return invalidResult()
	}
	return numberResult(ternaryOps[kind](a, b, c))
}

func (e *Engine) evalColor(ctx *Context, kind TokenKind) evalResult {
	switch kind {
	case ClRGB:
		r, rok := e.getTokenNumeral(ctx)
		g, gok := e.getTokenNumeral(ctx)
		b, bok := e.getTokenNumeral(ctx)
		if !rok || !gok || !bok {
			return invalidResult()
		}
		return numberResult(float64(rgbARGB(r, g, b)))
	case ClRGBA:
		r, rok := e.getTokenNumeral(ctx)
		g, gok := e.getTokenNumeral(ctx)
		b, bok := e.getTokenNumeral(ctx)
		a, aok := e.getTokenNumeral(ctx)
		if !rok || !gok || !bok || !aok {
			return invalidResult()
		}
		return numberResult(float64(rgbaARGB(r, g, b, a)))
	case ClInterpolate:
		c1, c1ok := e.getTokenNumeral(ctx)
		c2, c2ok := e.getTokenNumeral(ctx)
		t, tok := e.getTokenNumeral(ctx)
		if !c1ok || !c2ok || !tok {
			return invalidResult()
		}
		return numberResult(float64(interpolateARGB(uint32(c1), uint32(c2), t)))
	}
	return invalidResult()
}

// getTokenNumeral implements spec.md S4.2 "Numeral coercion": evaluate
// the next token; Number results use their float value directly, String
// results are tried as a hex color (leading '#') then as a plain float.
func (e *Engine) getTokenNumeral(ctx *Context) (float64, bool) {
	res := e.nextToken(ctx)
	switch res.kind {
	case Number:
		return res.num, true
	case String:
		if strings.HasPrefix(res.str, "#") {
			v, err := parseHexColor(res.str)
			if err != nil {
				return 0, false
			}
			return float64(v), true
		}
		v, err := strconv.ParseFloat(res.str, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

// captureExpr reads one raw "token" structurally, without evaluating it:
// if the word names an expression keyword, it recursively captures
// exactly the number of sub-expressions that keyword's arity requires,
// returning the flat list of raw words involved. This never calls apply,
// so it can never trigger a side effect (RNG draw, variable-replay
// cursor reset) -- see DESIGN.md decision 1.
func (e *Engine) captureExpr(ctx *Context) []string {
	raw, kind := ctx.getTokenRaw()
	if kind != String {
		return nil
	}
	out := []string{raw}

	tk, known := e.tokens[raw]
	if !known {
		return out
	}

	arity := 0
	switch {
	case tk == Escape, tk == Filler, tk == VarInjection, isUnary(tk):
		arity = 1
	case tk == Join, isBinary(tk):
		arity = 2
	case isTernary(tk), tk == ClRGB, tk == ClInterpolate:
		arity = 3
	case tk == ClRGBA:
		arity = 4
	case isComparison(tk):
		a := e.captureExpr(ctx)
		b := e.captureExpr(ctx)
		t := e.captureExpr(ctx)
		f := e.captureExpr(ctx)
		out = append(out, a...)
		out = append(out, b...)
		out = append(out, t...)
		out = append(out, f...)
		return out
	}
	for i := 0; i < arity; i++ {
		out = append(out, e.captureExpr(ctx)...)
	}
	return out
}
