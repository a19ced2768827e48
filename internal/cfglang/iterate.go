package cfglang

// iterate implements FOR_EACH var [alias] ... FOR_END (spec.md S4.3
// "iterate"; GLOSSARY "Iteration"). var names a variable already bound by
// LET or LET_ENUM (VARIABLE namespace); alias is optional and defaults to
// var's own name. The body between FOR_EACH and its matching FOR_END is
// captured as raw, unevaluated source text -- not dispatched at capture
// time -- and then re-parsed from scratch once per value of var, with
// alias bound, for that iteration, to the current value in the ITERATION
// namespace (spec.md S3 "keys_vars").
//
// Re-parsing the captured text fresh on every iteration (rather than
// pre-tokenizing it once) means a nested FOR_EACH in the body is simply
// ordinary text until its own turn comes around, so nesting and variable
// expansion inside the body need no special-casing here.
func (e *Engine) iterate(ctx *Context) {
	e.iterDepth++
	defer func() {
		e.iterDepth--
		if e.iterDepth == 0 {
			e.iteration.Clear()
		}
	}()

	varRes := e.nextToken(ctx)
	aliasRes := e.nextToken(ctx)

	body, ok := e.captureForEachBody(ctx)
	if !ok {
		// an unbalanced FOR_END bypasses execution but still cleans up
		// (deferred iterDepth/iteration bookkeeping above); it is not a
		// sticky, unrecoverable failure.
		return
	}
	if varRes.kind == Invalid {
		return
	}

	alias := varRes.str
	if aliasRes.kind != Invalid {
		alias = aliasRes.str
	}
	if e.keysVars.Has(alias, nsIteration) {
		return
	}

	group, ok := e.keysVars.Find(varRes.str, nsVariable)
	if !ok {
		return
	}
	length := e.vars.GroupLen(int(group))

	for i := 0; i < length; i++ {
		value, _ := e.vars.Word(int(group), i)

		g := e.iteration.NewGroup()
		e.iteration.Write(value)
		idx, _ := e.iteration.GlobalIndex(g, 0)
		e.keysVars.Write(alias, nsIteration, uint64(idx))

		bodyCtx := NewBufferContext(body)
		bodyCtx.restricted = ctx.restricted
		bodyCtx.depth = ctx.depth
		bodyCtx.rng = ctx.rng

		for !bodyCtx.eofReached {
			e.DispatchLine(bodyCtx)
			if e.blocked() {
				return
			}
		}
	}
	e.keysVars.Erase(alias, nsIteration)
}

// captureForEachBody scans forward from ctx's current position, raw byte
// by raw byte, to find the FOR_END matching the FOR_EACH that is
// currently being dispatched, tracking nested FOR_EACH/FOR_END pairs by
// their first word. It returns the body text strictly between the
// current position and that FOR_END's line, and leaves ctx positioned
// immediately after the FOR_END line. ok is false if no matching FOR_END
// is found before EOF.
func (e *Engine) captureForEachBody(ctx *Context) (string, bool) {
	scanner := &Context{
		buf:          ctx.buf,
		pos:          ctx.pos,
		line:         ctx.line,
		lineStartPos: ctx.lineStartPos,
		eolReached:   ctx.eolReached,
	}
	// ctx is still positioned on the FOR_EACH line itself (just past its
	// last read token); advance past its trailing newline before capturing
	// so the body starts at the first line after FOR_EACH.
	scanner.gotoEOL()
	bodyStart := scanner.pos
	depth := 0

	for {
		scanner.eolReached = false
		lineStart := scanner.pos
		w, ok := scanner.readWord()
		if !ok {
			if scanner.eofReached {
				return "", false
			}
			// a blank line inside the body: go on with the next line.
			continue
		}
		if kind, known := e.tokens[w]; known {
			switch kind {
			case ForBegin:
				depth++
			case ForEnd:
				if depth == 0 {
					bodyEnd := lineStart
					scanner.gotoEOL()
					ctx.pos = scanner.pos
					ctx.line = scanner.line
					ctx.lineStartPos = scanner.lineStartPos
					ctx.eolReached = scanner.eolReached
					ctx.eofReached = scanner.eofReached
					return ctx.buf[bodyStart:bodyEnd], true
				}
				depth--
			}
		}
		scanner.gotoEOL()
	}
}
