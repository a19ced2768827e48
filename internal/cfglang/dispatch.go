package cfglang

// statementHandlers is the sequence dispatcher's dispatch table (spec.md
// S4.3), keyed by TokenKind like the math operation tables in math.go,
// operating on whole statements instead of expression tokens. Every
// handler here is gated by skip_sequences and restricted mode; SECTION_BEGIN
// and resource declaration are handled outside the table: SECTION_BEGIN is
// never gated, and resource declaration is gated by skip_sequences only,
// not by restricted mode (spec.md S4.3 table).
var statementHandlers = map[TokenKind]func(*Engine, *Context){
	VarAppend:      func(e *Engine, ctx *Context) { e.combineVar(ctx, VarAppend) },
	VarPrepend:     func(e *Engine, ctx *Context) { e.combineVar(ctx, VarPrepend) },
	VarMerge:       func(e *Engine, ctx *Context) { e.combineVar(ctx, VarMerge) },
	VarDeclaration: (*Engine).declareVariable,
	EnumDeclaration: (*Engine).declareEnum,
	SectionAdd:     func(e *Engine, ctx *Context) { e.sectionAddDel(ctx, SectionAdd) },
	SectionDel:     func(e *Engine, ctx *Context) { e.sectionAddDel(ctx, SectionDel) },
	Include:        (*Engine).includeStmt,
	ForBegin:       (*Engine).iterate,
	Seed:           (*Engine).seedStmt,
	Print:          (*Engine).printStmt,
	Restrict:       (*Engine).restrictStmt,
}

// DispatchLine is invoked once per logical line by the source loader, and
// recursively by iteration replay (spec.md S4.3). Depth is bounded and
// goto_eol is always called on exit so the rest of the line is consumed
// uniformly regardless of which branch ran.
func (e *Engine) DispatchLine(ctx *Context) {
	defer ctx.gotoEOL()

	ctx.eolReached = false

	if e.blocked() {
		return
	}
	if !ctx.enterDepth() {
		e.setError(ErrOverflow, e.posOf(ctx))
		return
	}
	defer ctx.exitDepth()

	first := e.nextToken(ctx)
	if first.kind == Invalid {
		return
	}

	kind, known := e.tokens[first.str]
	if !known {
		kind = String
	}

	switch kind {
	case SectionBegin:
		// always runs, even in skip-sequences mode, so a gate can reopen.
		e.sectionBegin(ctx)
		return
	case ForEnd:
		// a bare FOR_END outside of iteration preprocessing is a no-op;
		// matched FOR_END tokens are consumed by the iterate() handler.
		return
	}

	if handler, ok := statementHandlers[kind]; ok {
		if ctx.skipSequences || ctx.restricted {
			return
		}
		handler(e, ctx)
		return
	}

	// anything else (STRING/NUMBER) is the namespace of a resource
	// declaration (spec.md S4.3 table, "anything else").
	if ctx.skipSequences {
		return
	}
	e.declareResource(ctx, first.str)
}

func (e *Engine) posOf(ctx *Context) Pos {
	file := ""
	if ctx.hasFile {
		file = ctx.file.path
	}
	return Pos{File: file, Line: ctx.line, Col: ctx.pos - ctx.lineStartPos + 1}
}
