package cfglang

import (
	"strconv"

	"github.com/sirupsen/logrus"
)

// declareResource implements the "anything else" row of the dispatch
// table (spec.md S4.3): the first word of a line names a namespace, the
// second names a property within it, and every further evaluated token
// becomes one value of that property. A property that ends up with zero
// values is discarded rather than bound (spec.md S4.3 "declare_resource").
//
// The namespace id is generated, when the namespace is seen for the first
// time, from the *post-insertion* group count: the property's own group
// is opened before the namespace id is computed, so the id is always >=1
// and can never collide with the reserved namespace-0 root table
// (spec.md S3 invariant "namespace id > 0").
func (e *Engine) declareResource(ctx *Context, namespace string) {
	if e.blocked() {
		return
	}
	propRes := e.nextToken(ctx)
	if propRes.kind == Invalid {
		return
	}

	group := e.sequences.NewGroup()
	count := 0
	for {
		v := e.nextToken(ctx)
		if v.kind == Invalid {
			break
		}
		e.sequences.Write(v.str)
		count++
	}
	if count == 0 {
		e.sequences.Undo()
		return
	}

	nsID, ok := e.keysSequences.Find(namespace, nsSequenceRoot)
	if !ok {
		nsID = uint64(e.sequences.GroupCount())
		e.keysSequences.Write(namespace, nsSequenceRoot, nsID)
	}
	e.keysSequences.Write(propRes.str, uint32(nsID), uint64(group))
}

// declareVariable implements LET: name, followed by zero or more values
// (spec.md S4.3 "declare_variable"). Unlike declare_resource, an empty
// LET is kept as a zero-length binding rather than discarded.
func (e *Engine) declareVariable(ctx *Context) {
	if e.blocked() {
		return
	}
	nameRes := e.nextToken(ctx)
	if nameRes.kind == Invalid {
		return
	}
	group := e.vars.NewGroup()
	for {
		v := e.nextToken(ctx)
		if v.kind == Invalid {
			break
		}
		e.vars.Write(v.str)
	}
	e.keysVars.Write(nameRes.str, nsVariable, uint64(group))
}

// combineVar implements VAR/PREPEND/MERGE: name, source-variable, and a
// per-kind third argument (spec.md S4.3 "combine_var"). The source
// variable must already exist; MERGE additionally requires the second
// operand to already exist. Either miss aborts without binding.
func (e *Engine) combineVar(ctx *Context, kind TokenKind) {
	if e.blocked() {
		return
	}
	nameRes := e.nextToken(ctx)
	srcRes := e.nextToken(ctx)
	extraRes := e.nextToken(ctx)
	if nameRes.kind == Invalid || srcRes.kind == Invalid || extraRes.kind == Invalid {
		return
	}

	srcGroup, ok := e.keysVars.Find(srcRes.str, nsVariable)
	if !ok {
		return
	}
	srcLen := e.vars.GroupLen(int(srcGroup))

	newGroup := e.vars.NewGroup()
	switch kind {
	case VarAppend:
		for i := 0; i < srcLen; i++ {
			w, _ := e.vars.Word(int(srcGroup), i)
			e.vars.Write(w + extraRes.str)
		}
	case VarPrepend:
		for i := 0; i < srcLen; i++ {
			w, _ := e.vars.Word(int(srcGroup), i)
			e.vars.Write(extraRes.str + w)
		}
	case VarMerge:
		extraGroup, ok := e.keysVars.Find(extraRes.str, nsVariable)
		if !ok {
			e.vars.Undo()
			return
		}
		for i := 0; i < srcLen; i++ {
			a, _ := e.vars.Word(int(srcGroup), i)
			b, _ := e.vars.Word(int(extraGroup), i)
			e.vars.Write(a + b)
		}
	}
	e.keysVars.Write(nameRes.str, nsVariable, uint64(newGroup))
}

// declareEnum implements LET_ENUM: name, min, max, steps, precision, with
// a missing-parameter cascade that fills trailing arguments from the
// right (spec.md S4.3 "declare_enum"). Reading stops as soon as a
// numeral can't be produced, so a trailing non-numeric word is simply
// not consumed as part of the parameter list.
func (e *Engine) declareEnum(ctx *Context) {
	if e.blocked() {
		return
	}
	nameRes := e.nextToken(ctx)
	if nameRes.kind == Invalid {
		return
	}

	var nums []float64
	for len(nums) < 4 {
		v, ok := e.getTokenNumeral(ctx)
		if !ok {
			break
		}
		nums = append(nums, v)
	}

	var min, max, steps, precision float64
	switch len(nums) {
	case 0:
		return
	case 1:
		min, max = 0, nums[0]
		steps, precision = max-min, 0
	case 2:
		min, max = nums[0], nums[1]
		steps, precision = max-min, 0
	case 3:
		min, max, steps = nums[0], nums[1], nums[2]
		precision = 0
	default:
		min, max, steps, precision = nums[0], nums[1], nums[2], nums[3]
	}

	if steps < 1 {
		return
	}
	if precision < 0 {
		precision = 0
	}
	if precision > 16 {
		precision = 16
	}

	count := int(steps) + 1
	group := e.vars.NewGroup()
	for i := 0; i < count; i++ {
		v := min + (max-min)*(float64(i)/steps)
		e.vars.Write(strconv.FormatFloat(v, 'f', int(precision), 64))
	}
	e.keysVars.Write(nameRes.str, nsVariable, uint64(group))
}

// sectionBegin implements bare SECTION and SECTION tag...: with no tags
// it always reopens the gate; with tags, the gate opens only if every
// named tag is currently active (spec.md S4.3 "section_begin"). This
// handler runs unconditionally, even while skip_sequences is already
// set, since it is the only statement that can clear that flag.
func (e *Engine) sectionBegin(ctx *Context) {
	if e.blocked() {
		return
	}
	var tags []string
	for {
		v := e.nextToken(ctx)
		if v.kind == Invalid {
			break
		}
		tags = append(tags, v.str)
	}
	if len(tags) == 0 {
		ctx.skipSequences = false
		return
	}
	for _, t := range tags {
		if !e.keysVars.Has(t, nsSection) {
			ctx.skipSequences = true
			return
		}
	}
	ctx.skipSequences = false
}

// sectionAddDel implements SECTION_ADD/SECTION_DEL: every evaluated
// token on the line names a tag to add to, or remove from, the active
// tag set (spec.md S4.3).
func (e *Engine) sectionAddDel(ctx *Context, kind TokenKind) {
	if e.blocked() {
		return
	}
	for {
		v := e.nextToken(ctx)
		if v.kind == Invalid {
			break
		}
		if kind == SectionAdd {
			e.keysVars.Write(v.str, nsSection, 1)
		} else {
			e.keysVars.Erase(v.str, nsSection)
		}
	}
}

// seedStmt implements SEED n: reseeds this context's RNG deterministically
// (spec.md S4.3 "seed").
func (e *Engine) seedStmt(ctx *Context) {
	if e.blocked() {
		return
	}
	v, ok := e.getTokenNumeral(ctx)
	if !ok {
		return
	}
	ctx.reseed(uint64(int64(v)))
}

// printStmt implements PRINT: every remaining token on the line is
// evaluated, joined with a single space, and sent to the structured
// logging sink rather than bound into any resource (SPEC_FULL.md S6
// "PRINT sink detail", S2 "Structured logging").
func (e *Engine) printStmt(ctx *Context) {
	if e.blocked() {
		return
	}
	var words []string
	for {
		v := e.nextToken(ctx)
		if v.kind == Invalid {
			break
		}
		words = append(words, v.str)
	}
	line := joinSpace(words)
	if e.Logger == nil {
		return
	}
	fields := logrus.Fields{"line": ctx.line}
	if e.ReloadID != "" {
		fields["reload_id"] = e.ReloadID
	}
	if ctx.hasFile {
		fields["file"] = ctx.file.path
	}
	e.Logger.WithFields(fields).Info(line)
}

// restrictStmt implements RESTRICT: a one-way latch for the remainder of
// this context's parse (spec.md S4.3 "restrict"). It is deliberately not
// undoable from within the language; Engine.Unrestrict is a host-only
// operation (spec.md S4.5).
func (e *Engine) restrictStmt(ctx *Context) {
	if e.blocked() {
		return
	}
	ctx.restricted = true
}

func joinSpace(words []string) string {
	out := ""
	for i, w := range words {
		if i > 0 {
			out += " "
		}
		out += w
	}
	return out
}
