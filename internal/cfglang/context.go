package cfglang

import "math/rand/v2"

// fileIdentity is the zero value, with Context.hasFile false, when parsing
// from an in-memory buffer (spec.md S3 "file inode of the root source, 0
// if parsing from in-memory buffer"). Otherwise it holds the resolved path
// of the currently-open file, which INCLUDE cycle detection compares, then
// falls back to os.SameFile on the recorded file infos (SPEC_FULL.md S4.4).
type fileIdentity struct {
	path string
}

// Context holds everything about a single parse that is not part of the
// durable configuration state: the input buffer, lexical position, the
// replay cursors the tokenizer drains before reading fresh input, and the
// recursion/iteration bookkeeping shared by nested substitutions, nested
// FOR_EACH bodies and nested INCLUDE files (spec.md S3 "Context").
type Context struct {
	buf string
	pos int

	file    fileIdentity
	hasFile bool
	fileDir string

	line, col       int
	lineStartPos    int
	eolReached      bool
	eofReached      bool

	depth int

	varReplay  groupReplay
	iterReplay groupReplay
	exprStack  []groupReplay

	skipSequences bool
	restricted    bool

	itGroup, itI   int
	varGroup, varI int

	rng *rand.Rand

	ancestors []fileIdentity

	errPos Pos
}

// NewBufferContext starts a Context over an in-memory buffer, with no file
// identity: relative INCLUDE paths in it resolve against the process
// working directory. It backs LoadInternal, where INCLUDE does nothing at
// all (see includeStmt), and each FOR_EACH body replay.
func NewBufferContext(buf string) *Context {
	return &Context{
		buf:  buf,
		line: 1,
		col:  1,
		rng:  rand.New(rand.NewPCG(1, 1)),
	}
}

// NewFileContext starts a Context over a file's contents, recording its
// identity and directory so INCLUDE can resolve relative children and
// detect cycles.
func NewFileContext(buf string, id fileIdentity, dir string, ancestors []fileIdentity) *Context {
	return &Context{
		buf:       buf,
		line:      1,
		col:       1,
		file:      id,
		hasFile:   true,
		fileDir:   dir,
		ancestors: append(append([]fileIdentity{}, ancestors...), id),
		rng:       rand.New(rand.NewPCG(1, 1)),
	}
}

func (c *Context) reseed(seed uint64) {
	c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// enterDepth bounds recursion across evaluator and dispatcher re-entry
// (spec.md S3 Invariants: "Recursion depth ... is <= MAX_DEPTH").
func (c *Context) enterDepth() bool {
	if c.depth >= MaxDepth {
		return false
	}
	c.depth++
	return true
}

func (c *Context) exitDepth() {
	if c.depth > 0 {
		c.depth--
	}
}
