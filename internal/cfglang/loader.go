package cfglang

import (
	"io/fs"
	"os"
	"path/filepath"
)

// statSource probes source availability without reading its contents
// (spec.md S4.5 "can_open_sources"). When Engine.FS is set it is
// consulted instead of the OS filesystem (SPEC_FULL.md S4.4 "Filesystem
// abstraction").
func (e *Engine) statSource(path string) (fs.FileInfo, error) {
	if e.FS != nil {
		return fs.Stat(e.FS, path)
	}
	return os.Stat(path)
}

func (e *Engine) readSource(path string) ([]byte, fs.FileInfo, error) {
	info, err := e.statSource(path)
	if err != nil {
		return nil, nil, err
	}
	var data []byte
	if e.FS != nil {
		data, err = fs.ReadFile(e.FS, path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, nil, err
	}
	return data, info, nil
}

// identityOf builds a fileIdentity for cycle detection. os.SameFile
// compares the two os.FileInfo values at the OS-inode level when both
// came from a real filesystem; the resolved path is carried alongside it
// so a generic fs.FS (which may not expose inode identity at all) still
// gets exact-path cycle detection (SPEC_FULL.md S4.4).
func identityOf(path string, info fs.FileInfo) fileIdentity {
	resolved := path
	if abs, err := filepath.Abs(path); err == nil {
		resolved = abs
	}
	id := fileIdentity{path: resolved}
	_ = info
	return id
}

func sameFile(a fileIdentity, aInfo fs.FileInfo, b fileIdentity, bInfo fs.FileInfo) bool {
	if a.path == b.path {
		return true
	}
	if aInfo != nil && bInfo != nil {
		return os.SameFile(aInfo, bInfo)
	}
	return false
}

func (e *Engine) cyclesWith(ancestors []fileIdentity, id fileIdentity, info fs.FileInfo) bool {
	for _, a := range ancestors {
		if sameFile(a, e.fileInfos[a.path], id, info) {
			return true
		}
	}
	return false
}

// Load tries each pushed source in registration order and parses the
// first that opens, replacing all resource and variable state
// (spec.md S4.5 "load", S8 invariant 9). A source list with nothing
// openable is not itself an error; it simply leaves the instance with
// whatever state it already had.
func (e *Engine) Load() error {
	if e.blocked() {
		return nil
	}
	for _, src := range e.sources {
		data, info, err := e.readSource(src)
		if err != nil {
			continue
		}
		return e.loadBuffer(string(data), identityOf(src, info), info, filepath.Dir(src))
	}
	return nil
}

// LoadInternal parses buf directly, bypassing the source list. INCLUDE
// statements in buf do nothing, since an in-memory buffer has no file
// identity or directory of its own (spec.md S4.5 "load_internal").
func (e *Engine) LoadInternal(buf string) error {
	if e.blocked() {
		return nil
	}
	return e.loadBuffer(buf, fileIdentity{}, nil, "")
}

func (e *Engine) loadBuffer(buf string, id fileIdentity, info fs.FileInfo, dir string) error {
	e.sequences.Clear()
	e.keysSequences.clear()
	e.vars.Clear()
	e.keysVars.clear()
	e.iteration.Clear()

	var ctx *Context
	if id.path != "" {
		ctx = NewFileContext(buf, id, dir, nil)
		e.fileInfos = map[string]fs.FileInfo{id.path: info}
	} else {
		ctx = NewBufferContext(buf)
		e.fileInfos = nil
	}
	ctx.restricted = e.restricted

	for !ctx.eofReached {
		e.DispatchLine(ctx)
		if e.blocked() {
			break
		}
	}

	if e.blocked() {
		return &Error{State: e.failed, Pos: e.lastErrPos}
	}

	for _, cb := range e.callbacks {
		cb.fn(cb.opaque)
	}
	return nil
}

// includeStmt implements INCLUDE: every evaluated token on the line names
// a file whose lines are dispatched in place, as if spliced into the
// including file (spec.md S4.3 "include"). A cycle back to an ancestor
// is a sticky ErrInvalid; a missing file is silently skipped, matching
// declare_resource's non-error not-found convention elsewhere in the
// language. When the root source is an in-memory buffer (LoadInternal,
// which leaves fileInfos nil), INCLUDE does nothing.
func (e *Engine) includeStmt(ctx *Context) {
	if e.blocked() {
		return
	}
	if e.fileInfos == nil {
		return
	}
	for {
		v := e.nextToken(ctx)
		if v.kind == Invalid {
			break
		}
		e.includeOne(ctx, v.str)
		if e.blocked() {
			return
		}
	}
}

func (e *Engine) includeOne(parent *Context, path string) {
	resolved := path
	if !filepath.IsAbs(resolved) && parent.hasFile {
		resolved = filepath.Join(parent.fileDir, path)
	}

	data, info, err := e.readSource(resolved)
	if err != nil {
		return
	}
	id := identityOf(resolved, info)

	if e.cyclesWith(parent.ancestors, id, info) {
		e.setError(ErrInvalid, e.posOf(parent))
		return
	}

	child := NewFileContext(string(data), id, filepath.Dir(resolved), parent.ancestors)
	child.restricted = parent.restricted
	child.depth = parent.depth
	if e.fileInfos == nil {
		e.fileInfos = make(map[string]fs.FileInfo)
	}
	e.fileInfos[id.path] = info

	for !child.eofReached {
		e.DispatchLine(child)
		if e.blocked() {
			return
		}
	}
	// an INCLUDE that itself set skip_sequences and never reopened it
	// does not leak the gate back to the parent; each file's section
	// state is local to its own context.
}
