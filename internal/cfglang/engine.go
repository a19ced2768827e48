package cfglang

import (
	"io/fs"

	"github.com/sirupsen/logrus"
)

// Namespace ids used within keys_vars (spec.md S3).
const (
	nsVariable uint32 = iota + 1
	nsSection
	nsIteration
	nsParameter
)

// nsSequenceRoot is the namespace-0 table mapping a namespace *name* to
// its generated id (spec.md S3 "keys_sequences").
const nsSequenceRoot uint32 = 0

// ReloadCallback is invoked, in registration order, after every
// successful Load/LoadInternal. opaque is returned to the host verbatim,
// matching spec.md S4.5's (fn_ptr, opaque_ref) pair.
type ReloadCallback func(opaque any)

type callbackEntry struct {
	fn     ReloadCallback
	opaque any
}

// Engine is the configuration instance described by spec.md S3: it owns
// the resource/variable books, the namespace dictionaries, the cached
// token table, the source list, host parameters and reload callbacks.
type Engine struct {
	sequences     Book
	keysSequences Dict

	vars     Book
	keysVars Dict

	iteration Book

	tokens map[string]TokenKind

	sources []string
	params  map[string]Parameter

	callbacks []callbackEntry

	failed     ErrorState
	restricted bool

	// FS is consulted for relative source/include paths; nil defaults to
	// the OS filesystem rooted at the process working directory
	// (SPEC_FULL.md S4.4 "Filesystem abstraction").
	FS fs.FS

	// fetch cursor (spec.md S4.5 fetch/iterate/resource)
	fetchGroup int
	fetchPos   int
	fetchSet   bool

	lastErrPos Pos

	// Logger receives one Info line per PRINT statement (SPEC_FULL.md S4.5
	// "structured logging"). ReloadID tags every such line with the
	// correlation id of the load currently in progress, if any.
	Logger   logrus.FieldLogger
	ReloadID string

	// fileInfos remembers the fs.FileInfo seen for each resolved path
	// during the current Load/LoadInternal, so INCLUDE cycle detection can
	// fall back to os.SameFile when two different path strings might
	// still name the same underlying file (SPEC_FULL.md S4.4).
	fileInfos map[string]fs.FileInfo

	// iterDepth counts nested FOR_EACH activations so the shared
	// iteration book is only cleared once the outermost loop returns.
	iterDepth int
}

// New creates a configuration instance ready to accept sources,
// parameters and callbacks (spec.md S3 "Lifecycle").
func New() *Engine {
	return &Engine{
		keysSequences: newDict(),
		keysVars:      newDict(),
		tokens:        NewTokenTable(),
		params:        make(map[string]Parameter),
		Logger:        logrus.StandardLogger(),
	}
}

// Placeholder returns the distinguished no-op instance: every operation
// called on it returns default values with no side effects
// (spec.md S3 "The placeholder configuration instance").
func Placeholder() *Engine {
	e := New()
	e.failed = ErrInvalid
	return e
}

func (e *Engine) isPlaceholder() bool {
	return e.failed == ErrInvalid
}

// short-circuits mutating operations while any sticky error is set,
// including the placeholder's permanent ErrInvalid (spec.md S7).
func (e *Engine) blocked() bool {
	return e.failed != ErrNone
}

// Clone performs a deep copy of the instance, per spec.md S4.5 "clone".
func (e *Engine) Clone() *Engine {
	c := &Engine{
		sequences:     Book{words: append([]string(nil), e.sequences.words...), groups: append([]bookGroup(nil), e.sequences.groups...)},
		vars:          Book{words: append([]string(nil), e.vars.words...), groups: append([]bookGroup(nil), e.vars.groups...)},
		iteration:     Book{},
		keysSequences: Dict{m: copyMap(e.keysSequences.m)},
		keysVars:      Dict{m: copyMap(e.keysVars.m)},
		tokens:        e.tokens, // immutable, shared
		sources:       append([]string(nil), e.sources...),
		params:        copyParams(e.params),
		callbacks:     append([]callbackEntry(nil), e.callbacks...),
		failed:        e.failed,
		restricted:    e.restricted,
		FS:            e.FS,
		Logger:        e.Logger,
	}
	return c
}

func copyMap(m map[dictKey]uint64) map[dictKey]uint64 {
	out := make(map[dictKey]uint64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyParams(m map[string]Parameter) map[string]Parameter {
	out := make(map[string]Parameter, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// PushSource appends a candidate source path; Load tries each in
// registration order and parses the first that opens (spec.md S4.5,
// S8 invariant 9).
func (e *Engine) PushSource(path string) {
	if e.blocked() {
		return
	}
	e.sources = append(e.sources, path)
}

// PushParam registers a host-injected value, readable via (% name) when
// no variable shadows it.
func (e *Engine) PushParam(name string, p Parameter) {
	if e.blocked() {
		return
	}
	e.params[name] = p
}

// PushCallback registers a reload notification, invoked in registration
// order after each successful load.
func (e *Engine) PushCallback(fn ReloadCallback, opaque any) {
	if e.blocked() {
		return
	}
	e.callbacks = append(e.callbacks, callbackEntry{fn, opaque})
}

func (e *Engine) ClearParams() {
	if e.blocked() {
		return
	}
	e.params = make(map[string]Parameter)
}

func (e *Engine) ClearResources() {
	if e.blocked() {
		return
	}
	e.sequences.Clear()
	e.keysSequences.clear()
}

func (e *Engine) ClearSources() {
	if e.blocked() {
		return
	}
	e.sources = nil
}

// Error returns the sticky error state and the position it was recorded
// at, if any (SPEC_FULL.md S7).
func (e *Engine) Error() (ErrorState, Pos) {
	return e.failed, e.lastErrPos
}

// Repair clears all sticky errors except ErrInvalid, which marks a
// permanently-unusable placeholder instance (spec.md S7 "repair").
func (e *Engine) Repair() {
	if e.failed == ErrInvalid {
		return
	}
	e.failed = ErrNone
}

func (e *Engine) Restrict() {
	if e.blocked() {
		return
	}
	e.restricted = true
}

func (e *Engine) Unrestrict() {
	if e.blocked() {
		return
	}
	e.restricted = false
}

func (e *Engine) setError(state ErrorState, pos Pos) {
	if e.failed == ErrNone {
		e.failed = state
		e.lastErrPos = pos
	}
}

// Fetch positions the read cursor at the resolved (namespace, property)
// group, or clears it if no such resource exists (spec.md S4.5 "fetch").
func (e *Engine) Fetch(namespace, property string) {
	e.fetchSet = false
	nsID, ok := e.keysSequences.Find(namespace, nsSequenceRoot)
	if !ok {
		return
	}
	group, ok := e.keysSequences.Find(property, uint32(nsID))
	if !ok {
		return
	}
	e.fetchGroup = int(group)
	e.fetchPos = -1
	e.fetchSet = true
}

// Iterate advances the read cursor and reports whether a next value
// exists (spec.md S4.5 "iterate").
func (e *Engine) Iterate() bool {
	if !e.fetchSet {
		return false
	}
	e.fetchPos++
	return e.fetchPos < e.sequences.GroupLen(e.fetchGroup)
}

// Resource returns the current value as a string, or "" if not
// positioned (spec.md S4.5 "resource").
func (e *Engine) Resource() string {
	if !e.fetchSet || e.fetchPos < 0 {
		return ""
	}
	w, _ := e.sequences.Word(e.fetchGroup, e.fetchPos)
	return w
}

// ResourceLength returns the number of values in the currently fetched
// resource, 0 if none (spec.md S4.5 "resource_length").
func (e *Engine) ResourceLength() int {
	if !e.fetchSet {
		return 0
	}
	return e.sequences.GroupLen(e.fetchGroup)
}

// CanOpenSources probes availability without loading, returning the
// index of the first openable source (spec.md S4.5 "can_open_sources").
func (e *Engine) CanOpenSources() (int, bool) {
	for i, src := range e.sources {
		if _, err := e.statSource(src); err == nil {
			return i, true
		}
	}
	return 0, false
}
