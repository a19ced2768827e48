package dynacfg

import (
	"io"
	"io/fs"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/dynacfg/dynacfg/internal/cfglang"
)

// Config is the host-facing configuration instance described by
// spec.md S4.5: it owns an interpreter engine plus the reload bookkeeping
// (structured logging, correlation ids) a production host expects on top
// of it (SPEC_FULL.md S4.5).
type Config struct {
	eng *cfglang.Engine

	logger       logrus.FieldLogger
	lastReloadID string
}

// New creates an empty configuration instance, ready to accept sources,
// parameters and callbacks.
func New() *Config {
	c := &Config{eng: cfglang.New(), logger: logrus.StandardLogger()}
	c.eng.Logger = c.logger
	return c
}

// Placeholder returns the distinguished no-op instance every operation on
// which is a guaranteed-safe default (spec.md S3 "placeholder").
func Placeholder() *Config {
	return &Config{eng: cfglang.Placeholder(), logger: logrus.StandardLogger()}
}

// SetLogger replaces the structured logging sink PRINT statements write
// to (SPEC_FULL.md S2 "Structured logging").
func (c *Config) SetLogger(l logrus.FieldLogger) {
	c.logger = l
	c.eng.Logger = l
}

func (c *Config) Logger() logrus.FieldLogger { return c.logger }

// SetFS overrides the filesystem consulted for source and INCLUDE path
// resolution; nil restores the OS filesystem (SPEC_FULL.md S4.4).
func (c *Config) SetFS(fsys fs.FS) { c.eng.FS = fsys }

// LastReloadID returns the correlation id of the most recent successful
// Load/LoadInternal, or "" if none has run yet (SPEC_FULL.md S4.5).
func (c *Config) LastReloadID() string { return c.lastReloadID }

func (c *Config) PushSource(path string) { c.eng.PushSource(path) }

func (c *Config) PushParam(name string, p Parameter) { c.eng.PushParam(name, p.toInternal()) }

func (c *Config) PushCallback(fn func(opaque any), opaque any) {
	c.eng.PushCallback(cfglang.ReloadCallback(fn), opaque)
}

func (c *Config) ClearParams()    { c.eng.ClearParams() }
func (c *Config) ClearResources() { c.eng.ClearResources() }
func (c *Config) ClearSources()   { c.eng.ClearSources() }

func (c *Config) Restrict()   { c.eng.Restrict() }
func (c *Config) Unrestrict() { c.eng.Unrestrict() }
func (c *Config) Repair()     { c.eng.Repair() }

func (c *Config) Error() (ErrorState, Pos) { return c.eng.Error() }

func (c *Config) Fetch(namespace, property string) { c.eng.Fetch(namespace, property) }
func (c *Config) Iterate() bool                     { return c.eng.Iterate() }
func (c *Config) Resource() string                  { return c.eng.Resource() }
func (c *Config) ResourceLength() int               { return c.eng.ResourceLength() }

func (c *Config) CanOpenSources() (int, bool) { return c.eng.CanOpenSources() }

// Clone returns an independent deep copy sharing no mutable state with c
// (spec.md S4.5 "clone").
func (c *Config) Clone() *Config {
	return &Config{eng: c.eng.Clone(), logger: c.logger, lastReloadID: c.lastReloadID}
}

// Load tries each pushed source in order and parses the first that opens,
// tagging the attempt with a fresh reload correlation id before it runs
// so every PRINT line from this load can be tied back to it. Reload
// callbacks receive only their opaque value, and LastReloadID reports the
// new id only once Load has returned (SPEC_FULL.md S4.5 "load").
func (c *Config) Load() error {
	id, err := uuid.NewV4()
	if err == nil {
		c.eng.ReloadID = id.String()
	}
	if loadErr := c.eng.Load(); loadErr != nil {
		return wrapErr(loadErr)
	}
	c.lastReloadID = c.eng.ReloadID
	return nil
}

// LoadInternal parses buf directly, bypassing the source list
// (spec.md S4.5 "load_internal").
func (c *Config) LoadInternal(buf string) error {
	id, err := uuid.NewV4()
	if err == nil {
		c.eng.ReloadID = id.String()
	}
	if loadErr := c.eng.LoadInternal(buf); loadErr != nil {
		return wrapErr(loadErr)
	}
	c.lastReloadID = c.eng.ReloadID
	return nil
}

// PushParamsFromYAML decodes a flat YAML mapping of name -> scalar and
// pushes one Parameter per entry, classifying each value the way the
// language's own numeral coercion would (SPEC_FULL.md S4.5).
func (c *Config) PushParamsFromYAML(r io.Reader) error {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	for name, v := range raw {
		p, err := paramFromYAMLValue(v)
		if err != nil {
			return err
		}
		c.PushParam(name, p)
	}
	return nil
}

// Dump renders every currently-bound resource and variable, for
// diagnostics and the CLI's `dump`/`params` subcommands
// (SPEC_FULL.md S4.5 "dump").
func (c *Config) Dump() Snapshot {
	resources, vars := c.eng.Snapshot()
	return Snapshot{ReloadID: c.lastReloadID, Resources: resources, Variables: vars}
}
