package dynacfg

import "github.com/dynacfg/dynacfg/internal/cfglang"

// Snapshot is a point-in-time, host-facing dump of everything currently
// bound in a Config (SPEC_FULL.md S4.5 "dump"/"inspect").
type Snapshot struct {
	ReloadID  string
	Resources []cfglang.ResourceSnapshot
	Variables []cfglang.VariableSnapshot
}
