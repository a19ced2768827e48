package cfglang

// ResourceSnapshot is one (namespace, property) -> values triple, as
// currently bound in the engine.
type ResourceSnapshot struct {
	Namespace string
	Property  string
	Values    []string
}

// VariableSnapshot is one LET/LET_ENUM binding.
type VariableSnapshot struct {
	Name   string
	Values []string
}

// Snapshot walks both dictionaries and renders every currently-bound
// resource and variable, for host-facing inspection (SPEC_FULL.md S4.5
// "dump"). It never mutates the instance and is safe to call at any
// time, including while blocked.
func (e *Engine) Snapshot() ([]ResourceSnapshot, []VariableSnapshot) {
	names := make(map[uint64]string)
	for k, v := range e.keysSequences.m {
		if k.ns == nsSequenceRoot {
			names[v] = k.name
		}
	}

	var resources []ResourceSnapshot
	for k, group := range e.keysSequences.m {
		if k.ns == nsSequenceRoot {
			continue
		}
		ns, ok := names[uint64(k.ns)]
		if !ok {
			continue
		}
		n := e.sequences.GroupLen(int(group))
		values := make([]string, n)
		for i := 0; i < n; i++ {
			values[i], _ = e.sequences.Word(int(group), i)
		}
		resources = append(resources, ResourceSnapshot{Namespace: ns, Property: k.name, Values: values})
	}

	var vars []VariableSnapshot
	for k, group := range e.keysVars.m {
		if k.ns != nsVariable {
			continue
		}
		n := e.vars.GroupLen(int(group))
		values := make([]string, n)
		for i := 0; i < n; i++ {
			values[i], _ = e.vars.Word(int(group), i)
		}
		vars = append(vars, VariableSnapshot{Name: k.name, Values: values})
	}

	return resources, vars
}
