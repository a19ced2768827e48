package dynacfg

import (
	"fmt"

	"github.com/dynacfg/dynacfg/internal/cfglang"
)

// Parameter is a host-injected value, readable from the language via
// (% name) whenever no variable of that name is bound (spec.md S4.5
// "push_param").
type Parameter struct {
	Kind   cfglang.ParamKind
	Long   int64
	Double float64
	Str    string
}

func LongParam(v int64) Parameter    { return Parameter{Kind: cfglang.ParamLong, Long: v} }
func DoubleParam(v float64) Parameter { return Parameter{Kind: cfglang.ParamDouble, Double: v} }
func StringParam(v string) Parameter { return Parameter{Kind: cfglang.ParamString, Str: v} }

func (p Parameter) toInternal() cfglang.Parameter {
	return cfglang.Parameter{Kind: p.Kind, Long: p.Long, Double: p.Double, Str: p.Str}
}

// paramFromYAMLValue classifies a yaml.v3-decoded scalar the way the
// language's own numeral coercion does: integers and floats become
// numeric parameters, strings become string parameters, booleans become
// the long values 1 or 0, and any other value is rejected with an error
// (SPEC_FULL.md S4.5 "PushParamsFromYAML").
func paramFromYAMLValue(v any) (Parameter, error) {
	switch t := v.(type) {
	case int:
		return LongParam(int64(t)), nil
	case int64:
		return LongParam(t), nil
	case float64:
		return DoubleParam(t), nil
	case string:
		return StringParam(t), nil
	case bool:
		if t {
			return LongParam(1), nil
		}
		return LongParam(0), nil
	default:
		return Parameter{}, fmt.Errorf("dynacfg: unsupported parameter value %T", v)
	}
}
