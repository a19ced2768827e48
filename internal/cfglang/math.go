package cfglang

import "math"

// unaryOps implements the arity-1 math operations from spec.md S4.2.
var unaryOps = map[TokenKind]func(float64) float64{
	OpSqrt:    math.Sqrt,
	OpCbrt:    math.Cbrt,
	OpAbs:     math.Abs,
	OpCeiling: math.Ceil,
	OpFloor:   math.Floor,
	OpRound:   math.Round,
	OpCos:     math.Cos,
	OpSin:     math.Sin,
	OpTan:     math.Tan,
	OpAcos:    math.Acos,
	OpAsin:    math.Asin,
	OpAtan:    math.Atan,
	OpCosh:    math.Cosh,
	OpSinh:    math.Sinh,
	OpLn:      math.Log,
	OpLog:     math.Log10,
}

// binaryOps implements the arity-2 math operations. RANDOM additionally
// consumes the context's RNG state, so it is handled separately in
// evalRandom rather than through this pure table.
var binaryOps = map[TokenKind]func(a, b float64) float64{
	OpAdd:       func(a, b float64) float64 { return a + b },
	OpSubstract: func(a, b float64) float64 { return a - b },
	OpMultiply:  func(a, b float64) float64 { return a * b },
	OpDivide:    func(a, b float64) float64 { return a / b },
	OpMod:       math.Remainder,
	OpPow:       math.Pow,
	OpBiggest:   math.Max,
	OpSmallest:  math.Min,
}

// ternaryOps implements the arity-3 math operations.
var ternaryOps = map[TokenKind]func(a, b, c float64) float64{
	OpInterpolate: func(a, b, t float64) float64 { return a + (b-a)*t },
	OpLimit: func(x, lo, hi float64) float64 {
		if x < lo {
			return lo
		}
		if x > hi {
			return hi
		}
		return x
	},
}

// constOps implements the arity-0 constants. ConstEuler deliberately
// encodes the Euler-Mascheroni constant (gamma), not e; see DESIGN.md
// "Open Question decisions" item 2 for why this is preserved.
var constOps = map[TokenKind]float64{
	ConstPi:    math.Pi,
	ConstEuler: 0.5772156649015328,
	ConstTrue:  1,
	ConstFalse: 0,
}

func isUnary(k TokenKind) bool   { _, ok := unaryOps[k]; return ok }
func isBinary(k TokenKind) bool  { _, ok := binaryOps[k]; return ok || k == OpRandom }
func isTernary(k TokenKind) bool { _, ok := ternaryOps[k]; return ok }
func isConst(k TokenKind) bool   { _, ok := constOps[k]; return ok || k == ConstTimestamp }

func isColorOp(k TokenKind) bool {
	switch k {
	case ClRGB, ClRGBA, ClInterpolate:
		return true
	}
	return false
}

func isComparison(k TokenKind) bool {
	switch k {
	case IfLt, IfLe, IfGt, IfGe, IfEq, IfNe:
		return true
	}
	return false
}

func compare(k TokenKind, a, b float64) bool {
	switch k {
	case IfLt:
		return a < b
	case IfLe:
		return a <= b
	case IfGt:
		return a > b
	case IfGe:
		return a >= b
	case IfEq:
		return a == b
	case IfNe:
		return a != b
	}
	return false
}
