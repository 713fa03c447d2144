package catalog

// Operator symbol names registered in the catalog like any other
// built-in (spec.md §4.2: "each operator symbol ... is registered as a
// name"). The analyzer maps a source operator token to one of these
// before querying ReturnType.
const (
	OpPlus     = "Plus__"      // infix a + b
	OpMinus    = "Minus__"     // infix a - b
	OpTimes    = "Times__"     // infix a * b
	OpDivide   = "Divide__"    // infix a / b
	OpModulo   = "Modulo__"    // infix a % b
	OpLDivide  = "LDivide__"   // infix a \ b
	OpEltTimes = "EltTimes__"  // infix a .* b
	OpEltDiv   = "EltDivide__" // infix a ./ b
	OpPow      = "Pow__"       // infix a ^ b

	OpEquals    = "Equals__"    // infix a == b
	OpNEquals   = "NEquals__"   // infix a != b
	OpLess      = "Less__"      // infix a < b
	OpLEquals   = "LEquals__"   // infix a <= b
	OpGreater   = "Greater__"   // infix a > b
	OpGEquals   = "GEquals__"   // infix a >= b

	OpPMinus = "PMinus__" // prefix -a
	OpPPlus  = "PPlus__"  // prefix +a
	OpNot    = "Not__"    // prefix !a

	OpTranspose = "Transpose__" // postfix a'
)
