package types

// BlockOrigin is the program section in which a name was introduced, or
// one of the two meta-origins used for expressions resolved through the
// catalog (MathLibrary) or inside a user function body (Functions).
//
// The order below is the total order from spec.md §3:
//
//	Functions < MathLibrary < Data < TData < Param < TParam < Model < GQuant
//
// It is used to compute the least-upper-bound origin of a compound
// expression from its operands, and to decide which block's semantic
// rules govern a given piece of syntax.
type BlockOrigin int

const (
	// Functions is the origin of names local to a user function body.
	Functions BlockOrigin = iota
	// MathLibrary is the origin of names resolved through the built-in
	// signature catalog.
	MathLibrary
	// Data is the `data` block.
	Data
	// TData is the `transformed data` block.
	TData
	// Param is the `parameters` block.
	Param
	// TParam is the `transformed parameters` block.
	TParam
	// Model is the `model` block.
	Model
	// GQuant is the `generated quantities` block.
	GQuant
)

var originNames = map[BlockOrigin]string{
	Functions:   "functions",
	MathLibrary: "math_library",
	Data:        "data",
	TData:       "transformed_data",
	Param:       "parameters",
	TParam:      "transformed_parameters",
	Model:       "model",
	GQuant:      "generated_quantities",
}

func (b BlockOrigin) String() string {
	if s, ok := originNames[b]; ok {
		return s
	}
	return "?"
}

// Lub returns the least upper bound of two block origins under the total
// order declared above.
func Lub(a, b BlockOrigin) BlockOrigin {
	if a > b {
		return a
	}
	return b
}

// LubAll folds Lub across a list of origins, defaulting to Functions for
// an empty list (the origin of an expression with no operands, such as a
// literal evaluated outside any block, is the innermost/weakest origin).
func LubAll(origins ...BlockOrigin) BlockOrigin {
	lub := Functions
	for _, o := range origins {
		lub = Lub(lub, o)
	}
	return lub
}

// AtMost reports whether a is no stronger than b in the block order.
func (a BlockOrigin) AtMost(b BlockOrigin) bool {
	return a <= b
}
