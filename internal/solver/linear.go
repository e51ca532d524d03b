package solver

import "github.com/google/or-tools/ortools/sat/go/cpmodel"

// sumLiterals builds a linear expression equal to the sum of the given
// boolean variables, skipping nils so callers can pass sparse slots
// directly instead of pre-filtering.
func sumLiterals(vars ...*cpmodel.BoolVar) *cpmodel.LinearExpr {
	expr := cpmodel.NewLinearExpr()
	for _, v := range vars {
		if v != nil {
			expr.Add(*v)
		}
	}
	return expr
}

func sumLiteralSlice(vars []*cpmodel.BoolVar) *cpmodel.LinearExpr {
	expr := cpmodel.NewLinearExpr()
	for _, v := range vars {
		if v != nil {
			expr.Add(*v)
		}
	}
	return expr
}

// oneMinus builds the linear expression "1 - v".
func oneMinus(v cpmodel.BoolVar) *cpmodel.LinearExpr {
	return cpmodel.NewLinearExpr().AddConstant(1).AddTerm(v, -1)
}
