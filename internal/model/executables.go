package model

import "github.com/lhaig/zentype/internal/types"

// rankExecutable folds the per-argument ranks of a call against sym.
// Arity mismatches and non-callable symbols rank as Mismatch. Trailing
// parameters with defaults may be left out.
func (r *resolver) rankExecutable(sym types.Symbol, args []types.Type) types.SubtypeResult {
	fn, ok := r.symbolType(sym).(*types.FunctionType)
	if !ok {
		return types.Mismatch
	}
	required := len(fn.Params)
	if pd, ok := sym.(types.ParamDefaults); ok {
		required = pd.RequiredParams()
	}
	if len(args) < required || len(args) > len(fn.Params) {
		return types.Mismatch
	}
	rank := types.Self
	for i, arg := range args {
		rank = types.Higher(rank, types.SubtypeOf(arg, fn.Params[i], r))
		if rank == types.Mismatch {
			break
		}
	}
	return rank
}

// findBest returns the best matching candidate, the first declared on a
// tie, or nil when every candidate mismatches
func (r *resolver) findBest(candidates []types.Symbol, args []types.Type) types.Symbol {
	var best types.Symbol
	bestRank := types.Mismatch
	for _, c := range candidates {
		rank := r.rankExecutable(c, args)
		if rank.Better(bestRank) {
			best, bestRank = c, rank
		}
	}
	return best
}

// predictNext narrows the candidates to those with a parameter after the
// known arguments and compatible known positions. If all survivors agree
// on that parameter's type it is returned, otherwise Any.
func (r *resolver) predictNext(candidates []types.Symbol, known []types.Type) types.Type {
	var predicted types.Type
	for _, c := range candidates {
		fn, ok := r.symbolType(c).(*types.FunctionType)
		if !ok || len(fn.Params) <= len(known) {
			continue
		}
		compatible := true
		for i, arg := range known {
			if !types.SubtypeOf(arg, fn.Params[i], r).Matched() {
				compatible = false
				break
			}
		}
		if !compatible {
			continue
		}
		next := types.OrAny(fn.Params[len(known)])
		if predicted == nil {
			predicted = next
		} else if !predicted.Equal(next) {
			return types.Any
		}
	}
	return types.OrAny(predicted)
}

// lambdaForm returns the signature of the single function member of a
// class, which makes the class usable as a lambda target. Nil when the
// class has no function member or more than one.
func (r *resolver) lambdaForm(ct *types.ClassType) *types.FunctionType {
	var form *types.FunctionType
	for _, m := range ct.Members() {
		if m.Kind() != types.FunctionSymbol {
			continue
		}
		if form != nil {
			return nil
		}
		fn, ok := r.symbolType(m).(*types.FunctionType)
		if !ok {
			return nil
		}
		form = fn
	}
	return form
}
