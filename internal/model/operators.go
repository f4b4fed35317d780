package model

import "github.com/lhaig/zentype/internal/types"

// operatorCandidates returns the members of t implementing op, own members
// first, then expands
func (r *resolver) operatorCandidates(t types.Type, op types.Operator) []types.Symbol {
	var out []types.Symbol
	for _, m := range r.MembersOf(t) {
		if o, ok := m.(types.OperatorSymbol); ok && o.Operator() == op {
			out = append(out, m)
		}
	}
	return out
}

// unaryResult is the return type of the first candidate
func (r *resolver) unaryResult(t types.Type, op types.Operator) types.Type {
	candidates := r.operatorCandidates(t, op)
	if len(candidates) == 0 {
		return types.Any
	}
	return returnType(r.symbolType(candidates[0]))
}

// binaryResult picks the candidate whose parameter best fits right
func (r *resolver) binaryResult(t types.Type, op types.Operator, right types.Type) types.Type {
	return r.bestOperator(r.operatorCandidates(t, op), right)
}

// trinaryResult ranks both operands and keeps the worse rank per candidate
func (r *resolver) trinaryResult(t types.Type, op types.Operator, first, second types.Type) types.Type {
	return r.bestOperator(r.operatorCandidates(t, op), first, second)
}

// bestOperator returns the return type of the best ranked candidate. Ties go
// to the earliest candidate. Candidates are never discarded, so a mismatch
// still yields the first candidate's result.
func (r *resolver) bestOperator(candidates []types.Symbol, operands ...types.Type) types.Type {
	var best *types.FunctionType
	bestRank := types.Mismatch
	for _, c := range candidates {
		fn, ok := r.symbolType(c).(*types.FunctionType)
		if !ok {
			continue
		}
		rank := types.Self
		for i, operand := range operands {
			if i >= len(fn.Params) {
				rank = types.Mismatch
				break
			}
			rank = types.Higher(rank, types.SubtypeOf(operand, fn.Params[i], r))
		}
		if best == nil || rank.Better(bestRank) {
			best, bestRank = fn, rank
		}
	}
	if best == nil {
		return types.Any
	}
	return types.OrAny(best.Return)
}
