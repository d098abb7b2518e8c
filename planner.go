package allot

import "slices"

// Order returns the plans in processing order: one-time plans before recurring
// ones. The sort is stable and the input slice is left untouched.
func Order(plans []Plan) []Plan {
	ordered := slices.Clone(plans)
	slices.SortStableFunc(ordered, func(a, b Plan) int {
		return a.Kind.rank() - b.Kind.rank()
	})
	return ordered
}
