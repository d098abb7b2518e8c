package allot

import (
	"errors"
	"fmt"
	"slices"
)

// Validation errors. They are returned wrapped with details, use errors.Is to
// test them.
var (
	ErrEmptyDeposits      = errors.New("you must pass a non-empty list of deposits")
	ErrEmptyPlans         = errors.New("you must pass a non-empty list of plans")
	ErrTooManyPlans       = errors.New("exceeded amount of plans")
	ErrInvalidPlanKind    = errors.New("invalid plan kind")
	ErrNegativeAmount     = errors.New("negative amount")
	ErrDuplicatePortfolio = errors.New("duplicate portfolio")
)

// Rules holds the validation thresholds.
type Rules struct {
	MaxPlans int    // MaxPlans is the maximum number of plans in a batch, <= 0 means no limit.
	Kinds    []Kind // Kinds is the set of recognized plan kinds.
}

// DefaultRules accepts up to two plans, one of each kind.
func DefaultRules() Rules {
	return Rules{MaxPlans: 2, Kinds: Kinds()}
}

// Recognizes reports whether k is one of the rules' kinds.
func (r Rules) Recognizes(k Kind) bool { return slices.Contains(r.Kinds, k) }

// Validate checks plans and deposits before allocation.
//
// Checks run in a fixed order, so the first failure reported is deterministic:
// deposits, plans, plan count, plan kinds, then amounts and portfolio names.
func (r Rules) Validate(plans []Plan, deposits []Amount) error {
	if len(deposits) == 0 {
		return ErrEmptyDeposits
	}
	if len(plans) == 0 {
		return ErrEmptyPlans
	}
	if r.MaxPlans > 0 && len(plans) > r.MaxPlans {
		return fmt.Errorf("%w: got %d, max is %d", ErrTooManyPlans, len(plans), r.MaxPlans)
	}
	for i, p := range plans {
		if !r.Recognizes(p.Kind) {
			return fmt.Errorf("%w: plan #%d has kind %q", ErrInvalidPlanKind, i+1, p.Kind)
		}
	}
	for i, d := range deposits {
		if d.IsNegative() {
			return fmt.Errorf("%w: deposit #%d is %s", ErrNegativeAmount, i+1, d)
		}
	}
	for i, p := range plans {
		seen := make(map[string]bool, len(p.Portfolios))
		for _, t := range p.Portfolios {
			if t.Limit.IsNegative() {
				return fmt.Errorf("%w: plan #%d limit for %q is %s", ErrNegativeAmount, i+1, t.Name, t.Limit)
			}
			if seen[t.Name] {
				return fmt.Errorf("%w: plan #%d lists %q twice", ErrDuplicatePortfolio, i+1, t.Name)
			}
			seen[t.Name] = true
		}
	}
	return nil
}

// Validate checks plans and deposits with the DefaultRules.
func Validate(plans []Plan, deposits []Amount) error {
	return DefaultRules().Validate(plans, deposits)
}
