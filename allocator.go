package allot

import (
	"fmt"

	"github.com/rs/zerolog"
)

// CapPolicy decides how a portfolio limit bounds a recurring plan.
type CapPolicy int

const (
	// CapLifetime: a plan never routes more than the limit to a portfolio,
	// whatever the number of passes.
	CapLifetime CapPolicy = iota
	// CapPerPass: each pass may route up to the limit again. A recurring plan
	// keeps refilling its portfolios until funds are exhausted.
	CapPerPass
)

func (c CapPolicy) String() string {
	switch c {
	case CapLifetime:
		return "lifetime"
	case CapPerPass:
		return "per-pass"
	default:
		return fmt.Sprintf("CapPolicy(%d)", int(c))
	}
}

// ParseCapPolicy parses "lifetime" or "per-pass".
func ParseCapPolicy(s string) (CapPolicy, error) {
	switch s {
	case "lifetime":
		return CapLifetime, nil
	case "per-pass":
		return CapPerPass, nil
	default:
		return 0, fmt.Errorf("unknown cap policy %q (valid: lifetime, per-pass)", s)
	}
}

// SeedPolicy decides which portfolios appear in the balances.
type SeedPolicy int

const (
	// SeedUnion seeds every portfolio of every plan.
	SeedUnion SeedPolicy = iota
	// SeedFirstPlan seeds only the portfolios of the first plan in processing
	// order. Other portfolios are skipped by the allocator.
	SeedFirstPlan
)

func (s SeedPolicy) String() string {
	switch s {
	case SeedUnion:
		return "union"
	case SeedFirstPlan:
		return "first-plan"
	default:
		return fmt.Sprintf("SeedPolicy(%d)", int(s))
	}
}

// ParseSeedPolicy parses "union" or "first-plan".
func ParseSeedPolicy(s string) (SeedPolicy, error) {
	switch s {
	case "union":
		return SeedUnion, nil
	case "first-plan":
		return SeedFirstPlan, nil
	default:
		return 0, fmt.Errorf("unknown seed policy %q (valid: union, first-plan)", s)
	}
}

// Allocator distributes deposits over plans.
//
// An Allocator holds configuration only, it can be shared. Every call to
// Allocate works on fresh balances.
type Allocator struct {
	Rules Rules
	Caps  CapPolicy
	Seed  SeedPolicy
	log   zerolog.Logger
}

// NewAllocator creates an allocator with default policies.
func NewAllocator(rules Rules, log zerolog.Logger) *Allocator {
	return &Allocator{
		Rules: rules,
		log:   log.With().Str("component", "allocator").Logger(),
	}
}

// Allocate validates the input, orders the plans and distributes the sum of
// the deposits over them.
//
// The front plan is filled greedily, portfolio by portfolio, in plan order:
// each portfolio receives its remaining room or whatever funds are left. After
// its pass a one-time plan is retired. A recurring plan stays in front and is
// visited again, until funds are exhausted or a pass routes nothing.
func (a *Allocator) Allocate(plans []Plan, deposits []Amount) (*Report, error) {
	if err := a.Rules.Validate(plans, deposits); err != nil {
		return nil, err
	}

	ordered := Order(plans)
	var balances *Balances
	switch a.Seed {
	case SeedFirstPlan:
		balances = SeedBalances(ordered)
	default:
		balances = SeedAllBalances(ordered)
	}

	report := &Report{
		Plans:     ordered,
		Balances:  balances,
		Deposited: Sum(deposits...),
	}
	remaining := report.Deposited

	// routed[i][name] is what plan i already sent to name.
	routed := make([]map[string]Amount, len(ordered))
	for i := range routed {
		routed[i] = make(map[string]Amount)
	}

	c := newCursor(ordered)
	for remaining.IsPositive() && !c.done() {
		i, plan := c.current()
		var pass Pass
		pass, remaining = a.fill(i, plan, remaining, balances, routed[i])
		if pass.Retired {
			c.retire()
		}
		report.Passes = append(report.Passes, pass)

		a.log.Debug().
			Int("plan", i).
			Str("kind", plan.Kind.String()).
			Str("routed", pass.Total().String()).
			Str("remaining", remaining.String()).
			Bool("retired", pass.Retired).
			Msg("pass completed")
	}
	report.Unallocated = remaining

	a.log.Info().
		Int("plans", len(ordered)).
		Int("passes", len(report.Passes)).
		Str("deposited", report.Deposited.String()).
		Str("unallocated", report.Unallocated.String()).
		Msg("allocation completed")
	return report, nil
}

// fill runs a single pass of plan i and returns it with the funds left.
func (a *Allocator) fill(i int, plan Plan, remaining Amount, balances *Balances, routed map[string]Amount) (Pass, Amount) {
	pass := Pass{Plan: i, Kind: plan.Kind}
	for _, t := range plan.Portfolios {
		if !balances.Has(t.Name) {
			a.log.Debug().Str("portfolio", t.Name).Msg("portfolio is not seeded, skipped")
			continue
		}
		room := t.Limit
		if a.Caps == CapLifetime {
			room = room.Sub(routed[t.Name])
		}
		move := room.Min(remaining)
		if !move.IsPositive() {
			continue
		}
		balances.credit(t.Name, move)
		routed[t.Name] = routed[t.Name].Add(move)
		remaining = remaining.Sub(move)
		pass.Moves = append(pass.Moves, Move{Portfolio: t.Name, Amount: move})
	}
	// a recurring plan that routed nothing will never route anything again.
	pass.Retired = plan.Kind.SingleUse() || len(pass.Moves) == 0
	return pass, remaining
}

// cursor walks the ordered plans. The plan under the cursor stays current until
// it is retired.
type cursor struct {
	plans []Plan
	pos   int
}

func newCursor(plans []Plan) *cursor { return &cursor{plans: plans} }

func (c *cursor) done() bool { return c.pos >= len(c.plans) }

func (c *cursor) current() (int, Plan) { return c.pos, c.plans[c.pos] }

func (c *cursor) retire() { c.pos++ }

// Allocate distributes deposits over plans with the DefaultRules and default
// policies, and returns the final balances.
func Allocate(plans []Plan, deposits []Amount) (*Balances, error) {
	report, err := NewAllocator(DefaultRules(), zerolog.Nop()).Allocate(plans, deposits)
	if err != nil {
		return nil, err
	}
	return report.Balances, nil
}
