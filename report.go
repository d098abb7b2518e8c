package allot

// Move is an amount routed to a portfolio during a pass.
type Move struct {
	Portfolio string `json:"portfolio"`
	Amount    Amount `json:"amount"`
}

// Pass records what a single visit of a plan routed.
type Pass struct {
	Plan    int    `json:"plan"` // Plan is the index of the plan in processing order.
	Kind    Kind   `json:"kind"`
	Moves   []Move `json:"moves"`
	Retired bool   `json:"retired"` // Retired is true when the plan was not visited again.
}

// Total returns the amount routed by the pass.
func (p Pass) Total() Amount {
	var total Amount
	for _, m := range p.Moves {
		total = total.Add(m.Amount)
	}
	return total
}

// Report is the outcome of an allocation.
type Report struct {
	Plans       []Plan    // Plans in processing order.
	Balances    *Balances // Balances per portfolio.
	Deposited   Amount    // Deposited is the sum of all deposits.
	Unallocated Amount    // Unallocated is what no plan could absorb.
	Passes      []Pass
}

// Allocated returns the amount routed to portfolios.
func (r *Report) Allocated() Amount { return r.Deposited.Sub(r.Unallocated) }

// MarshalJSON implements the json.Marshaler interface for Report.
func (r *Report) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("balances", r.Balances)
	w.Append("deposited", r.Deposited)
	w.Append("unallocated", r.Unallocated)
	w.Append("plans", r.Plans)
	w.Append("passes", r.Passes)
	return w.MarshalJSON()
}
