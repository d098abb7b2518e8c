package allot

import (
	"iter"
	"slices"
)

// Balances maps portfolio names to the amount routed to them. Names keep the
// order in which they were seeded.
type Balances struct {
	names  []string
	values map[string]Amount
}

// NewBalances creates zero balances for the given names. Duplicates are ignored.
func NewBalances(names ...string) *Balances {
	b := &Balances{values: make(map[string]Amount, len(names))}
	for _, name := range names {
		b.seed(name)
	}
	return b
}

func (b *Balances) seed(name string) {
	if _, exists := b.values[name]; exists {
		return
	}
	b.names = append(b.names, name)
	b.values[name] = Amount{}
}

// SeedBalances creates a zero balance for every portfolio of the first plan.
// Portfolios that only appear in later plans are not represented.
func SeedBalances(ordered []Plan) *Balances {
	if len(ordered) == 0 {
		return NewBalances()
	}
	return NewBalances(ordered[0].Names()...)
}

// SeedAllBalances creates a zero balance for every portfolio of every plan, in
// first seen order.
func SeedAllBalances(ordered []Plan) *Balances {
	b := NewBalances()
	for _, p := range ordered {
		for _, t := range p.Portfolios {
			b.seed(t.Name)
		}
	}
	return b
}

// Has reports whether name is part of the balances.
func (b *Balances) Has(name string) bool {
	_, ok := b.values[name]
	return ok
}

// Get returns the balance of name, zero if unknown.
func (b *Balances) Get(name string) Amount { return b.values[name] }

// Names returns the portfolio names in order.
func (b *Balances) Names() []string { return slices.Clone(b.names) }

// Len returns the number of portfolios.
func (b *Balances) Len() int { return len(b.names) }

// All iterates over the balances in order.
func (b *Balances) All() iter.Seq2[string, Amount] {
	return func(yield func(string, Amount) bool) {
		for _, name := range b.names {
			if !yield(name, b.values[name]) {
				return
			}
		}
	}
}

// Total returns the sum of all balances.
func (b *Balances) Total() Amount {
	var total Amount
	for _, v := range b.values {
		total = total.Add(v)
	}
	return total
}

// Map returns a copy of the balances as a plain map.
func (b *Balances) Map() map[string]Amount {
	m := make(map[string]Amount, len(b.values))
	for k, v := range b.values {
		m[k] = v
	}
	return m
}

// Equal reports whether both balances hold the same names, in the same order,
// with equal amounts. Two nil balances are equal.
func (b *Balances) Equal(o *Balances) bool {
	if b == nil || o == nil {
		return b == o
	}
	if !slices.Equal(b.names, o.names) {
		return false
	}
	for _, name := range b.names {
		if !b.values[name].Equal(o.values[name]) {
			return false
		}
	}
	return true
}

// credit adds amount to the balance of a seeded portfolio.
func (b *Balances) credit(name string, amount Amount) {
	b.values[name] = b.values[name].Add(amount)
}

// MarshalJSON writes the balances as an object in portfolio order.
func (b *Balances) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for name, v := range b.All() {
		w.Append(name, v)
	}
	return w.MarshalJSON()
}
