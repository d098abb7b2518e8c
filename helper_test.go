package allot

// oneTime is a helper for test to create a one-time plan.
func oneTime(targets ...Target) Plan { return NewPlan(OneTime, targets...) }

// recurring is a helper for test to create a recurring plan.
func recurring(targets ...Target) Plan { return NewPlan(Recurring, targets...) }

// amounts is a helper for test to create a list of amounts from const.
func amounts(values ...float64) []Amount {
	list := make([]Amount, 0, len(values))
	for _, v := range values {
		list = append(list, A(v))
	}
	return list
}

// balancesOf is a helper for test to create expected balances, name then value.
func balancesOf(pairs ...any) *Balances {
	b := NewBalances()
	for i := 0; i < len(pairs); i += 2 {
		name := pairs[i].(string)
		b.seed(name)
		b.credit(name, A(pairs[i+1].(int)))
	}
	return b
}
