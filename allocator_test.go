package allot

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

// amountComparer compares amounts by value, 1.0 equals 1.
var amountComparer = cmp.Comparer(func(a, b Amount) bool { return a.Equal(b) })

func balanceMap(pairs ...any) map[string]Amount { return balancesOf(pairs...).Map() }

func TestAllocate(t *testing.T) {
	historical := []Plan{
		oneTime(T("High risk", A(10000)), T("Retirement", A(500))),
		recurring(T("High risk", A(0)), T("Retirement", A(100))),
	}

	testCases := []struct {
		name     string
		plans    []Plan
		deposits []Amount
		want     map[string]Amount
	}{
		{
			name:     "one-time exact fill",
			plans:    []Plan{oneTime(T("HighRisk", A(10000)))},
			deposits: amounts(10000),
			want:     balanceMap("HighRisk", 10000),
		},
		{
			name:     "one-time excess is not allocated",
			plans:    []Plan{oneTime(T("HighRisk", A(5000)))},
			deposits: amounts(10000),
			want:     balanceMap("HighRisk", 5000),
		},
		{
			name:     "one-time partial fill",
			plans:    []Plan{oneTime(T("HighRisk", A(5000)))},
			deposits: amounts(1200),
			want:     balanceMap("HighRisk", 1200),
		},
		{
			name:     "recurring exact fill",
			plans:    []Plan{NewPlan(ParseKind("monthly"), T("Retirement", A(100)))},
			deposits: amounts(100),
			want:     balanceMap("Retirement", 100),
		},
		{
			name:     "one-time then recurring",
			plans:    historical,
			deposits: amounts(10500, 100),
			want:     balanceMap("High risk", 10000, "Retirement", 600),
		},
		{
			name: "portfolios out of order",
			plans: []Plan{
				oneTime(T("Retirement", A(500)), T("High risk", A(10000))),
				recurring(T("Retirement", A(100)), T("High risk", A(0))),
			},
			deposits: amounts(10500, 100),
			want:     balanceMap("High risk", 10000, "Retirement", 600),
		},
		{
			name:     "plans out of order",
			plans:    []Plan{historical[1], historical[0]},
			deposits: amounts(10500, 100),
			want:     balanceMap("High risk", 10000, "Retirement", 600),
		},
		{
			name:     "recurring only fills up to its limit",
			plans:    []Plan{historical[1]},
			deposits: amounts(10500, 100),
			want:     balanceMap("High risk", 0, "Retirement", 100),
		},
		{
			name:     "one-time fills retirement only to the limit",
			plans:    []Plan{oneTime(T("High risk", A(0)), T("Retirement", A(10000)))},
			deposits: amounts(10500, 100),
			want:     balanceMap("High risk", 0, "Retirement", 10000),
		},
		{
			name: "first portfolio absorbs everything",
			plans: []Plan{
				oneTime(T("High risk", A(100000)), T("Retirement", A(500))),
				historical[1],
			},
			deposits: amounts(10500, 100),
			want:     balanceMap("High risk", 10600, "Retirement", 0),
		},
		{
			name:     "portfolio of a later plan is seeded",
			plans:    []Plan{oneTime(T("A", A(100))), recurring(T("A", A(50)), T("B", A(50)))},
			deposits: amounts(300),
			want:     balanceMap("A", 150, "B", 50),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Allocate(tc.plans, tc.deposits)
			if err != nil {
				t.Fatalf("Allocate() returned unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got.Map(), amountComparer); diff != "" {
				t.Errorf("Allocate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAllocateErrors(t *testing.T) {
	testCases := []struct {
		name     string
		plans    []Plan
		deposits []Amount
		wantErr  error
	}{
		{"no plans", []Plan{}, amounts(10), ErrEmptyPlans},
		{"no deposits", []Plan{{Kind: OneTime}}, nil, ErrEmptyDeposits},
		{"three plans", []Plan{{Kind: OneTime}, {Kind: Recurring}, {Kind: Recurring}}, amounts(10), ErrTooManyPlans},
		{"yearly", []Plan{{Kind: ParseKind("yearly")}}, amounts(10), ErrInvalidPlanKind},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Allocate(tc.plans, tc.deposits)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Allocate() error = %v, want %v", err, tc.wantErr)
			}
			if got != nil {
				t.Errorf("Allocate() = %v, want no balances on error", got)
			}
		})
	}
}

func TestAllocateDepositOrderDoesNotMatter(t *testing.T) {
	plans := []Plan{
		oneTime(T("High risk", A(7000))),
		recurring(T("Retirement", A(2000)), T("Savings", A(500))),
	}
	one, err := Allocate(plans, amounts(10000))
	if err != nil {
		t.Fatal(err)
	}
	two, err := Allocate(plans, amounts(4000, 6000))
	if err != nil {
		t.Fatal(err)
	}
	if !one.Equal(two) {
		t.Errorf("Allocate([10000]) = %v, Allocate([4000 6000]) = %v, want equal", one.Map(), two.Map())
	}
}

func TestAllocateIsExact(t *testing.T) {
	got, err := Allocate([]Plan{oneTime(T("A", A(0.3)))}, amounts(0.1, 0.2))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Get("A").Equal(A(0.3)) {
		t.Errorf("Allocate() = %s, want exactly 0.3", got.Get("A"))
	}
}

func TestAllocatorReport(t *testing.T) {
	a := NewAllocator(DefaultRules(), zerolog.Nop())
	report, err := a.Allocate([]Plan{
		recurring(T("Retirement", A(100))),
		oneTime(T("High risk", A(1000))),
	}, amounts(1500))
	if err != nil {
		t.Fatalf("Allocate() returned unexpected error: %v", err)
	}

	if !report.Deposited.Equal(A(1500)) {
		t.Errorf("Deposited = %s, want 1500", report.Deposited)
	}
	if !report.Unallocated.Equal(A(400)) {
		t.Errorf("Unallocated = %s, want 400", report.Unallocated)
	}
	if !report.Allocated().Equal(A(1100)) {
		t.Errorf("Allocated() = %s, want 1100", report.Allocated())
	}
	if report.Plans[0].Kind != OneTime {
		t.Errorf("Plans[0].Kind = %s, want %s", report.Plans[0].Kind, OneTime)
	}

	want := []Pass{
		{Plan: 0, Kind: OneTime, Moves: []Move{{"High risk", A(1000)}}, Retired: true},
		{Plan: 1, Kind: Recurring, Moves: []Move{{"Retirement", A(100)}}},
		{Plan: 1, Kind: Recurring, Retired: true},
	}
	if diff := cmp.Diff(want, report.Passes, amountComparer); diff != "" {
		t.Errorf("Passes mismatch (-want +got):\n%s", diff)
	}
}

func TestAllocatorCapPolicy(t *testing.T) {
	plans := []Plan{recurring(T("High risk", A(0)), T("Retirement", A(100)))}

	testCases := []struct {
		name       string
		caps       CapPolicy
		want       map[string]Amount
		wantPasses int
	}{
		{"lifetime", CapLifetime, balanceMap("High risk", 0, "Retirement", 100), 2},
		{"per pass", CapPerPass, balanceMap("High risk", 0, "Retirement", 10600), 106},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAllocator(DefaultRules(), zerolog.Nop())
			a.Caps = tc.caps
			report, err := a.Allocate(plans, amounts(10500, 100))
			if err != nil {
				t.Fatalf("Allocate() returned unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, report.Balances.Map(), amountComparer); diff != "" {
				t.Errorf("Balances mismatch (-want +got):\n%s", diff)
			}
			if got := len(report.Passes); got != tc.wantPasses {
				t.Errorf("len(Passes) = %d, want %d", got, tc.wantPasses)
			}
		})
	}
}

func TestAllocatorStopsOnSaturatedRecurringPlan(t *testing.T) {
	a := NewAllocator(DefaultRules(), zerolog.Nop())
	a.Caps = CapPerPass
	report, err := a.Allocate([]Plan{recurring(T("X", A(0)))}, amounts(10))
	if err != nil {
		t.Fatalf("Allocate() returned unexpected error: %v", err)
	}
	if len(report.Passes) != 1 || !report.Passes[0].Retired {
		t.Errorf("Passes = %+v, want a single retired pass", report.Passes)
	}
	if !report.Unallocated.Equal(A(10)) {
		t.Errorf("Unallocated = %s, want 10", report.Unallocated)
	}
}

func TestAllocatorSeedPolicy(t *testing.T) {
	plans := []Plan{oneTime(T("A", A(100))), recurring(T("A", A(50)), T("B", A(50)))}

	testCases := []struct {
		name            string
		seed            SeedPolicy
		want            map[string]Amount
		wantUnallocated Amount
	}{
		{"union", SeedUnion, balanceMap("A", 150, "B", 50), A(100)},
		{"first plan", SeedFirstPlan, balanceMap("A", 150), A(150)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAllocator(DefaultRules(), zerolog.Nop())
			a.Seed = tc.seed
			report, err := a.Allocate(plans, amounts(300))
			if err != nil {
				t.Fatalf("Allocate() returned unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, report.Balances.Map(), amountComparer); diff != "" {
				t.Errorf("Balances mismatch (-want +got):\n%s", diff)
			}
			if !report.Unallocated.Equal(tc.wantUnallocated) {
				t.Errorf("Unallocated = %s, want %s", report.Unallocated, tc.wantUnallocated)
			}
		})
	}
}

func TestAllocatorMoreRecurringPlans(t *testing.T) {
	a := NewAllocator(Rules{MaxPlans: 3, Kinds: Kinds()}, zerolog.Nop())
	report, err := a.Allocate([]Plan{
		recurring(T("A", A(5))),
		recurring(T("B", A(20))),
		oneTime(T("A", A(10))),
	}, amounts(100))
	if err != nil {
		t.Fatalf("Allocate() returned unexpected error: %v", err)
	}
	if diff := cmp.Diff(balanceMap("A", 15, "B", 20), report.Balances.Map(), amountComparer); diff != "" {
		t.Errorf("Balances mismatch (-want +got):\n%s", diff)
	}
	if !report.Unallocated.Equal(A(65)) {
		t.Errorf("Unallocated = %s, want 65", report.Unallocated)
	}
}

// TestAllocateProperties checks the allocation invariants on random inputs.
func TestAllocateProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	names := []string{"High risk", "Retirement", "Savings", "Travel"}

	randomPlan := func(kind Kind) Plan {
		p := Plan{Kind: kind}
		for _, name := range names {
			if rng.IntN(3) == 0 {
				continue
			}
			p.Portfolios = append(p.Portfolios, T(name, A(rng.IntN(1000))))
		}
		return p
	}

	for i := 0; i < 200; i++ {
		plans := []Plan{randomPlan(OneTime), randomPlan(Recurring)}
		if rng.IntN(2) == 0 {
			plans = plans[1:]
		}
		var deposits []Amount
		for n := 1 + rng.IntN(4); n > 0; n-- {
			deposits = append(deposits, A(rng.IntN(800)))
		}

		got, err := Allocate(plans, deposits)
		if err != nil {
			t.Fatalf("Allocate(%v, %v) returned unexpected error: %v", plans, deposits, err)
		}

		var capacity Amount
		for _, p := range plans {
			capacity = capacity.Add(p.Capacity())
		}
		total := Sum(deposits...)

		for name, v := range got.All() {
			var limit Amount
			for _, p := range plans {
				if l, ok := p.Limit(name); ok {
					limit = limit.Add(l)
				}
			}
			if v.IsNegative() || v.GreaterThan(limit) {
				t.Errorf("case %d: balance of %q = %s, want within [0, %s]", i, name, v, limit)
			}
		}
		if got.Total().GreaterThan(total) {
			t.Errorf("case %d: total balance %s exceeds deposits %s", i, got.Total(), total)
		}
		if want := capacity.Min(total); !got.Total().Equal(want) {
			t.Errorf("case %d: total balance = %s, want %s", i, got.Total(), want)
		}
	}
}

func TestOneTimeBeforeRecurring(t *testing.T) {
	plans := []Plan{
		recurring(T("Retirement", A(300))),
		oneTime(T("Retirement", A(200)), T("High risk", A(400))),
	}
	got, err := Allocate(plans, amounts(500))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(balanceMap("Retirement", 200, "High risk", 300), got.Map(), amountComparer); diff != "" {
		t.Errorf("Allocate() mismatch (-want +got):\n%s", diff)
	}
}
