// Package allot splits a batch of deposits across allocation plans.
//
// A plan routes money to named portfolios, each bounded by a limit. Plans come
// in two kinds:
//   - One-time plans are visited once, then retired.
//   - Recurring plans are visited again and again while funds remain.
//
// Allocation sums the deposits, orders the plans (one-time first), and fills
// the portfolios of the front plan greedily, in the order the plan lists them.
// What no plan can absorb is reported as unallocated.
//
// Amounts are exact decimals, there is no rounding.
//
// This package serves as the foundational logic for the `allot` command-line
// tool.
package allot
