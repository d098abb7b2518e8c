// Package renderer turns allocation results into markdown documents.
package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/allot"
	md "github.com/nao1215/markdown"
)

// balanceRows returns one table row per portfolio and a final total row.
func balanceRows(b *allot.Balances, currency string) [][]string {
	var rows [][]string
	for name, v := range b.All() {
		rows = append(rows, []string{name, v.Format(currency)})
	}
	rows = append(rows, []string{"**Total**", "**" + b.Total().Format(currency) + "**"})
	return rows
}

// BalancesMarkdown renders the balances as a table.
func BalancesMarkdown(b *allot.Balances, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Balances")
	doc.Table(md.TableSet{
		Header: []string{"Portfolio", "Balance"},
		Rows:   balanceRows(b, currency),
	})
	return doc.String()
}

// ReportMarkdown renders the outcome of an allocation. With trace, every pass is
// detailed.
func ReportMarkdown(r *allot.Report, currency string, trace bool) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Allocation")
	doc.PlainText(fmt.Sprintf("Deposited: %s, allocated: %s, unallocated: %s.",
		r.Deposited.Format(currency), r.Allocated().Format(currency), r.Unallocated.Format(currency)))

	doc.H2("Balances")
	doc.Table(md.TableSet{
		Header: []string{"Portfolio", "Balance"},
		Rows:   balanceRows(r.Balances, currency),
	})

	if !trace {
		return doc.String()
	}

	doc.H2("Passes")
	var rows [][]string
	for i, p := range r.Passes {
		retired := ""
		if p.Retired {
			retired = "retired"
		}
		if len(p.Moves) == 0 {
			rows = append(rows, []string{strconv.Itoa(i + 1), strconv.Itoa(p.Plan + 1), p.Kind.String(), "-", "-", retired})
			continue
		}
		for j, m := range p.Moves {
			status := ""
			if j == len(p.Moves)-1 {
				status = retired
			}
			rows = append(rows, []string{strconv.Itoa(i + 1), strconv.Itoa(p.Plan + 1), p.Kind.String(), m.Portfolio, m.Amount.Format(currency), status})
		}
	}
	doc.Table(md.TableSet{
		Header: []string{"Pass", "Plan", "Kind", "Portfolio", "Amount", "Status"},
		Rows:   rows,
	})
	return doc.String()
}

// PlansMarkdown renders the plans in processing order.
func PlansMarkdown(ordered []allot.Plan, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Processing order")
	for i, p := range ordered {
		doc.H2(fmt.Sprintf("%d. %s", i+1, p.Kind))
		var rows [][]string
		for _, t := range p.Portfolios {
			rows = append(rows, []string{t.Name, t.Limit.Format(currency)})
		}
		if len(rows) == 0 {
			doc.PlainText("No portfolios.")
			continue
		}
		doc.Table(md.TableSet{
			Header: []string{"Portfolio", "Limit"},
			Rows:   rows,
		})
	}
	return doc.String()
}
