package allot

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
)

// Request is the input of an allocation, as read from a JSON document:
//
//	{"plans":[{"kind":"one-time","portfolios":{"High risk":{"limit":10000}}}],"deposits":[10500,100]}
type Request struct {
	Plans    []Plan   `json:"plans"`
	Deposits []Amount `json:"deposits"`
}

// DecodeRequest reads a Request from r.
func DecodeRequest(r io.Reader) (Request, error) {
	var req Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return Request{}, fmt.Errorf("failed to decode request: %w", err)
	}
	return req, nil
}

// DecodeDepositsAt reads a JSON document from r and returns the deposits
// selected by a JSONPath expression, e.g. `$.transactions[?(@.type=="deposit")].amount`.
// Selected values must be numbers or decimal strings.
func DecodeDepositsAt(r io.Reader, path string) ([]Amount, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	val, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	// jsonpath returns a single value or a list depending on the expression.
	list, ok := val.([]any)
	if !ok {
		list = []any{val}
	}

	deposits := make([]Amount, 0, len(list))
	for i, v := range list {
		a, err := amountOf(v)
		if err != nil {
			return nil, fmt.Errorf("value #%d selected by %q: %w", i+1, path, err)
		}
		deposits = append(deposits, a)
	}
	return deposits, nil
}

// amountOf converts a generic JSON value into an Amount.
func amountOf(v any) (Amount, error) {
	switch x := v.(type) {
	case json.Number:
		return ParseAmount(x.String())
	case string:
		return ParseAmount(x)
	case float64:
		return A(x), nil
	default:
		return Amount{}, fmt.Errorf("not a number: %v", v)
	}
}

// ParseDeposits parses each string as an amount.
func ParseDeposits(args []string) ([]Amount, error) {
	deposits := make([]Amount, 0, len(args))
	for _, s := range args {
		a, err := ParseAmount(s)
		if err != nil {
			return nil, err
		}
		deposits = append(deposits, a)
	}
	return deposits, nil
}

// EncodeBalances writes balances as a single JSON line.
func EncodeBalances(w io.Writer, b *Balances) error {
	return encodeLine(w, b)
}

// EncodeReport writes a report as a single JSON line.
func EncodeReport(w io.Writer, r *Report) error {
	return encodeLine(w, r)
}

func encodeLine(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write: %w", err)
	}
	return nil
}
