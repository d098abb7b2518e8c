package allot

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Target is a named portfolio within a plan, with the maximum amount the plan
// may route to it.
type Target struct {
	Name  string
	Limit Amount
}

// T is a shorthand to create a Target.
func T(name string, limit Amount) Target { return Target{Name: name, Limit: limit} }

// Plan describes how deposits are split among portfolios.
//
// Portfolios are ordered: the allocator fills them in this order, which is the
// order of the keys in the JSON object the plan was decoded from.
type Plan struct {
	Kind       Kind
	Portfolios []Target
}

// NewPlan creates a plan of the given kind.
func NewPlan(kind Kind, targets ...Target) Plan {
	return Plan{Kind: kind, Portfolios: targets}
}

// Names returns the portfolio names in plan order.
func (p Plan) Names() []string {
	names := make([]string, 0, len(p.Portfolios))
	for _, t := range p.Portfolios {
		names = append(names, t.Name)
	}
	return names
}

// Limit returns the limit of a portfolio, and false if the plan does not route to it.
func (p Plan) Limit(name string) (Amount, bool) {
	for _, t := range p.Portfolios {
		if t.Name == name {
			return t.Limit, true
		}
	}
	return Amount{}, false
}

// Capacity returns the sum of all the plan limits.
func (p Plan) Capacity() Amount {
	var c Amount
	for _, t := range p.Portfolios {
		c = c.Add(t.Limit)
	}
	return c
}

// jtarget is the JSON shape of a portfolio target value.
type jtarget struct {
	Limit *Amount `json:"limit"`
}

// MarshalJSON writes {"kind":..., "portfolios":{name:{"limit":...}}} keeping
// the portfolio order.
func (p Plan) MarshalJSON() ([]byte, error) {
	var portfolios jsonObjectWriter
	for _, t := range p.Portfolios {
		portfolios.Append(t.Name, jtarget{Limit: &t.Limit})
	}
	var w jsonObjectWriter
	w.Append("kind", p.Kind)
	w.Append("portfolios", &portfolios)
	return w.MarshalJSON()
}

// UnmarshalJSON reads a plan. The historical "type" key is accepted in place
// of "kind".
func (p *Plan) UnmarshalJSON(data []byte) error {
	var temp struct {
		Kind       *Kind           `json:"kind"`
		Type       *Kind           `json:"type"`
		Portfolios json.RawMessage `json:"portfolios"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	switch {
	case temp.Kind != nil:
		p.Kind = *temp.Kind
	case temp.Type != nil:
		p.Kind = *temp.Type
	default:
		p.Kind = ""
	}

	targets, err := decodeTargets(temp.Portfolios)
	if err != nil {
		return fmt.Errorf("invalid portfolios: %w", err)
	}
	p.Portfolios = targets
	return nil
}

// decodeTargets walks the portfolios object token by token, so that the key
// order is preserved.
func decodeTargets(raw json.RawMessage) ([]Target, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected an object, got %v", tok)
	}

	var targets []Target
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected a portfolio name, got %v", tok)
		}
		var jt jtarget
		if err := dec.Decode(&jt); err != nil {
			return nil, fmt.Errorf("portfolio %q: %w", name, err)
		}
		if jt.Limit == nil {
			return nil, fmt.Errorf("portfolio %q: missing limit", name)
		}
		targets = append(targets, Target{Name: name, Limit: *jt.Limit})
	}
	// consume the closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return targets, nil
}
