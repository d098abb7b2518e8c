package allot

import (
	"encoding/json"
	"strings"
)

// Kind is a typed string identifying how a plan is consumed by the allocator.
type Kind string

// Plan kinds known to the allocator.
const (
	OneTime   Kind = "one-time"  // consumed by a single pass, then retired.
	Recurring Kind = "recurring" // revisited on every pass while funds remain.
)

// kindAliases maps accepted spellings to their canonical kind. Keys are lower case.
var kindAliases = map[string]Kind{
	"one-time":  OneTime,
	"one time":  OneTime,
	"onetime":   OneTime,
	"recurring": Recurring,
	"monthly":   Recurring,
}

// Kinds returns every kind known to the allocator, in processing order.
func Kinds() []Kind { return []Kind{OneTime, Recurring} }

// ParseKind normalizes a kind name. Known aliases ("One time", "Monthly") map
// to their canonical kind; anything else is returned unchanged so that
// validation can report it.
func ParseKind(s string) Kind {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k
	}
	return Kind(s)
}

// Known reports whether k is one of the kinds returned by Kinds.
func (k Kind) Known() bool { return k == OneTime || k == Recurring }

// SingleUse reports whether a plan of this kind is retired after its first pass.
func (k Kind) SingleUse() bool { return k == OneTime }

// rank orders kinds for processing: one-time plans come first.
func (k Kind) rank() int {
	switch k {
	case OneTime:
		return 0
	case Recurring:
		return 1
	default:
		return 2
	}
}

func (k Kind) String() string { return string(k) }

// UnmarshalJSON reads the kind and normalizes its aliases.
func (k *Kind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*k = ParseKind(s)
	return nil
}
