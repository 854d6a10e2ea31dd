package lower

import "fmt"

// Policy selects how a questionable construct is treated.
type Policy uint8

const (
	PolicyAllow Policy = iota
	PolicyWarn
	PolicyError
)

func (p Policy) String() string {
	switch p {
	case PolicyAllow:
		return "allow"
	case PolicyWarn:
		return "warn"
	case PolicyError:
		return "error"
	}
	return fmt.Sprintf("Policy(%d)", p)
}

// ParsePolicy converts allow|warn|error to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "allow":
		return PolicyAllow, nil
	case "warn":
		return PolicyWarn, nil
	case "error":
		return PolicyError, nil
	}
	return PolicyWarn, fmt.Errorf("invalid policy: %q (expected: allow|warn|error)", s)
}

type Options struct {
	// EntryName is the designated entry function of the program.
	EntryName string
	// EntryAlias is the IR symbol of the entry function; empty means
	// "__minic_" + EntryName.
	EntryAlias string
	// StartupName is the IR symbol of the synthesized program entry point.
	StartupName string
	// PointerCasts applies to implicit casts between unrelated pointer
	// types. PolicyAllow behaves like PolicyWarn.
	PointerCasts Policy
	// MissingReturn applies when control can reach the end of a non-void function.
	MissingReturn Policy
}

func DefaultOptions() Options {
	return Options{
		EntryName:     "main",
		StartupName:   "main",
		PointerCasts:  PolicyWarn,
		MissingReturn: PolicyWarn,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.EntryName == "" {
		o.EntryName = def.EntryName
	}
	if o.StartupName == "" {
		o.StartupName = def.StartupName
	}
	if o.EntryAlias == "" {
		o.EntryAlias = "__minic_" + o.EntryName
	}
	return o
}
