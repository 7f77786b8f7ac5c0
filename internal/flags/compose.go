package flags

import (
	"fmt"

	"github.com/orcac/orcatool/internal/toolchain"
)

// Compose derives the FlagSet for req on the detected toolchain. It is pure:
// identical inputs always give identical output. Requests whose config or
// target fall outside the known enums are rejected before any rule runs.
func Compose(info toolchain.Info, req Request) (*FlagSet, error) {
	if !req.Config.valid() {
		return nil, fmt.Errorf("%w %q", ErrInvalidConfig, req.Config)
	}
	if !req.Target.valid() {
		return nil, fmt.Errorf("%w %q", ErrInvalidTarget, req.Target)
	}
	fs := &FlagSet{}
	for _, rule := range Matching(FactsFor(info, req)) {
		fs.merge(&rule.Delta)
	}
	return fs, nil
}

// Matching returns the policy rules that apply to facts, in policy order.
func Matching(facts Facts) []Rule {
	var rules []Rule
	for _, rule := range Policy {
		if rule.When(facts) {
			rules = append(rules, rule)
		}
	}
	return rules
}

// FactsFor collects the policy inputs for req on info.
func FactsFor(info toolchain.Info, req Request) Facts {
	return Facts{
		OS:       info.OS,
		Compiler: info.Compiler,
		Linker:   info.Linker,
		Config:   req.Config,
		Target:   req.Target,
		Options:  req.Options,
	}
}
