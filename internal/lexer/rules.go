package lexer

import "fmt"

// ruleIndex is a rule's registration index, the Match Selector's
// tie-break key: a monotonically increasing counter assigned once per
// AddRule/AddStateRule call, shared across every state the rule is
// registered into when a state-spec names more than one.
type ruleIndex int

// compiledRule is one entry in the Rule Table: a compiled pattern (or,
// for an EOF rule, none at all) paired with its action and its
// registration index.
type compiledRule struct {
	pattern Pattern
	cp      *compiledPattern
	isEOF   bool
	action  Action
	index   ruleIndex
}

// resolveStateSpec resolves a rule's state-spec: absent (nil) means
// every currently registered inclusive state; "*" means every currently
// registered state, inclusive or exclusive; a single name or a list of
// names is taken as given. Resolution happens once, at add-time - later
// AddState calls never retroactively enroll a rule registered against
// "*" or a nil spec.
func (s *Scanner) resolveStateSpec(spec any) ([]string, error) {
	switch v := spec.(type) {
	case nil:
		names := s.states.inclusiveStates()
		if len(names) == 0 {
			return nil, &ConfigError{Code: ErrEmptyStateSet, Message: "no inclusive states registered"}
		}
		return names, nil
	case string:
		if v == StateAny {
			names := s.states.allStates()
			if len(names) == 0 {
				return nil, &ConfigError{Code: ErrEmptyStateSet, Message: "no states registered"}
			}
			return names, nil
		}
		if !s.states.exists(v) {
			return nil, &ConfigError{Code: ErrUnknownState, Message: "unknown state", Name: v}
		}
		return []string{v}, nil
	case []string:
		if len(v) == 0 {
			return nil, &ConfigError{Code: ErrEmptyStateSet, Message: "empty state list"}
		}
		for _, name := range v {
			if !s.states.exists(name) {
				return nil, &ConfigError{Code: ErrUnknownState, Message: "unknown state", Name: name}
			}
		}
		return v, nil
	default:
		return nil, &ConfigError{Code: ErrUnknownState, Message: fmt.Sprintf("invalid state-spec type %T", spec)}
	}
}

// AddRule registers pat against every currently registered inclusive
// state.
func (s *Scanner) AddRule(pat Pattern, action Action) error {
	return s.AddStateRule(nil, pat, action)
}

// AddRules registers a batch of rules against every currently registered
// inclusive state, in order, stopping at the first failure.
func (s *Scanner) AddRules(specs []RuleSpec) error {
	return s.AddStateRules(nil, specs)
}

// AddStateRule registers pat, with action, against the states named by
// stateSpec (nil, "*", a single state name, or a []string of names).
// pat == EOFRule registers an end-of-input rule instead of an ordinary
// pattern rule.
func (s *Scanner) AddStateRule(stateSpec any, pat Pattern, action Action) error {
	names, err := s.resolveStateSpec(stateSpec)
	if err != nil {
		return err
	}

	r := &compiledRule{pattern: pat, action: action}
	if pat.literal && pat.source == RuleEOF {
		r.isEOF = true
	} else {
		cp, err := compilePattern(pat, s.definitions, s.ignoreCase, s.normalizeUnicode)
		if err != nil {
			return err
		}
		r.cp = cp
	}

	s.nextIndex++
	r.index = ruleIndex(s.nextIndex)

	for _, name := range names {
		s.table[name] = append(s.table[name], r)
	}
	return nil
}

// AddStateRules registers a batch of rules against stateSpec, in order,
// stopping at the first failure.
func (s *Scanner) AddStateRules(stateSpec any, specs []RuleSpec) error {
	for i, rs := range specs {
		if err := s.AddStateRule(stateSpec, rs.Pattern, rs.Action); err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
	}
	return nil
}
