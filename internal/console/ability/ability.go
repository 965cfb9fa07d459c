// Package ability is the render-time capability gate: a boolean allow/deny
// check a view performs before showing protected content, independent of
// routing. It never redirects and performs no I/O; on deny the caller renders
// a Forbidden view instead.
//
// The rule set is built from the signed-in actor's granted permissions and
// replaced on sign-in/sign-out; it is not process-wide static state.
package ability

// Rule is one granted capability: an action, optionally scoped to a subject.
// An empty subject means the grant is not resource-scoped and applies to any
// subject hint. The action "*" grants every action.
type Rule struct {
	Action  string
	Subject string
}

// Set is an immutable collection of granted rules.
type Set struct {
	rules map[Rule]struct{}
}

// New builds a Set from the given rules.
func New(rules ...Rule) *Set {
	s := &Set{rules: make(map[Rule]struct{}, len(rules))}
	for _, r := range rules {
		s.rules[r] = struct{}{}
	}
	return s
}

// Can reports whether the action is allowed for the given resource hint.
// subject may be empty to mean "not resource-scoped". A nil Set denies
// everything.
func (s *Set) Can(action, subject string) bool {
	if s == nil {
		return false
	}

	candidates := []Rule{
		{Action: action, Subject: subject},
		{Action: action},
		{Action: "*", Subject: subject},
		{Action: "*"},
	}
	for _, r := range candidates {
		if _, ok := s.rules[r]; ok {
			return true
		}
	}
	return false
}

// Cannot is the negation of Can.
func (s *Set) Cannot(action, subject string) bool {
	return !s.Can(action, subject)
}

// Rules returns a copy of the granted rules, mainly for diagnostics.
func (s *Set) Rules() []Rule {
	if s == nil {
		return nil
	}
	out := make([]Rule, 0, len(s.rules))
	for r := range s.rules {
		out = append(out, r)
	}
	return out
}
