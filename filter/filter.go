package filter

import (
	_ "embed"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

// ErrNoRules is returned when a rule table contains no rules.
var ErrNoRules = errors.New("rule table is empty")

// Rule is a named, case-sensitive regular-expression fragment.
type Rule struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
}

type ruleTable struct {
	Version int    `yaml:"version"`
	Rules   []Rule `yaml:"rules"`
}

// Filter matches category labels against a fixed rule set.
// A Filter is immutable and safe for concurrent use.
type Filter struct {
	version  int
	rules    []Rule
	compiled []*regexp.Regexp
	union    *regexp.Regexp
}

// New compiles rules into a Filter.
func New(version int, rules []Rule) (*Filter, error) {
	if len(rules) == 0 {
		return nil, ErrNoRules
	}
	f := &Filter{
		version:  version,
		rules:    append([]Rule(nil), rules...),
		compiled: make([]*regexp.Regexp, len(rules)),
	}
	alts := make([]string, len(rules))
	for i, r := range rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Name, err)
		}
		f.compiled[i] = re
		alts[i] = "(?:" + r.Pattern + ")"
	}
	f.union = regexp.MustCompile(strings.Join(alts, "|"))
	return f, nil
}

// Load parses a YAML rule table (see rules.yaml) into a Filter.
func Load(data []byte) (*Filter, error) {
	var t ruleTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse rule table: %w", err)
	}
	return New(t.Version, t.Rules)
}

var defaultFilter = sync.OnceValue(func() *Filter {
	f, err := Load(defaultRules)
	if err != nil {
		panic(fmt.Errorf("embedded rules.yaml: %w", err))
	}
	return f
})

// Default returns the Filter built from the embedded rule table.
func Default() *Filter {
	return defaultFilter()
}

// Version returns the rule table version.
func (f *Filter) Version() int { return f.version }

// Rules returns a copy of the rule set.
func (f *Filter) Rules() []Rule { return append([]Rule(nil), f.rules...) }

// Excludes reports whether label matches any rule.
func (f *Filter) Excludes(label any) bool {
	return f.union.MatchString(Label(label))
}

// Keep reports whether label matches no rule.
func (f *Filter) Keep(label any) bool {
	return !f.Excludes(label)
}

// Match returns the first rule matching label.
func (f *Filter) Match(label any) (Rule, bool) {
	s := Label(label)
	if !f.union.MatchString(s) {
		return Rule{}, false
	}
	for i, re := range f.compiled {
		if re.MatchString(s) {
			return f.rules[i], true
		}
	}
	return Rule{}, false
}

// Apply returns the rows whose label (as extracted by column) matches no
// rule. Row order is preserved; rows is not modified.
func Apply[T any](f *Filter, rows []T, column func(T) any) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if f.Keep(column(r)) {
			out = append(out, r)
		}
	}
	return out
}

// Strings returns the labels that match no rule, preserving order.
func (f *Filter) Strings(labels []string) []string {
	return Apply(f, labels, func(s string) any { return s })
}

// Label coerces a label value to its string form. Nil becomes "".
func Label(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}
