package routing

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholder matches "<identifier>" inside a route template.
var placeholder = regexp.MustCompile(`<([^<>]*)>`)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

const (
	segmentCapture = `[^/]+`
	greedyCapture  = `.+`
)

// Pattern is a compiled route template.
type Pattern struct {
	template string
	re       *regexp.Regexp
	names    []string
}

// CompileOption tweaks pattern compilation.
type CompileOption func(*compileOptions)

type compileOptions struct {
	capture string
}

// Greedy makes placeholders capture across "/" separators.
func Greedy() CompileOption {
	return func(o *compileOptions) { o.capture = greedyCapture }
}

// Compile turns a template such as "/hello/<username>" into an anchored
// matcher. Each placeholder becomes a named capture of one path segment
// (or of anything, with Greedy). Literal text is matched verbatim.
func Compile(template string, opts ...CompileOption) (*Pattern, error) {
	o := compileOptions{capture: segmentCapture}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		b     strings.Builder
		names []string
		last  int
	)
	b.WriteString("^")

	for _, loc := range placeholder.FindAllStringSubmatchIndex(template, -1) {
		literal := template[last:loc[0]]
		if err := checkLiteral(template, literal); err != nil {
			return nil, err
		}
		b.WriteString(regexp.QuoteMeta(literal))

		name := template[loc[2]:loc[3]]
		if !identifier.MatchString(name) {
			return nil, &PatternError{Template: template, Reason: fmt.Sprintf("invalid placeholder name %q", name)}
		}
		for _, seen := range names {
			if seen == name {
				return nil, &PatternError{Template: template, Reason: fmt.Sprintf("duplicate placeholder %q", name)}
			}
		}
		names = append(names, name)

		fmt.Fprintf(&b, "(?P<%s>%s)", name, o.capture)
		last = loc[1]
	}

	tail := template[last:]
	if err := checkLiteral(template, tail); err != nil {
		return nil, err
	}
	b.WriteString(regexp.QuoteMeta(tail))
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, &PatternError{Template: template, Reason: err.Error()}
	}
	return &Pattern{template: template, re: re, names: names}, nil
}

// checkLiteral rejects stray angle brackets left outside placeholders.
func checkLiteral(template, literal string) error {
	if strings.ContainsAny(literal, "<>") {
		return &PatternError{Template: template, Reason: "unbalanced '<' or '>'"}
	}
	return nil
}

// Match reports whether the whole path matches and returns the captures.
func (p *Pattern) Match(path string) (Params, bool) {
	m := p.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}
	params := make(Params, len(p.names))
	for i, name := range p.re.SubexpNames() {
		if name != "" {
			params[name] = m[i]
		}
	}
	return params, true
}

// Template returns the source template.
func (p *Pattern) Template() string { return p.template }

// Names returns the placeholder names in template order.
func (p *Pattern) Names() []string { return append([]string(nil), p.names...) }

// String returns the compiled regular expression.
func (p *Pattern) String() string { return p.re.String() }
