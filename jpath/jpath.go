// Package jpath implements a minimal JSONPath-like expression parser,
// restricted to the member and wildcard steps a jsonstream.Schema can act
// on. A schema node has no way to act on a step conditionally, so there is
// no grammar here for array indices, slices, recursive descent, or
// script/filter steps: none of them has a schema-tree equivalent.
package jpath

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

/*
Grammar:

  expr = root steps
  root = "$"
 steps = step [steps]
  step = "." name
  step = "[" name "]"
  name = WORD
  name = "'" QTEXT "'"
  name = "*"

  WORD = RE `\w+`
 QTEXT = RE `[^']*`   (a quoted name cannot contain a single quote)

Source:
  https://www.ietf.org/archive/id/draft-goessner-dispatch-jsonpath-00.html
*/

// An Expr is a parsed JSONPath expression.
type Expr []Step

// Parse parses s as a JSONPath expression.
func Parse(s string) (Expr, error) {
	st, _, err := parseExpr(s)
	if err != nil {
		return Expr{}, err
	}
	return st, nil
}

func (e Expr) String() string {
	var buf strings.Builder
	buf.WriteString("$")
	for _, s := range e {
		switch s.Op {
		case Member:
			if s.Arg2 == "qname" {
				fmt.Fprintf(&buf, ".'%s'", s.Arg1)
			} else {
				fmt.Fprintf(&buf, ".%s", s.Arg1)
			}
		case QName:
			fmt.Fprintf(&buf, "['%s']", s.Arg1)
		default: // Name, Wildcard
			fmt.Fprintf(&buf, "[%s]", s.Arg1)
		}
	}
	return buf.String()
}

func parseExpr(s string) ([]Step, string, error) {
	t, ok := strings.CutPrefix(s, "$")
	if !ok {
		return nil, s, errors.New("missing root marker")
	}
	return parseSteps(t)
}

func parseSteps(s string) (steps []Step, rest string, _ error) {
	for s != "" {
		step, rest, err := parseStep(s)
		if err != nil {
			return nil, s, err
		}
		steps = append(steps, step)
		s = rest
	}
	return steps, s, nil
}

func parseStep(s string) (_ Step, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "."); ok {
		kind, name, u, err := parseName(t)
		if err != nil {
			return Step{}, s, fmt.Errorf("invalid .name: %w", err)
		}
		return Step{Op: Member, Arg1: name, Arg2: kind.String()}, u, nil
	}
	if t, ok := strings.CutPrefix(s, "["); ok {
		kind, name, u, err := parseName(t)
		if err != nil {
			return Step{}, s, fmt.Errorf("invalid [name]: %w", err)
		}
		u, ok := strings.CutPrefix(u, "]")
		if !ok {
			return Step{}, u, errors.New("missing close bracket")
		}
		return Step{Op: kind, Arg1: name}, u, nil
	}
	return Step{}, s, errors.New("invalid path step")
}

func parseName(s string) (kind Op, name, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "*"); ok {
		return Wildcard, "*", t, nil
	}
	if m := wordRE.FindStringSubmatch(s); m != nil {
		return Name, m[1], s[len(m[0]):], nil
	}
	if m := quoteRE.FindStringSubmatch(s); m != nil {
		return QName, m[1], s[len(m[0]):], nil
	}
	return Invalid, "", s, errors.New("invalid name")
}

var (
	wordRE  = regexp.MustCompile(`^(\w+)`)
	quoteRE = regexp.MustCompile(`^'([^\']*)'`)
)

// An Op is a path operator.
type Op byte

const (
	Invalid  Op = iota // invalid operator
	Member             // dot-prefixed member lookup (.)
	Wildcard           // wildcard expansion (*)
	Name               // unquoted bracket name lookup
	QName              // quoted bracket name lookup
)

var opText = map[Op]string{
	Invalid:  "invalid",
	Member:   ".",
	Wildcard: "*",
	Name:     "name",
	QName:    "qname",
}

func (o Op) String() string {
	if s, ok := opText[o]; ok {
		return s
	}
	return opText[Invalid]
}

// A Step is a single step of a JSONPath expression.
type Step struct {
	Op   Op
	Arg1 string
	Arg2 string
}
