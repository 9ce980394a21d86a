package main

import (
	"strings"

	"github.com/fatih/color"
)

type colors struct {
	spec  func(string, ...any) string
	data  func(string, ...any) string
	minus func(string, ...any) string
	plus  func(string, ...any) string
	id    func(string, ...any) string
}

func newColors() *colors {
	color.NoColor = false
	return &colors{
		spec:  color.RGB(196, 96, 16).SprintfFunc(),
		data:  color.RGB(96, 96, 96).SprintfFunc(),
		minus: color.RedString,
		plus:  color.GreenString,
		id:    color.RGB(128, 168, 196).SprintfFunc(),
	}
}

// patch colors the spec and bundle lines of an indented patch document.
func (c *colors) patch(s string) string {
	if c == nil {
		return s
	}
	lines := strings.SplitAfter(s, "\n")
	for i, ln := range lines {
		t := strings.TrimSpace(ln)
		switch {
		case strings.HasPrefix(t, "<xpath"), strings.HasPrefix(t, "</xpath"):
			lines[i] = c.line(c.spec, ln)
		case strings.HasPrefix(t, "<data"), strings.HasPrefix(t, "</data"):
			lines[i] = c.line(c.data, ln)
		}
	}
	return strings.Join(lines, "")
}

// lineDiff colors the lines of a diff made by xmldiff.LineDiff.
func (c *colors) lineDiff(s string) string {
	if c == nil {
		return s
	}
	lines := strings.SplitAfter(s, "\n")
	for i, ln := range lines {
		switch {
		case strings.HasPrefix(ln, "-"):
			lines[i] = c.line(c.minus, ln)
		case strings.HasPrefix(ln, "+"):
			lines[i] = c.line(c.plus, ln)
		}
	}
	return strings.Join(lines, "")
}

func (c *colors) line(f func(string, ...any) string, ln string) string {
	body, nl := strings.CutSuffix(ln, "\n")
	if nl {
		return f("%s", body) + "\n"
	}
	return f("%s", body)
}
