// Package stacktrace recognizes stack traces in free text by signature
// matching rather than structured parsing.
package stacktrace

import "regexp"

// DefaultPatterns lists the traceback/exception idioms recognized across the
// ecosystems support tickets commonly originate from. Order is irrelevant to
// the result; any match short-circuits.
var DefaultPatterns = []string{
	`Traceback \(most recent call last\)`,       // Python
	`at .+\(.+:\d+\)`,                           // Java/JavaScript frame
	`^\s+at\s+`,                                 // generic "at" frame
	`Exception in thread`,                       // Java
	`Error:\s*\n\s+at\s+`,                       // Node.js
	`File ".+", line \d+`,                       // Python file reference
	`\.py", line \d+`,                           // Python file
	`\.java:\d+\)`,                              // Java file
	`\.js:\d+:\d+`,                              // JavaScript file
	`\.ts:\d+:\d+`,                              // TypeScript file
	`Stack trace:`,                              // generic
	`Call stack:`,                               // generic
	`NullPointerException`,                // Java
	// Python exception lines
	`TypeError:|ValueError:|KeyError:|AttributeError:`,
	`Caused by:`, // Java chained exceptions
}

// Detector matches text against a fixed set of compiled signatures. It is
// pure and safe for concurrent use.
type Detector struct {
	patterns []*regexp.Regexp
}

// NewDetector compiles the given patterns case-insensitively in multiline
// mode. Returns an error if any pattern fails to compile.
func NewDetector(patterns []string) (*Detector, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`(?im)` + p)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, re)
	}
	return &Detector{patterns: compiled}, nil
}

// NewDefaultDetector builds a detector over DefaultPatterns.
func NewDefaultDetector() *Detector {
	d, err := NewDetector(DefaultPatterns)
	if err != nil {
		// DefaultPatterns are fixed and covered by tests.
		panic(err)
	}
	return d
}

// Detect reports whether text contains a stack trace. Empty text never
// matches.
func (d *Detector) Detect(text string) bool {
	if text == "" {
		return false
	}
	for _, re := range d.patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
