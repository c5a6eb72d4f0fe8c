// Package livedoor parses livedoor news corpus article files.
//
// An article file is UTF-8 text laid out as:
//
//	line 1: article URL
//	line 2: publication time, e.g. 2012-01-01T12:00:00+0900
//	line 3+: title and body
//
// Trailing whitespace is trimmed from every line. The body is every line
// from the third on, joined with a single space.
package livedoor
