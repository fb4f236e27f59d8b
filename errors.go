/*
 * errors.go, part of tricontact.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package tricontact

import (
	"errors"
	"fmt"
	"strings"
)

// Kind tells which stage of the pipeline failed and why.
type Kind int

const (
	SourceNotFound Kind = iota + 1
	Format
	Resolution
	EmptyResult
)

func (K Kind) String() string {
	switch K {
	case SourceNotFound:
		return "source not found"
	case Format:
		return "format error"
	case Resolution:
		return "resolution error"
	case EmptyResult:
		return "empty result"
	}
	return fmt.Sprintf("kind(%d)", int(K))
}

// Sentinels for errors.Is. Every *Error matches the sentinel of its Kind.
var (
	ErrSourceNotFound = errors.New("source not found")
	ErrFormat         = errors.New("format error")
	ErrResolution     = errors.New("resolution error")
	ErrEmptyResult    = errors.New("empty result")
)

func (K Kind) sentinel() error {
	switch K {
	case SourceNotFound:
		return ErrSourceNotFound
	case Format:
		return ErrFormat
	case Resolution:
		return ErrResolution
	case EmptyResult:
		return ErrEmptyResult
	}
	return nil
}

// Error is the error type returned by all the parsing and aggregation functions
// in this package. Besides the kind of failure, it keeps the offending file and line
// (0 if not applicable) and a trail of the functions that passed it up, added with
// Decorate.
type Error struct {
	kind     Kind
	message  string
	filename string
	line     int
	empty    bool //also an empty result, i.e. a missing section.
	deco     []string
	err      error
}

func newError(kind Kind, filename string, line int, caller, format string, a ...interface{}) *Error {
	return &Error{
		kind:     kind,
		message:  fmt.Sprintf(format, a...),
		filename: filename,
		line:     line,
		deco:     []string{caller},
	}
}

func (E *Error) Error() string {
	var b strings.Builder
	b.WriteString(E.kind.String())
	if E.filename != "" {
		fmt.Fprintf(&b, " in %s", E.filename)
	}
	if E.line > 0 {
		fmt.Fprintf(&b, " line %d", E.line)
	}
	b.WriteString(": ")
	b.WriteString(E.message)
	return b.String()
}

// Kind returns the class of the failure.
func (E *Error) Kind() Kind { return E.kind }

// FileName returns the input file that has problems, or an empty string if none.
func (E *Error) FileName() string { return E.filename }

// Line returns the 1-based line of the input where the problem was found, or 0.
func (E *Error) Line() int { return E.line }

// Decorate adds the name of a caller to the error's trail and returns the trail.
// An empty string just returns the current trail.
func (E *Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// Is reports whether target is the sentinel for the error's kind. An error
// produced by a missing atom section also matches ErrEmptyResult.
func (E *Error) Is(target error) bool {
	if target == E.kind.sentinel() {
		return true
	}
	return E.empty && target == ErrEmptyResult
}

func (E *Error) Unwrap() error { return E.err }

// errDecorate adds caller to the trail if err is an *Error, and returns err unchanged otherwise.
func errDecorate(err error, caller string) error {
	var E *Error
	if errors.As(err, &E) {
		E.Decorate(caller)
	}
	return err
}
