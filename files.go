/*
 * files.go, part of tricontact.
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
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//zstd.Decoder doesn't implement io.ReadCloser, and its Close returns nothing,
//so we carry the file along and close both.
type zstdSource struct {
	*zstd.Decoder
	f *os.File
}

func (Z zstdSource) Close() error {
	Z.Decoder.Close()
	return Z.f.Close()
}

type gzipSource struct {
	*gzip.Reader
	f *os.File
}

func (G gzipSource) Close() error {
	err := G.Reader.Close()
	if ferr := G.f.Close(); err == nil {
		err = ferr
	}
	return err
}

// openSource opens name for reading. Files ending in .gz are read through gzip,
// and files ending in .zst or .zstd through zstd. Everything else is read as plain text.
// A file that is missing or can't be opened is reported as a SourceNotFound *Error
// wrapping the error from os.Open.
func openSource(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		msg := "can't open: %s"
		if errors.Is(err, fs.ErrNotExist) {
			msg = "%s"
		}
		E := newError(SourceNotFound, name, 0, "openSource", msg, err.Error())
		E.err = err
		return nil, E
	}
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		r, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			E := newError(Format, name, 0, "openSource", "can't read gzip header: %s", err.Error())
			E.err = err
			return nil, E
		}
		return gzipSource{r, f}, nil
	case strings.HasSuffix(lower, ".zst"), strings.HasSuffix(lower, ".zstd"):
		r, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			E := newError(Format, name, 0, "openSource", "can't set up zstd decoder: %s", err.Error())
			E.err = err
			return nil, E
		}
		return zstdSource{r, f}, nil
	}
	return f, nil
}

// lineReader hands out the lines of a text source, without the line terminator,
// counting them so errors can point to the right place. Lines of any length are fine.
type lineReader struct {
	r    *bufio.Reader
	n    int
	done bool
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

// next returns the next line and true, or false once the source is exhausted.
func (L *lineReader) next() (string, bool, error) {
	if L.done {
		return "", false, nil
	}
	s, err := L.r.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return "", false, err
		}
		L.done = true
		if s == "" {
			return "", false, nil
		}
	}
	L.n++
	return strings.TrimRight(s, "\r\n"), true, nil
}

// readError wraps an I/O failure in the middle of a file.
func readError(name string, line int, caller string, err error) error {
	E := newError(Format, name, line, caller, "read failed: %s", err.Error())
	E.err = err
	return E
}
