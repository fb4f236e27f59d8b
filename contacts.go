/*
 * contacts.go, part of tricontact.
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
	"io"
	"sort"
	"strconv"
	"strings"
)

// Contact is one contact event in a frame, between an anchor atom and a partner atom.
type Contact struct {
	Frame   int
	Anchor  int
	Partner int
}

// ParseContacts reads the contact listing in path.
func ParseContacts(path string) ([]Contact, error) {
	src, err := openSource(path)
	if err != nil {
		return nil, errDecorate(err, "ParseContacts")
	}
	defer src.Close()
	c, err := ReadContacts(src, path)
	if err != nil {
		return nil, errDecorate(err, "ParseContacts")
	}
	return c, nil
}

// ReadContacts reads a contact listing from r. Each line is a frame: the frame number,
// a count field that is skipped, and then pairs of anchor and partner atom indexes.
// A line with an odd number of indexes after the count field is a Format error.
// Blank lines are skipped. A listing with no contacts gives an empty, non-nil slice.
func ReadContacts(r io.Reader, name string) ([]Contact, error) {
	contacts := make([]Contact, 0, 512)
	lines := newLineReader(r)
	for {
		line, ok, err := lines.next()
		if err != nil {
			return nil, readError(name, lines.n, "ReadContacts", err)
		}
		if !ok {
			break
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		frame, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, newError(Format, name, lines.n, "ReadContacts", "column 1: bad frame number %q", fields[0])
		}
		if len(fields) <= 2 {
			continue
		}
		pairs := fields[2:]
		if len(pairs)%2 != 0 {
			return nil, newError(Format, name, lines.n, "ReadContacts", "odd number of atom indexes (%d) after the count field", len(pairs))
		}
		for i := 0; i < len(pairs); i += 2 {
			var c Contact
			c.Frame = frame
			c.Anchor, err = strconv.Atoi(pairs[i])
			if err != nil {
				return nil, newError(Format, name, lines.n, "ReadContacts", "column %d: bad atom index %q", i+3, pairs[i])
			}
			c.Partner, err = strconv.Atoi(pairs[i+1])
			if err != nil {
				return nil, newError(Format, name, lines.n, "ReadContacts", "column %d: bad atom index %q", i+4, pairs[i+1])
			}
			contacts = append(contacts, c)
		}
	}
	if len(contacts) == 0 {
		logger.Warn().Str("file", name).Msg("no contacts found")
	}
	logger.Debug().Str("file", name).Int("lines", lines.n).Int("contacts", len(contacts)).Msg("contacts read")
	return contacts, nil
}

// Frames returns, in ascending order, the distinct frame numbers found in all the
// given contact sets.
func Frames(sets ...[]Contact) []int {
	seen := make(map[int]bool)
	for _, set := range sets {
		for _, c := range set {
			seen[c.Frame] = true
		}
	}
	ret := make([]int, 0, len(seen))
	for f := range seen {
		ret = append(ret, f)
	}
	sort.Ints(ret)
	return ret
}
