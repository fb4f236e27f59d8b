/*
 * psf.go, part of tricontact.
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
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// NAtomMarker is the token that opens the atom section of a PSF file.
const NAtomMarker = "!NATOM"

// Atom is one entry of the atom section of a PSF file. Only ID, Molid and Molname
// are required, the rest is filled when the line carries it. A Charge or Mass
// column that can't be read as a number is left at zero, same as a missing one.
type Atom struct {
	ID      int //1-based atom index
	Segment string
	Molid   int //residue id
	Molname string
	Name    string
	Type    string
	Charge  float64
	Mass    float64
}

// Structure maps atom indexes to atoms. It is not modified after parsing.
type Structure struct {
	atoms    map[int]*Atom
	declared int //the count before the !NATOM marker, -1 if it couldn't be read.
	filename string
}

// NewStructure builds a structure from the given atoms, keyed by their IDs.
// It returns a Format error if two atoms share an ID.
func NewStructure(ats []*Atom) (*Structure, error) {
	S := &Structure{atoms: make(map[int]*Atom, len(ats)), declared: -1}
	for _, at := range ats {
		if _, ok := S.atoms[at.ID]; ok {
			return nil, newError(Format, "", 0, "NewStructure", "duplicate atom index %d", at.ID)
		}
		S.atoms[at.ID] = at
	}
	return S, nil
}

// Len returns the number of atoms in the structure.
func (S *Structure) Len() int {
	return len(S.atoms)
}

// Declared returns the atom count written before the !NATOM marker, or -1.
func (S *Structure) Declared() int {
	return S.declared
}

// FileName returns the file the structure was read from, if any.
func (S *Structure) FileName() string {
	return S.filename
}

// Atom returns the atom with the given index.
func (S *Structure) Atom(index int) (*Atom, bool) {
	at, ok := S.atoms[index]
	return at, ok
}

// Residue returns the residue id of the atom with the given index.
func (S *Structure) Residue(index int) (int, bool) {
	at, ok := S.atoms[index]
	if !ok {
		return 0, false
	}
	return at.Molid, true
}

// Indexes returns all atom indexes in ascending order.
func (S *Structure) Indexes() []int {
	ret := make([]int, 0, len(S.atoms))
	for k := range S.atoms {
		ret = append(ret, k)
	}
	sort.Ints(ret)
	return ret
}

// Residues returns the residue id -> residue name map of the structure. If several
// segments reuse a residue id, the name of the atom with the lowest index wins.
func (S *Structure) Residues() map[int]string {
	ret := make(map[int]string)
	for _, i := range S.Indexes() {
		at := S.atoms[i]
		if _, ok := ret[at.Molid]; !ok {
			ret[at.Molid] = at.Molname
		}
	}
	return ret
}

// ParseStructure reads the atom section of the PSF file in path.
func ParseStructure(path string) (*Structure, error) {
	src, err := openSource(path)
	if err != nil {
		return nil, errDecorate(err, "ParseStructure")
	}
	defer src.Close()
	S, err := ReadStructure(src, path)
	if err != nil {
		return S, errDecorate(err, "ParseStructure")
	}
	return S, nil
}

// ReadStructure reads the atom section of a PSF file from r. name is only used
// in errors and logs. Everything up to and including the line with the !NATOM
// marker is skipped, then one atom is read per line until the first blank line.
// If the marker is not there, the error is a Format error that also
// matches ErrEmptyResult. If the section has no atoms, the empty structure is
// returned along with an EmptyResult error.
func ReadStructure(r io.Reader, name string) (*Structure, error) {
	S := &Structure{atoms: make(map[int]*Atom), declared: -1, filename: name}
	lines := newLineReader(r)
	found := false
	for {
		line, ok, err := lines.next()
		if err != nil {
			return nil, readError(name, lines.n, "ReadStructure", err)
		}
		if !ok {
			break
		}
		if strings.Contains(line, NAtomMarker) {
			S.declared = declaredAtoms(line)
			found = true
			break
		}
	}
	if !found {
		E := newError(Format, name, 0, "ReadStructure", "no %s section found", NAtomMarker)
		E.empty = true
		return nil, E
	}
	for {
		line, ok, err := lines.next()
		if err != nil {
			return nil, readError(name, lines.n, "ReadStructure", err)
		}
		if !ok || strings.TrimSpace(line) == "" {
			break
		}
		at, err := psfAtom(line)
		if err != nil {
			return nil, newError(Format, name, lines.n, "ReadStructure", "%s", err.Error())
		}
		if _, dup := S.atoms[at.ID]; dup {
			return nil, newError(Format, name, lines.n, "ReadStructure", "duplicate atom index %d", at.ID)
		}
		S.atoms[at.ID] = at
	}
	if len(S.atoms) == 0 {
		return S, newError(EmptyResult, name, 0, "ReadStructure", "the %s section has no atoms", NAtomMarker)
	}
	if S.declared >= 0 && S.declared != len(S.atoms) {
		logger.Warn().Str("file", name).Int("declared", S.declared).Int("read", len(S.atoms)).Msg("atom count doesn't match the !NATOM header")
	}
	logger.Debug().Str("file", name).Int("atoms", len(S.atoms)).Msg("structure read")
	return S, nil
}

// declaredAtoms returns the integer right before the marker in line, or -1.
func declaredAtoms(line string) int {
	fields := strings.Fields(line)
	for i, f := range fields {
		if !strings.HasPrefix(f, NAtomMarker) || i == 0 {
			continue
		}
		n, err := strconv.Atoi(fields[i-1])
		if err != nil {
			return -1
		}
		return n
	}
	return -1
}

// psfAtom parses one line of the atom section. The index, residue id and residue name
// are the 1st, 3rd and 4th columns. The optional columns (atom name, type, charge, mass)
// are taken if present and readable.
func psfAtom(line string) (*Atom, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return nil, fmt.Errorf("expected at least 4 columns, found %d", len(fields))
	}
	var err error
	at := new(Atom)
	at.ID, err = strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("column 1: bad atom index %q", fields[0])
	}
	at.Segment = fields[1]
	at.Molid, err = strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("column 3: bad residue id %q", fields[2])
	}
	at.Molname = fields[3]
	if len(fields) > 4 {
		at.Name = fields[4]
	}
	if len(fields) > 5 {
		at.Type = fields[5]
	}
	if len(fields) > 6 {
		at.Charge, _ = strconv.ParseFloat(fields[6], 64)
	}
	if len(fields) > 7 {
		at.Mass, _ = strconv.ParseFloat(fields[7], 64)
	}
	return at, nil
}
