/*
 * aggregate.go, part of tricontact.
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

import "sort"

// JoinedContact is a protein contact and a lipid contact of the same anchor atom
// in the same frame. All fields but Frame are atom indexes.
type JoinedContact struct {
	Frame  int
	Anchor int
	Prot   int
	Lipid  int
}

// ResidueTriple is a JoinedContact with the atom indexes replaced by residue ids.
type ResidueTriple struct {
	Frame  int
	Anchor int
	Prot   int
	Lipid  int
}

// AggregateRow is the number of three-way contacts, over all frames, between
// the Anchor residue and the Prot residue.
type AggregateRow struct {
	Anchor int
	Prot   int
	Count  int
}

type frameAnchor struct {
	frame  int
	anchor int
}

type residuePair struct {
	anchor int
	prot   int
}

// Join returns the inner join of the protein and lipid contacts on frame and
// anchor atom. Keys repeated in either set give the full cross product of
// their partners. The order follows the protein contacts.
func Join(prot, lipid []Contact) []JoinedContact {
	partners := make(map[frameAnchor][]int, len(lipid))
	for _, c := range lipid {
		k := frameAnchor{c.Frame, c.Anchor}
		partners[k] = append(partners[k], c.Partner)
	}
	joined := make([]JoinedContact, 0, len(prot))
	for _, c := range prot {
		for _, l := range partners[frameAnchor{c.Frame, c.Anchor}] {
			joined = append(joined, JoinedContact{Frame: c.Frame, Anchor: c.Anchor, Prot: c.Partner, Lipid: l})
		}
	}
	return joined
}

// Resolve replaces the atom indexes of the joined contacts by the residue ids
// they have in S. An index that is not in S is a Resolution error, and no
// triples are returned.
func Resolve(S *Structure, joined []JoinedContact) ([]ResidueTriple, error) {
	if S == nil {
		return nil, newError(Resolution, "", 0, "Resolve", "no structure given")
	}
	triples := make([]ResidueTriple, 0, len(joined))
	for _, j := range joined {
		var t ResidueTriple
		var err error
		t.Frame = j.Frame
		if t.Anchor, err = S.resolve(j.Anchor, j.Frame, "anchor"); err != nil {
			return nil, err
		}
		if t.Prot, err = S.resolve(j.Prot, j.Frame, "protein"); err != nil {
			return nil, err
		}
		if t.Lipid, err = S.resolve(j.Lipid, j.Frame, "lipid"); err != nil {
			return nil, err
		}
		triples = append(triples, t)
	}
	return triples, nil
}

func (S *Structure) resolve(index, frame int, role string) (int, error) {
	r, ok := S.Residue(index)
	if !ok {
		return 0, newError(Resolution, S.filename, 0, "Resolve", "%s atom %d (frame %d) is not in the structure", role, index, frame)
	}
	return r, nil
}

// Count groups the triples by anchor and protein residue and counts them.
// Frame and lipid residue are not part of the key.
func Count(triples []ResidueTriple) *Table {
	counts := make(map[residuePair]int)
	for _, t := range triples {
		counts[residuePair{t.Anchor, t.Prot}]++
	}
	T := &Table{Rows: make([]AggregateRow, 0, len(counts))}
	for k, v := range counts {
		T.Rows = append(T.Rows, AggregateRow{Anchor: k.anchor, Prot: k.prot, Count: v})
	}
	T.sort()
	return T
}

// Aggregate joins the protein and lipid contacts on frame and anchor atom, resolves
// the three atoms of each match to their residues in S, and counts the matches per
// (anchor residue, protein residue) pair. Nothing is returned if an atom can't be
// resolved.
func Aggregate(S *Structure, prot, lipid []Contact) (*Table, error) {
	joined := Join(prot, lipid)
	triples, err := Resolve(S, joined)
	if err != nil {
		return nil, errDecorate(err, "Aggregate")
	}
	T := Count(triples)
	logger.Debug().Int("joined", len(joined)).Int("pairs", T.Len()).Msg("contacts aggregated")
	return T, nil
}

// Table is the aggregated result: one row per distinct residue pair, sorted by
// anchor residue and then protein residue.
type Table struct {
	Rows []AggregateRow
}

var tableColumns = []string{"anchorResidue", "protResidue", "count"}

// Columns returns the column names of the table, in order.
func (T *Table) Columns() []string {
	return append([]string(nil), tableColumns...)
}

// Len returns the number of rows.
func (T *Table) Len() int {
	if T == nil {
		return 0
	}
	return len(T.Rows)
}

// Empty is true if the table has no rows. Counts are never zero, so a table
// with rows is never mistaken for an empty one.
func (T *Table) Empty() bool {
	return T.Len() == 0
}

// Total returns the sum of all counts, i.e. the number of three-way contacts.
func (T *Table) Total() int {
	if T == nil {
		return 0
	}
	n := 0
	for _, r := range T.Rows {
		n += r.Count
	}
	return n
}

// Get returns the count for the given residue pair.
func (T *Table) Get(anchor, prot int) (int, bool) {
	if T == nil {
		return 0, false
	}
	i := sort.Search(len(T.Rows), func(i int) bool {
		r := T.Rows[i]
		return r.Anchor > anchor || (r.Anchor == anchor && r.Prot >= prot)
	})
	if i < len(T.Rows) && T.Rows[i].Anchor == anchor && T.Rows[i].Prot == prot {
		return T.Rows[i].Count, true
	}
	return 0, false
}

// Top returns the n rows with the largest counts, ties broken by residue ids.
// If n <= 0 or larger than the table, all rows are returned.
func (T *Table) Top(n int) []AggregateRow {
	if T == nil {
		return nil
	}
	rows := append([]AggregateRow(nil), T.Rows...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })
	if n > 0 && n < len(rows) {
		rows = rows[:n]
	}
	return rows
}

func (T *Table) sort() {
	sort.Slice(T.Rows, func(i, j int) bool {
		if T.Rows[i].Anchor != T.Rows[j].Anchor {
			return T.Rows[i].Anchor < T.Rows[j].Anchor
		}
		return T.Rows[i].Prot < T.Rows[j].Prot
	})
}
