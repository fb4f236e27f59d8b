/*
 * doc.go, part of tricontact.
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

/*
Package tricontact counts three-way contacts in molecular dynamics trajectories.

A three-way contact happens when, in a given frame, an anchor atom (typically
an ion, such as Ca2+) is in contact both with a protein atom and with a lipid
atom. The contacts are read from two listings produced by a trajectory analysis,
one for anchor-protein contacts and one for anchor-lipid contacts, and the atoms
are mapped to residues with the atom section of a PSF file.

	**tricontact capabilities**

    Reads the atom section (!NATOM) of PSF files.

    Reads frame-by-frame contact listings, where each line has the frame number,
	a count field, and pairs of atom indexes.

    Reads both formats plain, or compressed with gzip (.gz) or zstd (.zst).

    Joins the two listings on frame and anchor atom, resolves all atoms to their
	residues, and counts the contacts per (anchor residue, protein residue) pair.

    Writes the result as CSV, with the columns anchorResidue, protResidue and count.

The sub-packages build on the aggregated Table: contactmap turns it into a
residue-by-residue matrix, histo gives per-frame statistics, chemplot draws
heat maps and bar charts, and store keeps results across runs.

All errors returned by the parsing and aggregation functions are *Error values, which
can be checked against ErrSourceNotFound, ErrFormat, ErrResolution and ErrEmptyResult
with errors.Is.
*/
package tricontact
