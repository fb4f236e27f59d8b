/*
 * csv.go, part of tricontact.
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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// WriteCSVTo writes the table as comma-separated values, with a header line
// and no index column.
func (T *Table) WriteCSVTo(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tableColumns); err != nil {
		return err
	}
	rec := make([]string, 3)
	for _, r := range T.Rows {
		rec[0] = strconv.Itoa(r.Anchor)
		rec[1] = strconv.Itoa(r.Prot)
		rec[2] = strconv.Itoa(r.Count)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSV writes the table to the file in path, creating its directory if needed.
// An existing file is overwritten.
func WriteCSV(T *Table, path string) error {
	if T == nil {
		return fmt.Errorf("WriteCSV: nil table")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := T.WriteCSVTo(out); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}

// ReadCSV reads a table written by WriteCSVTo.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(tableColumns)
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("ReadCSV: missing header")
	}
	for i, c := range tableColumns {
		if recs[0][i] != c {
			return nil, fmt.Errorf("ReadCSV: column %d is %q, expected %q", i+1, recs[0][i], c)
		}
	}
	T := &Table{Rows: make([]AggregateRow, 0, len(recs)-1)}
	for n, rec := range recs[1:] {
		var row AggregateRow
		var errs [3]error
		row.Anchor, errs[0] = strconv.Atoi(rec[0])
		row.Prot, errs[1] = strconv.Atoi(rec[1])
		row.Count, errs[2] = strconv.Atoi(rec[2])
		for _, e := range errs {
			if e != nil {
				return nil, fmt.Errorf("ReadCSV: line %d: %w", n+2, e)
			}
		}
		T.Rows = append(T.Rows, row)
	}
	T.sort()
	return T, nil
}
