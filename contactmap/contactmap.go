// Package contactmap turns an aggregated contact table into a matrix with one row per
// anchor residue and one column per protein residue.
package contactmap

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	tri "github.com/rmera/tricontact"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Map is a residue-by-residue contact count matrix.
type Map struct {
	anchors  []int
	partners []int
	arow     map[int]int
	pcol     map[int]int
	counts   *mat.Dense //nil if there are no contacts, as gonum doesn't allow empty matrices.
}

// New builds the contact map for the table. Rows and columns are sorted by residue id.
func New(T *tri.Table) *Map {
	M := &Map{arow: make(map[int]int), pcol: make(map[int]int)}
	if T.Empty() {
		return M
	}
	for _, r := range T.Rows {
		if _, ok := M.arow[r.Anchor]; !ok {
			M.arow[r.Anchor] = 0
			M.anchors = append(M.anchors, r.Anchor)
		}
		if _, ok := M.pcol[r.Prot]; !ok {
			M.pcol[r.Prot] = 0
			M.partners = append(M.partners, r.Prot)
		}
	}
	sort.Ints(M.anchors)
	sort.Ints(M.partners)
	for i, v := range M.anchors {
		M.arow[v] = i
	}
	for i, v := range M.partners {
		M.pcol[v] = i
	}
	M.counts = mat.NewDense(len(M.anchors), len(M.partners), nil)
	for _, r := range T.Rows {
		i, j := M.arow[r.Anchor], M.pcol[r.Prot]
		M.counts.Set(i, j, M.counts.At(i, j)+float64(r.Count))
	}
	return M
}

// Dims returns the number of anchor residues and of protein residues.
func (M *Map) Dims() (int, int) {
	return len(M.anchors), len(M.partners)
}

// Anchors returns the anchor residue ids, in row order.
func (M *Map) Anchors() []int { return M.anchors }

// Partners returns the protein residue ids, in column order.
func (M *Map) Partners() []int { return M.partners }

// At returns the count for the given anchor and protein residues, 0 if they
// never were in contact.
func (M *Map) At(anchor, prot int) int {
	i, ok := M.arow[anchor]
	if !ok {
		return 0
	}
	j, ok := M.pcol[prot]
	if !ok {
		return 0
	}
	return int(M.counts.At(i, j))
}

// Value returns the count in the i-th row and j-th column.
func (M *Map) Value(i, j int) float64 {
	return M.counts.At(i, j)
}

// Dense returns a copy of the count matrix, or nil for an empty map.
func (M *Map) Dense() *mat.Dense {
	if M.counts == nil {
		return nil
	}
	return mat.DenseCopyOf(M.counts)
}

// RowFractions returns a matrix where each row of counts is divided by its sum,
// i.e. the fraction of the contacts of each anchor residue that involve each
// protein residue. It returns nil for an empty map.
func (M *Map) RowFractions() *mat.Dense {
	if M.counts == nil {
		return nil
	}
	r, c := M.counts.Dims()
	ret := mat.NewDense(r, c, nil)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, M.counts)
		if s := floats.Sum(row); s > 0 {
			floats.Scale(1/s, row)
		}
		ret.SetRow(i, row)
	}
	return ret
}

// WriteCSV writes the map as a CSV matrix. The first row holds the protein residue
// ids, the first column the anchor residue ids.
func (M *Map) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	rec := make([]string, len(M.partners)+1)
	rec[0] = "anchorResidue"
	for j, v := range M.partners {
		rec[j+1] = strconv.Itoa(v)
	}
	if err := cw.Write(rec); err != nil {
		return err
	}
	for i, a := range M.anchors {
		rec[0] = strconv.Itoa(a)
		for j := range M.partners {
			rec[j+1] = strconv.Itoa(int(M.counts.At(i, j)))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
