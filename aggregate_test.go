package tricontact

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func threeResidues(Te *testing.T) *Structure {
	Te.Helper()
	S, err := NewStructure([]*Atom{
		{ID: 1, Molid: 100, Molname: "CAL"},
		{ID: 2, Molid: 200, Molname: "ASP"},
		{ID: 3, Molid: 300, Molname: "POPC"},
	})
	if err != nil {
		Te.Fatal(err)
	}
	return S
}

func TestJoinCrossProduct(Te *testing.T) {
	prot := []Contact{{Frame: 1, Anchor: 5, Partner: 9}}
	lipid := []Contact{{Frame: 1, Anchor: 5, Partner: 20}, {Frame: 1, Anchor: 5, Partner: 21}}
	j := Join(prot, lipid)
	want := []JoinedContact{
		{Frame: 1, Anchor: 5, Prot: 9, Lipid: 20},
		{Frame: 1, Anchor: 5, Prot: 9, Lipid: 21},
	}
	if !reflect.DeepEqual(j, want) {
		Te.Errorf("got %v, want %v", j, want)
	}
}

func TestJoinInner(Te *testing.T) {
	prot := []Contact{
		{Frame: 1, Anchor: 5, Partner: 9},
		{Frame: 1, Anchor: 5, Partner: 10},
		{Frame: 2, Anchor: 5, Partner: 9}, //no lipid contact in frame 2
		{Frame: 1, Anchor: 6, Partner: 9}, //nor for anchor 6
	}
	lipid := []Contact{
		{Frame: 1, Anchor: 5, Partner: 20},
		{Frame: 1, Anchor: 5, Partner: 21},
		{Frame: 3, Anchor: 5, Partner: 20},
	}
	j := Join(prot, lipid)
	if len(j) != 4 {
		Te.Fatalf("expected the 2x2 cross product, got %v", j)
	}
	for _, v := range j {
		if v.Frame != 1 || v.Anchor != 5 {
			Te.Errorf("unexpected match %v", v)
		}
	}
	if len(Join(nil, lipid)) != 0 || len(Join(prot, nil)) != 0 {
		Te.Errorf("joining with an empty set should give nothing")
	}
}

func TestAggregateEndToEnd(Te *testing.T) {
	S := threeResidues(Te)
	T, err := Aggregate(S, []Contact{{1, 1, 2}}, []Contact{{1, 1, 3}})
	if err != nil {
		Te.Fatal(err)
	}
	want := []AggregateRow{{Anchor: 100, Prot: 200, Count: 1}}
	if !reflect.DeepEqual(T.Rows, want) {
		Te.Errorf("got %v, want %v", T.Rows, want)
	}
	for _, r := range T.Rows {
		if r.Anchor == 300 || r.Prot == 300 {
			Te.Errorf("the lipid residue must not be in the output")
		}
	}
}

func TestAggregateMultiplicity(Te *testing.T) {
	S := threeResidues(Te)
	prot := []Contact{{1, 1, 2}, {2, 1, 2}}
	lipid := []Contact{{1, 1, 3}, {2, 1, 3}}
	T, err := Aggregate(S, prot, lipid)
	if err != nil {
		Te.Fatal(err)
	}
	if T.Len() != 1 {
		Te.Fatalf("expected one row, got %v", T.Rows)
	}
	if c, ok := T.Get(100, 200); !ok || c != 2 {
		Te.Errorf("expected count 2, got %d", c)
	}
	if T.Total() != 2 {
		Te.Errorf("the total should be the number of triples, got %d", T.Total())
	}
}

func TestAggregateIdempotent(Te *testing.T) {
	S, err := ReadStructure(strings.NewReader(testPSF), "inline")
	if err != nil {
		Te.Fatal(err)
	}
	prot := []Contact{{1, 5, 1}, {1, 5, 3}, {1, 6, 2}, {2, 5, 1}, {2, 6, 3}, {3, 6, 3}}
	lipid := []Contact{{1, 5, 4}, {1, 6, 4}, {2, 5, 4}, {2, 6, 4}, {2, 6, 4}}
	T1, err := Aggregate(S, prot, lipid)
	if err != nil {
		Te.Fatal(err)
	}
	T2, err := Aggregate(S, prot, lipid)
	if err != nil {
		Te.Fatal(err)
	}
	if !reflect.DeepEqual(T1, T2) {
		Te.Errorf("different results for the same input: %v %v", T1.Rows, T2.Rows)
	}
	want := []AggregateRow{
		{Anchor: 400, Prot: 100, Count: 2},
		{Anchor: 400, Prot: 200, Count: 1},
		{Anchor: 401, Prot: 100, Count: 1},
		{Anchor: 401, Prot: 200, Count: 2},
	}
	if !reflect.DeepEqual(T1.Rows, want) {
		Te.Errorf("got %v, want %v", T1.Rows, want)
	}
	if T1.Total() != len(Join(prot, lipid)) {
		Te.Errorf("counts don't add up to the joined contacts")
	}
}

func TestAggregateResolutionError(Te *testing.T) {
	S := threeResidues(Te)
	cases := map[string][2][]Contact{
		"anchor":  {{{1, 9, 2}}, {{1, 9, 3}}},
		"protein": {{{1, 1, 9}}, {{1, 1, 3}}},
		"lipid":   {{{1, 1, 2}}, {{1, 1, 9}}},
	}
	for role, c := range cases {
		T, err := Aggregate(S, c[0], c[1])
		if T != nil {
			Te.Errorf("%s: no table should be produced", role)
		}
		if !errors.Is(err, ErrResolution) {
			Te.Errorf("%s: expected a resolution error, got %v", role, err)
			continue
		}
		if !strings.Contains(err.Error(), role) {
			Te.Errorf("%s: the error should name the role: %v", role, err)
		}
	}
	//Unmatched contacts are never resolved, so unknown atoms there are fine.
	if _, err := Aggregate(S, []Contact{{1, 1, 2}, {5, 42, 43}}, []Contact{{1, 1, 3}}); err != nil {
		Te.Errorf("unexpected error %v", err)
	}
	if _, err := Aggregate(nil, nil, nil); !errors.Is(err, ErrResolution) {
		Te.Errorf("expected a resolution error for a nil structure, got %v", err)
	}
}

func TestAggregateEmpty(Te *testing.T) {
	T, err := Aggregate(threeResidues(Te), []Contact{{1, 1, 2}}, []Contact{{2, 1, 3}})
	if err != nil {
		Te.Fatal(err)
	}
	if T == nil || !T.Empty() {
		Te.Fatalf("expected an empty, non-nil table")
	}
	var buf bytes.Buffer
	if err := T.WriteCSVTo(&buf); err != nil {
		Te.Fatal(err)
	}
	if buf.String() != "anchorResidue,protResidue,count\n" {
		Te.Errorf("unexpected output %q", buf.String())
	}
}

func TestTableTop(Te *testing.T) {
	T := &Table{Rows: []AggregateRow{{1, 1, 3}, {1, 2, 7}, {2, 1, 3}, {2, 5, 1}}}
	top := T.Top(3)
	want := []AggregateRow{{1, 2, 7}, {1, 1, 3}, {2, 1, 3}}
	if !reflect.DeepEqual(top, want) {
		Te.Errorf("got %v, want %v", top, want)
	}
	if len(T.Top(0)) != 4 {
		Te.Errorf("Top(0) should return all rows")
	}
}

func TestCSVRoundTrip(Te *testing.T) {
	T := &Table{Rows: []AggregateRow{{100, 200, 2}, {100, 201, 1}, {101, 5, 9}}}
	path := filepath.Join(Te.TempDir(), "results", "out.csv")
	if err := WriteCSV(T, path); err != nil {
		Te.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		Te.Fatal(err)
	}
	want := "anchorResidue,protResidue,count\n100,200,2\n100,201,1\n101,5,9\n"
	if string(b) != want {
		Te.Errorf("got %q, want %q", b, want)
	}
	T2, err := ReadCSV(bytes.NewReader(b))
	if err != nil {
		Te.Fatal(err)
	}
	if !reflect.DeepEqual(T, T2) {
		Te.Errorf("got %v back, want %v", T2.Rows, T.Rows)
	}
	if _, err := ReadCSV(strings.NewReader("a,protResidue,count\n")); err == nil {
		Te.Errorf("a wrong header should be rejected")
	}
}

// The full pipeline through files, as the command line tool runs it.
func TestPipelineFiles(Te *testing.T) {
	psf := writeFile(Te, "sys.psf", testPSF)
	prot := writeFile(Te, "ca_prot.dat", "0 2 5 1 6 3\n1 1 5 2\n2 1 6 3\n")
	lipid := writeFile(Te, "ca_lipid.dat", "0 1 5 4\n1 2 5 4 6 4\n2 0\n")
	S, err := ParseStructure(psf)
	if err != nil {
		Te.Fatal(err)
	}
	pc, err := ParseContacts(prot)
	if err != nil {
		Te.Fatal(err)
	}
	lc, err := ParseContacts(lipid)
	if err != nil {
		Te.Fatal(err)
	}
	T, err := Aggregate(S, pc, lc)
	if err != nil {
		Te.Fatal(err)
	}
	want := []AggregateRow{{Anchor: 400, Prot: 100, Count: 2}}
	if !reflect.DeepEqual(T.Rows, want) {
		Te.Errorf("got %v, want %v", T.Rows, want)
	}
}
