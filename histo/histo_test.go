package histo

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	tri "github.com/rmera/tricontact"
)

func TestFrameCounts(Te *testing.T) {
	triples := []tri.ResidueTriple{
		{Frame: 1}, {Frame: 1}, {Frame: 1},
		{Frame: 2},
		{Frame: 4}, {Frame: 4}, {Frame: 4},
	}
	D := FrameCounts(triples, []int{1, 2, 3, 4})
	fmt.Println(D)
	if !reflect.DeepEqual(D.Frames(), []int{1, 2, 3, 4}) {
		Te.Errorf("unexpected frames %v", D.Frames())
	}
	if !reflect.DeepEqual(D.PerFrame(), []float64{3, 1, 0, 3}) {
		Te.Errorf("unexpected per-frame counts %v", D.PerFrame())
	}
	//one frame with 0, one with 1, none with 2, two with 3
	if !reflect.DeepEqual(D.View(), []float64{1, 1, 0, 2}) {
		Te.Errorf("unexpected histogram %v", D.View())
	}
	S := D.Summary()
	if S.Frames != 4 || S.Busy != 3 || S.Total != 7 || S.Max != 3 || S.Mean != 1.75 {
		Te.Errorf("unexpected summary %v", S)
	}
	//sample standard deviation of 3,1,0,3
	if math.Abs(S.StdDev-1.5) > 1e-12 {
		Te.Errorf("unexpected std dev %v", S.StdDev)
	}
	D.Normalize()
	if !reflect.DeepEqual(D.View(), []float64{0.25, 0.25, 0, 0.5}) {
		Te.Errorf("unexpected normalized histogram %v", D.View())
	}
	D.Normalize()
	if D.View()[3] != 0.5 {
		Te.Errorf("normalizing twice should do nothing")
	}
	D.ReHisto(IntDividers(3))
	if D.Normalized() || !reflect.DeepEqual(D.View(), []float64{1, 1, 0, 2}) {
		Te.Errorf("unexpected histogram after rebuilding it %v", D.View())
	}
}

func TestReHisto(Te *testing.T) {
	D := FrameCounts([]tri.ResidueTriple{{Frame: 1}, {Frame: 1}, {Frame: 2}}, []int{1, 2, 3})
	D.ReHisto([]float64{1, 2})
	//only frame 2 (one contact) is in [1,2)
	if !reflect.DeepEqual(D.View(), []float64{1}) {
		Te.Errorf("unexpected histogram %v", D.View())
	}
	if D.Summary().Total != 3 {
		Te.Errorf("the summary should use all frames")
	}
}

func TestFrameCountsEmpty(Te *testing.T) {
	D := FrameCounts(nil, nil)
	if S := D.Summary(); S.Frames != 0 || S.Total != 0 {
		Te.Errorf("unexpected summary %v", S)
	}
	if !reflect.DeepEqual(D.Dividers(), []float64{0, 1}) {
		Te.Errorf("unexpected dividers %v", D.Dividers())
	}
}
