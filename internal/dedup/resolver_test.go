package dedup

import (
	"reflect"
	"testing"
)

func testItems() []Item {
	return []Item{
		{Title: "하나투어 46기 인턴 모집", Date: "2025-08-12", Priority: 2},
		{Title: "[단독] 하나투어 46기 인턴 모집", Date: "2025-08-11", Priority: 1},
		{Title: "하나투어 47기 인턴 모집", Date: "2025-08-12", Priority: 1},
		{Title: "하나투어 46기 인턴 모집", Date: "2025-08-13", Priority: 3},
	}
}

func TestResolveSeedClustering(t *testing.T) {
	r := NewResolver(NewMatcher())
	kept := r.Resolve(testItems(), "하나투어")

	// Items 0, 1 and 3 are the same cohort story; item 2 is a different
	// cohort. The priority-1 report represents the group.
	want := []int{1, 2}
	if !reflect.DeepEqual(kept, want) {
		t.Errorf("Resolve = %v, want %v", kept, want)
	}
}

func TestResolveDeterministic(t *testing.T) {
	r := NewResolver(NewMatcher())
	first := r.Resolve(testItems(), "하나투어")
	for i := 0; i < 5; i++ {
		if got := r.Resolve(testItems(), "하나투어"); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %v vs %v", i, got, first)
		}
	}
}

func TestResolveTieBreakDirection(t *testing.T) {
	items := []Item{
		{Title: "카드 할인 이벤트 진행", Date: "2025-08-12", Priority: 1},
		{Title: "카드 할인 이벤트 실시", Date: "2025-08-10", Priority: 1},
	}

	r := NewResolver(NewMatcher())
	if kept := r.Resolve(items, "할인"); !reflect.DeepEqual(kept, []int{1}) {
		t.Errorf("earliest tie-break kept %v, want [1]", kept)
	}

	r.TieBreak = TieBreakLatest
	if kept := r.Resolve(items, "할인"); !reflect.DeepEqual(kept, []int{0}) {
		t.Errorf("latest tie-break kept %v, want [0]", kept)
	}
}

func TestResolvePriorityBeatsDate(t *testing.T) {
	items := []Item{
		{Title: "야놀자 신규 서비스 출시 발표", Date: "2025-08-10", Priority: 3},
		{Title: "야놀자 신규 서비스 출시 공개", Date: "2025-08-12", Priority: 1},
	}
	r := NewResolver(NewMatcher())
	if kept := r.Resolve(items, "야놀자"); !reflect.DeepEqual(kept, []int{1}) {
		t.Errorf("kept %v, want the priority-1 report", kept)
	}
}

func TestResolveUndatedSortsLast(t *testing.T) {
	items := []Item{
		{Title: "야놀자 신규 서비스 출시 발표", Date: "", Priority: 1},
		{Title: "야놀자 신규 서비스 출시 공개", Date: "2025-08-12", Priority: 1},
	}
	r := NewResolver(NewMatcher())
	if kept := r.Resolve(items, "야놀자"); !reflect.DeepEqual(kept, []int{1}) {
		t.Errorf("kept %v, want the dated report", kept)
	}
}

func TestResolveEmpty(t *testing.T) {
	r := NewResolver(NewMatcher())
	if kept := r.Resolve(nil, "하나투어"); kept != nil {
		t.Errorf("Resolve(nil) = %v, want nil", kept)
	}
}

func TestTransitiveClustering(t *testing.T) {
	// A matches B and B matches C, but A and C share too little directly.
	items := []Item{
		{Title: "가 나 다 라", Priority: 1},
		{Title: "다 라 마 바", Priority: 1},
		{Title: "마 바 사 아", Priority: 1},
	}
	similar := func(a, b Item) bool {
		return jaccard(wordSet(a.Title), wordSet(b.Title)) >= 0.3
	}

	seed := SeedOnly{}.Cluster(items, similar)
	if len(seed) != 2 {
		t.Errorf("seed clustering groups = %d, want 2", len(seed))
	}

	trans := Transitive{}.Cluster(items, similar)
	if len(trans) != 1 {
		t.Errorf("transitive clustering groups = %d, want 1", len(trans))
	}
}
