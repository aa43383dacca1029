package sessions

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/dopebook-backend/internal/ballistics/units"
)

func TestFilterMatches(t *testing.T) {
	rifle := uuid.New()
	start := time.Date(2025, 5, 3, 9, 0, 0, 0, time.UTC)
	s := &Session{
		Name:              "Spring load work",
		RifleID:           rifle,
		StartTime:         start,
		BulletWeightGrams: units.GrainsToGrams(175.2),
	}

	grains := 175.0
	other := uuid.New()
	before := start.Add(-time.Hour)
	after := start.Add(time.Hour)

	cases := []struct {
		name string
		f    Filter
		want bool
	}{
		{"empty", Filter{}, true},
		{"rifle", Filter{RifleID: &rifle}, true},
		{"other rifle", Filter{RifleID: &other}, false},
		{"range unset on session", Filter{RangeID: &other}, false},
		{"window", Filter{From: &before, To: &after}, true},
		{"starts too early", Filter{From: &after}, false},
		{"name case-insensitive", Filter{NameContains: "LOAD"}, true},
		{"name miss", Filter{NameContains: "zero"}, false},
		{"grains within default tolerance", Filter{BulletWeightGrains: &grains}, true},
		{"grains outside tight tolerance", Filter{BulletWeightGrains: &grains, GrainsTolerance: 0.1}, false},
	}
	for _, tc := range cases {
		if got := tc.f.Matches(s); got != tc.want {
			t.Fatalf("%s: want=%v got=%v", tc.name, tc.want, got)
		}
	}
}

func TestGramsBounds(t *testing.T) {
	if _, _, ok := (Filter{}).GramsBounds(); ok {
		t.Fatalf("no grains predicate should report !ok")
	}
	g := 140.0
	lo, hi, ok := Filter{BulletWeightGrains: &g, GrainsTolerance: 1}.GramsBounds()
	if !ok || lo >= hi {
		t.Fatalf("bounds: lo=%f hi=%f ok=%v", lo, hi, ok)
	}
	if lo != units.GrainsToGrams(139) || hi != units.GrainsToGrams(141) {
		t.Fatalf("bounds: lo=%f hi=%f", lo, hi)
	}
}
