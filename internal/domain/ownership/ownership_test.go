package ownership

import (
	"testing"

	"github.com/google/uuid"
)

func TestDecide(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	cases := []struct {
		name   string
		kind   Kind
		exists bool
		owner  uuid.UUID
		want   Decision
	}{
		{"shared exists", KindBullet, true, uuid.Nil, Allow()},
		{"shared missing", KindCartridge, false, uuid.Nil, Deny(ReasonNotFound)},
		{"owned by requester", KindRifle, true, alice, Allow()},
		{"owned by other", KindRifle, true, bob, Deny(ReasonNotOwner)},
		{"owned missing", KindRange, false, alice, Deny(ReasonNotFound)},
		{"session by other", KindSession, true, bob, Deny(ReasonNotOwner)},
	}
	for _, tc := range cases {
		if got := Decide(tc.kind, tc.exists, tc.owner, alice); got != tc.want {
			t.Fatalf("%s: want=%+v got=%+v", tc.name, tc.want, got)
		}
	}
}

func TestVisibility(t *testing.T) {
	for _, k := range []Kind{KindRifle, KindChronographSeries, KindWeatherSeries, KindRange, KindSession} {
		if VisibilityOf(k) != VisibilityOwned {
			t.Fatalf("%s should be owned", k)
		}
	}
	if VisibilityOf(KindBullet) != VisibilityShared || VisibilityOf(KindCartridge) != VisibilityShared {
		t.Fatalf("catalog kinds should be shared")
	}
}
