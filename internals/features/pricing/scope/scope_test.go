package scope

import (
	"testing"

	"github.com/google/uuid"
)

func TestOf(t *testing.T) {
	uid := uuid.MustParse("6a78a9a8-3f2b-4a8e-9a35-0d8f2f6c1a11")

	tests := []struct {
		name      string
		callerID  *uuid.UUID
		wantTag   string
		wantIsGbl bool
	}{
		{"nil caller → GLOBAL", nil, "GLOBAL", true},
		{"nil uuid → GLOBAL", &uuid.Nil, "GLOBAL", true},
		{"caller → user scope", &uid, "u:" + uid.String(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Of(tt.callerID)
			if got.Tag() != tt.wantTag {
				t.Errorf("Of() tag = %q, want %q", got.Tag(), tt.wantTag)
			}
			if got.IsGlobal() != tt.wantIsGbl {
				t.Errorf("Of() IsGlobal = %v, want %v", got.IsGlobal(), tt.wantIsGbl)
			}
		})
	}
}

func TestOfIsStable(t *testing.T) {
	uid := uuid.MustParse("2e9d5c3b-1b70-4a2f-8f44-9a1c2d3e4f55")
	a := Of(&uid)
	b := Of(&uid)
	if a != b {
		t.Errorf("Of() not stable: %v != %v", a, b)
	}
}

func TestParseTagRoundTrip(t *testing.T) {
	uid := uuid.MustParse("6a78a9a8-3f2b-4a8e-9a35-0d8f2f6c1a11")

	for _, s := range []Scope{Global(), ForUser(uid)} {
		got, ok := ParseTag(s.Tag())
		if !ok || got != s {
			t.Errorf("ParseTag(%q) = %v, %v; want %v, true", s.Tag(), got, ok, s)
		}
	}

	for _, bad := range []string{"", "global", "u:", "u:not-a-uuid", "x:123"} {
		if _, ok := ParseTag(bad); ok {
			t.Errorf("ParseTag(%q) ok = true, want false", bad)
		}
	}
}

type row struct {
	Key string
	Val int
}

func keyOf(r row) string { return r.Key }

func TestMergeOverrideUserWins(t *testing.T) {
	global := []row{{"A", 1}, {"B", 2}, {"C", 3}}
	user := []row{{"B", 20}, {"D", 40}}

	got := MergeOverride(user, global, keyOf)
	want := []row{{"A", 1}, {"B", 20}, {"C", 3}, {"D", 40}}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("merged[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMergeOverrideEdges(t *testing.T) {
	global := []row{{"A", 1}, {"B", 2}}
	user := []row{{"B", 20}}

	t.Run("empty user yields global", func(t *testing.T) {
		got := MergeOverride(nil, global, keyOf)
		if len(got) != 2 || got[0] != global[0] || got[1] != global[1] {
			t.Errorf("got %v, want %v", got, global)
		}
	})

	t.Run("empty global yields user", func(t *testing.T) {
		got := MergeOverride(user, nil, keyOf)
		if len(got) != 1 || got[0] != user[0] {
			t.Errorf("got %v, want %v", got, user)
		}
	})

	t.Run("both empty", func(t *testing.T) {
		if got := MergeOverride(nil, nil, keyOf); len(got) != 0 {
			t.Errorf("got %v, want empty", got)
		}
	})

	t.Run("idempotent: merge with itself", func(t *testing.T) {
		got := MergeOverride(global, global, keyOf)
		if len(got) != 2 || got[0] != global[0] || got[1] != global[1] {
			t.Errorf("got %v, want %v", got, global)
		}
	})

	t.Run("duplicate key in one input keeps last", func(t *testing.T) {
		got := MergeOverride(nil, []row{{"A", 1}, {"A", 9}}, keyOf)
		if len(got) != 1 || got[0].Val != 9 {
			t.Errorf("got %v, want [{A 9}]", got)
		}
	})
}
