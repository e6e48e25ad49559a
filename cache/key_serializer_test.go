package cache

import (
	"strings"
	"testing"
)

func TestSerializeKey_NoArgs(t *testing.T) {
	s := NewDefaultKeySerializer()
	if got := s.SerializeKey("users.FindAll"); got != "users.FindAll" {
		t.Errorf("expected the bare statement id, got %q", got)
	}
}

func TestSerializeKey_BasicValues(t *testing.T) {
	s := NewDefaultKeySerializer()

	tests := []struct {
		name string
		args []any
		want string
	}{
		{"string and int", []any{"active", 42}, "stmt::active::42"},
		{"bool", []any{true}, "stmt::true"},
		{"float", []any{1.5}, "stmt::1.5"},
		{"nil", []any{nil}, "stmt::nil"},
		{"mixed", []any{"a", nil, 7}, "stmt::a::nil::7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.SerializeKey("stmt", tt.args...); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSerializeKey_Pointers(t *testing.T) {
	s := NewDefaultKeySerializer()

	n := 7
	if got := s.SerializeKey("stmt", &n); got != "stmt::7" {
		t.Errorf("pointer should serialize its referent, got %q", got)
	}

	var nilPtr *int
	if got := s.SerializeKey("stmt", nilPtr); got != "stmt::nil" {
		t.Errorf("nil pointer should serialize as nil, got %q", got)
	}
}

func TestSerializeKey_Slices(t *testing.T) {
	s := NewDefaultKeySerializer()

	if got := s.SerializeKey("stmt", []int{1, 2, 3}); got != "stmt::slice[3]:{1,2,3}" {
		t.Errorf("unexpected slice key %q", got)
	}

	var nilSlice []int
	if got := s.SerializeKey("stmt", nilSlice); got != "stmt::slice:nil" {
		t.Errorf("unexpected nil-slice key %q", got)
	}

	if got := s.SerializeKey("stmt", [2]string{"a", "b"}); got != "stmt::array[2]:{a,b}" {
		t.Errorf("unexpected array key %q", got)
	}
}

func TestSerializeKey_MapsAreOrderIndependent(t *testing.T) {
	s := NewDefaultKeySerializer()

	m := map[string]int{"b": 2, "a": 1, "c": 3}
	want := "stmt::map[3]:{a=1,b=2,c=3}"
	// Run several times: iteration order varies, the key must not.
	for i := 0; i < 10; i++ {
		if got := s.SerializeKey("stmt", m); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}

func TestSerializeKey_Structs(t *testing.T) {
	s := NewDefaultKeySerializer()

	type filter struct {
		Status string
		Limit  int
		hidden string
	}
	got := s.SerializeKey("stmt", filter{Status: "active", Limit: 10, hidden: "x"})
	want := "stmt::struct:{Status:active,Limit:10}"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSerializeKey_FuncsAreStableWithinProcess(t *testing.T) {
	s := NewDefaultKeySerializer()

	fn := func() {}
	first := s.SerializeKey("stmt", fn)
	second := s.SerializeKey("stmt", fn)
	if first != second {
		t.Errorf("same func should give same key: %q vs %q", first, second)
	}
	if !strings.Contains(first, "func:0x") {
		t.Errorf("expected a func pointer segment, got %q", first)
	}
}

func TestSerializeKey_Deterministic(t *testing.T) {
	s := NewDefaultKeySerializer()

	type nested struct {
		IDs  []int
		Tags map[string]bool
	}
	arg := nested{IDs: []int{3, 1}, Tags: map[string]bool{"x": true, "y": false}}

	first := s.SerializeKey("stmt", arg, "page", 2)
	for i := 0; i < 5; i++ {
		if got := s.SerializeKey("stmt", arg, "page", 2); got != first {
			t.Fatalf("key not deterministic: %q vs %q", first, got)
		}
	}
}
