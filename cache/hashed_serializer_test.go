package cache

import (
	"strings"
	"testing"
)

func TestHashedSerializer_ShortKeysPassThrough(t *testing.T) {
	s := NewHashedKeySerializer(nil, 64)

	got := s.SerializeKey("users.Find", "active")
	if got != "users.Find::active" {
		t.Errorf("short key should be untouched, got %q", got)
	}
}

func TestHashedSerializer_OversizedKeysAreDigested(t *testing.T) {
	s := NewHashedKeySerializer(nil, 32)

	long := strings.Repeat("x", 100)
	got := s.SerializeKey("users.Find", long)

	if !strings.HasPrefix(got, "users.Find"+KeySeparator+"xxh64:") {
		t.Fatalf("expected statement prefix plus digest, got %q", got)
	}
	// Statement id, separator, label and 16 hex digits.
	wantLen := len("users.Find") + len(KeySeparator) + len("xxh64:") + 16
	if len(got) != wantLen {
		t.Errorf("expected digest key of length %d, got %d (%q)", wantLen, len(got), got)
	}
}

func TestHashedSerializer_DigestIsStable(t *testing.T) {
	s := NewHashedKeySerializer(nil, 16)

	long := strings.Repeat("y", 50)
	first := s.SerializeKey("stmt", long)
	second := s.SerializeKey("stmt", long)
	if first != second {
		t.Errorf("digest keys must be stable: %q vs %q", first, second)
	}
}

func TestHashedSerializer_DifferentArgsDifferentDigests(t *testing.T) {
	s := NewHashedKeySerializer(nil, 16)

	a := s.SerializeKey("stmt", strings.Repeat("a", 50))
	b := s.SerializeKey("stmt", strings.Repeat("b", 50))
	if a == b {
		t.Error("different arguments should digest differently")
	}
}

func TestHashedSerializer_Defaults(t *testing.T) {
	s := NewHashedKeySerializer(nil, 0)

	// A key exactly at the default bound passes through untouched.
	arg := strings.Repeat("z", DefaultMaxKeyLength-len("s")-len(KeySeparator))
	got := s.SerializeKey("s", arg)
	if len(got) != DefaultMaxKeyLength {
		t.Fatalf("expected key of length %d, got %d", DefaultMaxKeyLength, len(got))
	}
	if strings.Contains(got, "xxh64:") {
		t.Error("key at the bound should not be digested")
	}
}
