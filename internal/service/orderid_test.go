package service

import (
	"strings"
	"testing"
)

func TestNewOrderID(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		id, err := newOrderID()
		if err != nil {
			t.Fatalf("newOrderID: %v", err)
		}
		if !strings.HasPrefix(id, "OD-") {
			t.Fatalf("id %q missing OD- prefix", id)
		}
		if len(id) != 11 {
			t.Fatalf("id %q has length %d, want 11", id, len(id))
		}
		for _, r := range id[3:] {
			if !strings.ContainsRune(orderIDAlphabet, r) {
				t.Fatalf("id %q contains %q outside alphabet", id, r)
			}
		}
		if seen[id] {
			t.Fatalf("duplicate id %q in 1000 draws", id)
		}
		seen[id] = true
	}
}
