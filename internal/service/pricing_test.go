package service

import "testing"

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name       string
		calculated float64
		total      float64
		discount   float64
		shipping   float64
	}{
		{"below threshold", 500, 520, 0, 20},
		{"at threshold", 999, 1019, 0, 20},
		{"just above threshold", 999.5, 919.5, 100, 20},
		{"above threshold", 1000, 920, 100, 20},
		{"large order", 5000, 4920, 100, 20},
		{"empty-ish total still ships", 0, 20, 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, discount, shipping := ComputeTotal(tt.calculated)
			if total != tt.total || discount != tt.discount || shipping != tt.shipping {
				t.Errorf("ComputeTotal(%v) = %v/%v/%v, want %v/%v/%v",
					tt.calculated, total, discount, shipping, tt.total, tt.discount, tt.shipping)
			}
		})
	}
}
