package strings

import (
	"reflect"
	"testing"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "removes duplicates preserving order",
			in: []string{
				"Accident forgiveness not available",
				"Flood damage excluded (separate flood insurance required)",
				"Accident forgiveness not available",
			},
			want: []string{
				"Accident forgiveness not available",
				"Flood damage excluded (separate flood insurance required)",
			},
		},
		{
			name: "trims whitespace and drops empties",
			in:   []string{"  foo ", "", "   ", "foo", "bar"},
			want: []string{"foo", "bar"},
		},
		{
			name: "nil stays nil",
			in:   nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DedupeAndTrim(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("DedupeAndTrim(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
