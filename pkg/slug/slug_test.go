package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"doctor title", "Dr. Pankaj Kumar Chaurasiya", "dr-pankaj-kumar-chaurasiya"},
		{"extra whitespace", "  Dr.  Anita   Chaurasiya ", "dr-anita-chaurasiya"},
		{"punctuation only", "--!!--", ""},
		{"digits kept", "Room 12B", "room-12b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.input))
		})
	}
}
