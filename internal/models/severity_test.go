package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySeverity(t *testing.T) {
	tests := []struct {
		name string
		dnbr float64
		want Severity
	}{
		{"very high", 0.8, SeverityVeryHigh},
		{"very high lower bound", 0.66, SeverityVeryHigh},
		{"high", 0.5, SeverityHigh},
		{"high lower bound", 0.44, SeverityHigh},
		{"moderate", 0.3, SeverityModerate},
		{"moderate lower bound", 0.27, SeverityModerate},
		{"low", 0.15, SeverityLow},
		{"low lower bound", 0.10, SeverityLow},
		{"just below detection threshold", 0.0999, SeverityUnburned},
		{"zero", 0, SeverityUnburned},
		{"regrowth", -0.2, SeverityUnburned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySeverity(tt.dnbr))
		})
	}
}
