package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoverageService(t *testing.T) {
	svc := NewCoverageService([]string{"Centro", " norte ", "", "sur"})

	assert.Equal(t, []string{"centro", "norte", "sur"}, svc.Zones())

	tests := []struct {
		zone string
		want bool
	}{
		{"centro", true},
		{"CENTRO", true},
		{" Norte ", true},
		{"oriente", false},
		{"", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, svc.HasCoverage(tc.zone), "zone %q", tc.zone)
	}
}
