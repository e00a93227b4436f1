package geoutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name                               string
		startLng, startLat, endLng, endLat float64
		want                               float64
	}{
		{"same point", 121.455244, 31.234076, 121.455244, 31.234076, 0},
		{"shanghai downtown", 121.455244, 31.234076, 121.488301, 31.237534, 3.2},
		{"one degree of longitude on the equator", 0, 0, 1, 0, 111.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Distance(tt.startLng, tt.startLat, tt.endLng, tt.endLat), 1e-9)
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := Distance(116.397128, 39.916527, 121.473701, 31.230416)
	b := Distance(121.473701, 31.230416, 116.397128, 39.916527)
	assert.Equal(t, a, b)
	assert.InDelta(t, 1070.1, a, 1e-9)
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 0.2, roundHalfUp(0.15000001, 1))
	assert.Equal(t, 1.0, roundHalfUp(0.95, 1))
	assert.Equal(t, 3.0, roundHalfUp(3.04, 1))
}
