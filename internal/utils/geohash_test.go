package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineMeters(t *testing.T) {
	tests := []struct {
		name      string
		point1    GeoPoint
		point2    GeoPoint
		expected  float64
		tolerance float64
	}{
		{
			name:      "Same point",
			point1:    GeoPoint{Latitude: 38.7223, Longitude: -9.1393},
			point2:    GeoPoint{Latitude: 38.7223, Longitude: -9.1393},
			expected:  0.0,
			tolerance: 0.001,
		},
		{
			name:      "Lisbon to Porto (approximately)",
			point1:    GeoPoint{Latitude: 38.7223, Longitude: -9.1393}, // Lisbon
			point2:    GeoPoint{Latitude: 41.1579, Longitude: -8.6291}, // Porto
			expected:  274000, // Approximately 274 km
			tolerance: 3000,
		},
		{
			name:      "One thousandth of a degree of latitude",
			point1:    GeoPoint{Latitude: 38.7223, Longitude: -9.1393},
			point2:    GeoPoint{Latitude: 38.7233, Longitude: -9.1393},
			expected:  111.19,
			tolerance: 0.05,
		},
		{
			name:      "Cross 180th meridian",
			point1:    GeoPoint{Latitude: 0.0, Longitude: 179.0},
			point2:    GeoPoint{Latitude: 0.0, Longitude: -179.0},
			expected:  222390, // 2 degrees longitude at equator
			tolerance: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HaversineMeters(tt.point1, tt.point2)

			assert.GreaterOrEqual(t, result, 0.0, "Distance should be non-negative")
			assert.InDelta(t, tt.expected, result, tt.tolerance)
		})
	}
}

func TestHaversineMeters_Poles(t *testing.T) {
	northPole := GeoPoint{Latitude: 90.0, Longitude: 0.0}
	southPole := GeoPoint{Latitude: -90.0, Longitude: 0.0}

	distance := HaversineMeters(northPole, southPole)

	assert.InDelta(t, math.Pi*EarthRadiusMeters, distance, 1.0)
}

func TestEncodeLocation(t *testing.T) {
	hash := EncodeLocation(GeoPoint{Latitude: 38.7223, Longitude: -9.1393}, 6)

	assert.Len(t, hash, 6)
	lat, lng := DecodeGeohash(hash)
	assert.InDelta(t, 38.7223, lat, 0.01)
	assert.InDelta(t, -9.1393, lng, 0.01)
	assert.Len(t, GetNeighbors(hash), 8)
}

func TestCoveringCells(t *testing.T) {
	t.Run("covers every point inside the radius", func(t *testing.T) {
		center := GeoPoint{Latitude: 38.7223, Longitude: -9.1393}
		cells, ok := CoveringCells(center, 1000, 6, 256)
		require.True(t, ok)
		require.NotEmpty(t, cells)

		set := make(map[string]bool, len(cells))
		for _, c := range cells {
			set[c] = true
		}

		// points on the circle edge in the four cardinal directions
		offsets := []GeoPoint{
			{Latitude: center.Latitude + 0.0089, Longitude: center.Longitude},
			{Latitude: center.Latitude - 0.0089, Longitude: center.Longitude},
			{Latitude: center.Latitude, Longitude: center.Longitude + 0.0115},
			{Latitude: center.Latitude, Longitude: center.Longitude - 0.0115},
			center,
		}
		for _, p := range offsets {
			require.LessOrEqual(t, HaversineMeters(center, p), 1000.0)
			assert.True(t, set[EncodeLocation(p, 6)], "cell of %v should be covered", p)
		}
	})

	t.Run("zero radius yields the center cell", func(t *testing.T) {
		center := GeoPoint{Latitude: 41.1579, Longitude: -8.6291}
		cells, ok := CoveringCells(center, 0, 6, 256)
		require.True(t, ok)
		assert.Contains(t, cells, EncodeLocation(center, 6))
	})

	t.Run("too many cells falls back", func(t *testing.T) {
		_, ok := CoveringCells(GeoPoint{Latitude: 38.7, Longitude: -9.1}, 100000, 6, 256)
		assert.False(t, ok)
	})

	t.Run("antimeridian falls back", func(t *testing.T) {
		_, ok := CoveringCells(GeoPoint{Latitude: 0, Longitude: 179.999}, 1000, 6, 256)
		assert.False(t, ok)
	})

	t.Run("pole falls back", func(t *testing.T) {
		_, ok := CoveringCells(GeoPoint{Latitude: 89.999, Longitude: 0}, 1000, 6, 256)
		assert.False(t, ok)
	})

	t.Run("negative radius falls back", func(t *testing.T) {
		_, ok := CoveringCells(GeoPoint{}, -1, 6, 256)
		assert.False(t, ok)
	})
}

func BenchmarkHaversineMeters(b *testing.B) {
	point1 := GeoPoint{Latitude: 38.7223, Longitude: -9.1393}
	point2 := GeoPoint{Latitude: 41.1579, Longitude: -8.6291}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		HaversineMeters(point1, point2)
	}
}
