package utils

import (
	"math"

	"github.com/mmcloughlin/geohash"
)

// EarthRadiusMeters is the mean Earth radius used for great-circle distances
const EarthRadiusMeters = 6371000.0

// metersPerDegreeLat is the arc length of one degree of latitude
const metersPerDegreeLat = EarthRadiusMeters * math.Pi / 180.0

// GeoPoint represents a geographical point with latitude and longitude
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// EncodeLocation converts a coordinate to a geohash string
func EncodeLocation(point GeoPoint, precision uint) string {
	return geohash.EncodeWithPrecision(point.Latitude, point.Longitude, precision)
}

// DecodeGeohash converts a geohash string to the latitude and longitude of its center
func DecodeGeohash(hash string) (latitude, longitude float64) {
	return geohash.DecodeCenter(hash)
}

// GetNeighbors returns the neighboring geohashes of a given geohash
func GetNeighbors(hash string) []string {
	return geohash.Neighbors(hash)
}

// HaversineMeters calculates the great-circle distance between two points in meters
func HaversineMeters(point1, point2 GeoPoint) float64 {
	lat1 := toRadians(point1.Latitude)
	lat2 := toRadians(point2.Latitude)
	dLat := lat2 - lat1
	dLon := toRadians(point2.Longitude - point1.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// CoveringCells returns the geohash cells at the given precision that cover
// the bounding box of a circle. ok is false when the box crosses a pole or the
// antimeridian, or would need more than maxCells cells; callers then scan.
func CoveringCells(center GeoPoint, radiusMeters float64, precision uint, maxCells int) (cells []string, ok bool) {
	if radiusMeters < 0 {
		return nil, false
	}

	dLat := radiusMeters / metersPerDegreeLat
	minLat, maxLat := center.Latitude-dLat, center.Latitude+dLat
	if minLat < -90 || maxLat > 90 {
		return nil, false
	}

	// widest longitude span sits on the latitude closest to a pole
	edgeLat := math.Max(math.Abs(minLat), math.Abs(maxLat))
	cosLat := math.Cos(toRadians(edgeLat))
	if cosLat <= 0 {
		return nil, false
	}
	dLng := dLat / cosLat
	minLng, maxLng := center.Longitude-dLng, center.Longitude+dLng
	if minLng < -180 || maxLng > 180 {
		return nil, false
	}

	box := geohash.BoundingBox(geohash.EncodeWithPrecision(center.Latitude, center.Longitude, precision))
	cellHeight := box.MaxLat - box.MinLat
	cellWidth := box.MaxLng - box.MinLng

	rows := int(math.Ceil((maxLat-minLat)/cellHeight)) + 1
	cols := int(math.Ceil((maxLng-minLng)/cellWidth)) + 1
	if rows*cols > maxCells {
		return nil, false
	}

	seen := make(map[string]struct{}, rows*cols)
	for _, lat := range steps(minLat, maxLat, cellHeight) {
		for _, lng := range steps(minLng, maxLng, cellWidth) {
			hash := geohash.EncodeWithPrecision(lat, lng, precision)
			if _, dup := seen[hash]; dup {
				continue
			}
			seen[hash] = struct{}{}
			cells = append(cells, hash)
		}
	}
	return cells, true
}

// steps samples [min, max] no further apart than step, always including max
func steps(min, max, step float64) []float64 {
	var out []float64
	for v := min; v < max; v += step {
		out = append(out, v)
	}
	return append(out, max)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
