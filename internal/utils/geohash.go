package utils

import (
	"math"

	"github.com/mmcloughlin/geohash"
)

// Earth's radius in kilometers
const earthRadius = 6371.0

// StoragePrecision is the geohash precision persisted with each trip pickup
const StoragePrecision uint = 9

// GeoPoint represents a geographical point with latitude and longitude
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// EncodeLocation converts a point to a geohash string
func EncodeLocation(point GeoPoint, precision uint) string {
	return geohash.EncodeWithPrecision(point.Latitude, point.Longitude, precision)
}

// CalculateDistance calculates the distance between two points in kilometers using the Haversine formula
func CalculateDistance(point1, point2 GeoPoint) float64 {
	// Convert latitude and longitude from degrees to radians
	lat1 := point1.Latitude * math.Pi / 180.0
	lon1 := point1.Longitude * math.Pi / 180.0
	lat2 := point2.Latitude * math.Pi / 180.0
	lon2 := point2.Longitude * math.Pi / 180.0

	// Haversine formula
	dLat := lat2 - lat1
	dLon := lon2 - lon1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// ValidCoordinates reports whether lat/lng are in range and not the null island default
func ValidCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return false
	}
	return !(lat == 0 && lng == 0)
}

// CoveringCells returns a geohash precision and the cells at that precision
// (the centre cell plus its eight neighbours) that together contain every
// point within radiusKm of origin. The precision chosen is the finest whose
// cell is at least radiusKm tall and wide at the origin. When even a
// single-character cell is too small, ok is false and no prefilter applies.
func CoveringCells(origin GeoPoint, radiusKm float64) (precision uint, cells []string, ok bool) {
	for p := StoragePrecision; p >= 1; p-- {
		hash := geohash.EncodeWithPrecision(origin.Latitude, origin.Longitude, p)
		box := geohash.BoundingBox(hash)

		height := CalculateDistance(
			GeoPoint{Latitude: box.MinLat, Longitude: origin.Longitude},
			GeoPoint{Latitude: box.MaxLat, Longitude: origin.Longitude},
		)
		// narrowest edge of the cell is the one farther from the equator
		edgeLat := box.MaxLat
		if math.Abs(box.MinLat) > math.Abs(box.MaxLat) {
			edgeLat = box.MinLat
		}
		width := CalculateDistance(
			GeoPoint{Latitude: edgeLat, Longitude: box.MinLng},
			GeoPoint{Latitude: edgeLat, Longitude: box.MaxLng},
		)

		if height >= radiusKm && width >= radiusKm {
			return p, append([]string{hash}, geohash.Neighbors(hash)...), true
		}
	}
	return 0, nil, false
}
