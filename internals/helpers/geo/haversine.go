package geo

import "math"

const EarthRadiusMeters = 6371000

// Point adalah koordinat dalam derajat desimal.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DistanceMeters: jarak great-circle (haversine) antara dua titik, dalam meter.
// Input di luar rentang lat/lng tidak divalidasi.
func DistanceMeters(a, b Point) float64 {
	latRad1 := a.Latitude * math.Pi / 180
	latRad2 := b.Latitude * math.Pi / 180

	diffLat := (b.Latitude - a.Latitude) * math.Pi / 180
	diffLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(diffLat/2)*math.Sin(diffLat/2) +
		math.Cos(latRad1)*math.Cos(latRad2)*
			math.Sin(diffLon/2)*math.Sin(diffLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// WithinRadius: batas inklusif (jarak == radius masih diterima).
func WithinRadius(distance, radius float64) bool {
	return !(distance > radius)
}
