package utils

// ValidateCoordinates checks that a longitude/latitude pair is within the
// valid geographic range.
func ValidateCoordinates(lon, lat float64) bool {
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}
