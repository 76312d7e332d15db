// Package geo resolves display coordinates for named places when no
// collaborator supplied real ones.
package geo

import "crypto/sha256"

// cityCoords covers the destinations the planner ships canned data for.
var cityCoords = map[string][2]float64{
	"paris":  {48.8566, 2.3522},
	"nice":   {43.7102, 7.2620},
	"london": {51.5074, -0.1278},
	"tokyo":  {35.6764, 139.6500},
	"seoul":  {37.5665, 126.9780},
}

// CoordsFor returns a coordinate for the given name. Known cities map to
// their real centers; anything else derives a stable pseudo-coordinate from a
// hash so repeated runs place the same name at the same point.
func CoordsFor(name string) (lat, lng float64) {
	if c, ok := cityCoords[lower(name)]; ok {
		return c[0], c[1]
	}
	digest := sha256.Sum256([]byte(name))
	lat = 10 + float64(digest[0])/255*70    // 10..80
	lng = -130 + float64(digest[1])/255*260 // -130..130
	return lat, lng
}

// Known reports whether the name is in the canned city table.
func Known(name string) bool {
	_, ok := cityCoords[lower(name)]
	return ok
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
