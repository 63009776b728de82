package schema

// PlaceCategory classifies a place record.
type PlaceCategory string

const (
	PlaceAttraction PlaceCategory = "attraction"
	PlaceFood       PlaceCategory = "food"
	PlaceLodging    PlaceCategory = "lodging"
)

// Place is a single point of interest at a destination.
type Place struct {
	Name     string        `json:"name"`
	Category PlaceCategory `json:"category"`
	Lat      float64       `json:"lat"`
	Lng      float64       `json:"lng"`
}

// PlaceInfo is the set of places fetched for one destination.
type PlaceInfo struct {
	Destination string  `json:"destination"`
	Places      []Place `json:"places"`
}

// ByCategory partitions the places, preserving provider order within each
// category.
func (p *PlaceInfo) ByCategory() map[PlaceCategory][]Place {
	out := make(map[PlaceCategory][]Place)
	for _, place := range p.Places {
		out[place.Category] = append(out[place.Category], place)
	}
	return out
}
