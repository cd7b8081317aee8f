package overpass

// categoryFilters is the fixed catalogue of OSM tag filters queried around a
// location. It is not user-configurable.
var categoryFilters = []string{
	// Food & Drink
	"amenity=restaurant",
	"amenity=cafe",
	"amenity=bar",
	"amenity=pub",
	"amenity=fast_food",
	"amenity=coffee_shop",
	"amenity=food_court",
	"amenity=ice_cream",
	"amenity=biergarten",
	"amenity=brewery",
	"amenity=winery",

	// Shops
	"shop",

	// Recreation / Fun
	"leisure=park",
	"leisure=garden",
	"leisure=playground",
	"leisure=fitness_centre",
	"leisure=sports_centre",
	"leisure=gym",
	"leisure=stadium",
	"leisure=pitch",
	"leisure=track",
	"leisure=swimming_pool",
	"amenity=theatre",
	"amenity=cinema",
	"tourism=museum",
	"leisure=water_park",
	"tourism=attraction",
	"amenity=casino",
	"amenity=arcade",
	"amenity=nightclub",
	"tourism=theme_park",
	"tourism=gallery",
	"tourism=zoo",
	"tourism=aquarium",
	"amenity=planetarium",

	// Community / Public
	"amenity=library",
	"amenity=community_centre",
	"amenity=townhall",
	"amenity=post_office",
	"amenity=fuel",

	// Places of Worship
	"amenity=place_of_worship",
}

// categoryKeys is the ordered set of tag keys checked when deriving an
// amenity's type; the first present key wins.
var categoryKeys = []string{"amenity", "shop", "leisure", "tourism"}

func categoryOf(tags map[string]string) (string, bool) {
	for _, key := range categoryKeys {
		if value := tags[key]; value != "" {
			return value, true
		}
	}

	return "", false
}
