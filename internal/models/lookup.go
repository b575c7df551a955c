package models

// Lookup records the outcome of one lookup run for the optional history store.
type Lookup struct {
	Address     string          // Address is the free-text address that was geocoded.
	Coordinates Coordinates     // Coordinates resolved for the address.
	PlacesFound int             // PlacesFound is the total number of nearby places reported.
	Weather     *WeatherReading // Weather is nil when the weather stage failed.
}
