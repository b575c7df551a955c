package models

// Place is a single point of interest returned by a nearby search.
// It is display-only data and is not retained beyond the run.
type Place struct {
	Name     string // Name is the display name of the place.
	Vicinity string // Vicinity is a short address or neighbourhood description.
}
