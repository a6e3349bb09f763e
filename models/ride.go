package models

// RideCatalogEntry maps a human-readable ride name to the ride ID the model was trained on
type RideCatalogEntry struct {
	DisplayName string `json:"displayName"`
	RideID      string `json:"rideId"`
}

// RideCatalog is an ordered, immutable set of rides
type RideCatalog struct {
	entries []RideCatalogEntry
	byName  map[string]string
}

// Ride IDs must match the training data exactly
var defaultRides = []RideCatalogEntry{
	{DisplayName: "Mega Coaster", RideID: "R_001"},
	{DisplayName: "Ferris Wheel", RideID: "R_002"},
	{DisplayName: "Bumper Cars", RideID: "R_003"},
	{DisplayName: "Haunted House", RideID: "R_004"},
}

// DefaultCatalog returns the park's ride catalog
func DefaultCatalog() *RideCatalog {
	return NewRideCatalog(defaultRides)
}

// NewRideCatalog builds a catalog from entries. Later duplicates of a display name are ignored.
func NewRideCatalog(entries []RideCatalogEntry) *RideCatalog {
	c := &RideCatalog{
		entries: make([]RideCatalogEntry, 0, len(entries)),
		byName:  make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		if _, exists := c.byName[e.DisplayName]; exists {
			continue
		}
		c.byName[e.DisplayName] = e.RideID
		c.entries = append(c.entries, e)
	}
	return c
}

// Resolve returns the ride ID for a display name
func (c *RideCatalog) Resolve(displayName string) (string, bool) {
	id, ok := c.byName[displayName]
	return id, ok
}

// Entries returns a copy of the catalog in display order
func (c *RideCatalog) Entries() []RideCatalogEntry {
	out := make([]RideCatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Names returns the display names in catalog order
func (c *RideCatalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.DisplayName
	}
	return names
}
