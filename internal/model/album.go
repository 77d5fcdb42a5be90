package model

// Album represents a catalogued album as stored in the `albums`
// table. An album owns zero or more physical copies; the relation
// lives in the copies table, not in memory.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – album title.
//  Artist      – performing artist or band.
//  ReleaseYear – year of release (nullable).
//  Label       – record label (nullable).
//  EAN         – barcode assigned at creation time.
type Album struct {
	ID          uint64  `json:"id"`           // albums.id
	Title       string  `json:"title"`        // albums.title
	Artist      string  `json:"artist"`       // albums.artist
	ReleaseYear *int    `json:"release_year"` // albums.release_year (nullable)
	Label       *string `json:"label"`        // albums.label (nullable)
	EAN         string  `json:"ean"`          // albums.ean
}
