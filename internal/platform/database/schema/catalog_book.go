package schema

// CatalogBookTable represents the 'catalog.book' table
type CatalogBookTable struct {
	Table            string
	ID               string
	Title            string
	ISBN13           string
	ISBN10           string
	PublicationMonth string
	PublicationYear  string
	RoyaltyRate      string
	SeriesID         string
	SeriesPosition   string
	CreatedAt        string
	UpdatedAt        string
}

// CatalogBook is the schema definition for catalog.book
var CatalogBook = CatalogBookTable{
	Table:            "catalog.book",
	ID:               "id",
	Title:            "title",
	ISBN13:           "isbn13",
	ISBN10:           "isbn10",
	PublicationMonth: "publicationmonth",
	PublicationYear:  "publicationyear",
	RoyaltyRate:      "royaltyrate",
	SeriesID:         "seriesid",
	SeriesPosition:   "seriesposition",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
}
