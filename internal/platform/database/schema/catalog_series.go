package schema

// CatalogSeriesTable represents the 'catalog.series' table
type CatalogSeriesTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// CatalogSeries is the schema definition for catalog.series
var CatalogSeries = CatalogSeriesTable{
	Table:       "catalog.series",
	ID:          "id",
	Name:        "name",
	Description: "description",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}
