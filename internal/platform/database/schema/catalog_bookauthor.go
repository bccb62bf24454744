package schema

// CatalogBookAuthorTable represents the 'catalog.bookauthor' junction table
type CatalogBookAuthorTable struct {
	Table    string
	BookID   string
	AuthorID string
	Position string
}

// CatalogBookAuthor is the schema definition for catalog.bookauthor
var CatalogBookAuthor = CatalogBookAuthorTable{
	Table:    "catalog.bookauthor",
	BookID:   "bookid",
	AuthorID: "authorid",
	Position: "position",
}
