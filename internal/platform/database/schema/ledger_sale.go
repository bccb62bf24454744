package schema

// LedgerSaleTable represents the 'ledger.sale' table
type LedgerSaleTable struct {
	Table             string
	ID                string
	BookID            string
	Period            string
	Quantity          string
	PublisherRevenue  string
	AuthorRoyalty     string
	RoyaltyOverridden string
	Paid              string
	PaidAt            string
	CreatedAt         string
	UpdatedAt         string
}

// LedgerSale is the schema definition for ledger.sale
var LedgerSale = LedgerSaleTable{
	Table:             "ledger.sale",
	ID:                "id",
	BookID:            "bookid",
	Period:            "period",
	Quantity:          "quantity",
	PublisherRevenue:  "publisherrevenue",
	AuthorRoyalty:     "authorroyalty",
	RoyaltyOverridden: "royaltyoverridden",
	Paid:              "paid",
	PaidAt:            "paidat",
	CreatedAt:         "createdat",
	UpdatedAt:         "updatedat",
}
