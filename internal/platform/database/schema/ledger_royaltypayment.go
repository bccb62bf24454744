package schema

// LedgerRoyaltyPaymentTable represents the 'ledger.royaltypayment' table
type LedgerRoyaltyPaymentTable struct {
	Table     string
	ID        string
	AuthorIDs string
	SaleCount string
	Amount    string
	PaidBy    string
	CreatedAt string
}

// LedgerRoyaltyPayment is the schema definition for ledger.royaltypayment
var LedgerRoyaltyPayment = LedgerRoyaltyPaymentTable{
	Table:     "ledger.royaltypayment",
	ID:        "id",
	AuthorIDs: "authorids",
	SaleCount: "salecount",
	Amount:    "amount",
	PaidBy:    "paidby",
	CreatedAt: "createdat",
}
