package models

// Transaction is the canonical record every ingestion path produces.
// Amount is signed dollars: negative = charge/debit, positive = payment/credit.
type Transaction struct {
	TransactionDate string  `json:"transactionDate"`
	PostDate        string  `json:"postDate"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	AutoCategory    bool    `json:"autoCategory"` // category assigned heuristically, not by the bank
	Type            string  `json:"type"`
	Amount          float64 `json:"amount"`
	Card            string  `json:"card"`
	Memo            string  `json:"memo"`
}

// IsCharge reports whether the transaction is spend.
func (t Transaction) IsCharge() bool {
	return t.Amount < 0
}

// Default transaction types assigned when the statement has none.
const (
	TypeSale          = "Sale"
	TypePaymentCredit = "Payment/Credit"
)

// Statement formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// DebugLine captures what the PDF matcher did with each reconstructed line.
type DebugLine struct {
	LineNum int    `json:"lineNum"`
	Text    string `json:"text"`
	Result  string `json:"result"` // "parsed", "header", "noise", "skipped"
	Method  string `json:"method,omitempty"`
}

// Debug line results.
const (
	LineParsed  = "parsed"
	LineHeader  = "header"
	LineNoise   = "noise"
	LineSkipped = "skipped"
)

// StatementInfo holds everything extracted from one uploaded file.
type StatementInfo struct {
	Source       string        `json:"source"`
	Format       string        `json:"format"`
	Transactions []Transaction `json:"transactions"`
	Detection    *Detection    `json:"detection,omitempty"` // nil = detection not attempted
	DebugLines   []DebugLine   `json:"debugLines,omitempty"`
}

// CategoryStats summarizes where the categories of the charges came from.
type CategoryStats struct {
	Total         int `json:"total"`
	FromStatement int `json:"fromStatement"`
	AutoAssigned  int `json:"autoAssigned"`
	Uncategorized int `json:"uncategorized"`
}
