package transaction

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	TransactionID      string `json:"transaction_id" doc:"Unique transaction identifier"`
	SourceAccount      string `json:"source_account" doc:"Source account identifier"`
	DestinationAccount string `json:"destination_account" doc:"Destination account identifier"`
	Amount             string `json:"amount" doc:"Decimal amount"`
	Currency           string `json:"currency" doc:"Currency code"`
	Status             string `json:"status" doc:"PROCESSING, PROCESSED or FAILED"`
	CreatedAt          string `json:"created_at" doc:"RFC3339 creation time"`
	ProcessedAt        string `json:"processed_at,omitempty" doc:"RFC3339 completion time, absent while PROCESSING"`
}
