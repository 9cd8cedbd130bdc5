package enum

// TransactionStatus is the lifecycle state of a sale. Completed transactions
// may be voided; voided is terminal.
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionVoided    TransactionStatus = "voided"
)

func (s TransactionStatus) String() string {
	return string(s)
}
