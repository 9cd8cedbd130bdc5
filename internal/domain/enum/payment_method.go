package enum

// PaymentMethod is how a transaction was paid for.
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentDebit   PaymentMethod = "debit"
	PaymentCredit  PaymentMethod = "credit"
	PaymentEWallet PaymentMethod = "ewallet"
)

// PaymentMethods lists all accepted methods, for validation and report
// breakdowns.
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentDebit, PaymentCredit, PaymentEWallet}

// Valid reports whether the method is accepted at checkout.
func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}
