package payment

// Method identifies the payment channel a payment came through.
// Instant methods carry a gateway confirmation with them, so recording
// one flips the order's payment status to PAID in the same transaction.
// Deferred methods settle later and leave the order's payment status
// untouched until an explicit confirmation.
type Method string

const (
	MethodCreditCard   Method = "credit_card"
	MethodDebitCard    Method = "debit_card"
	MethodPaypal       Method = "paypal"
	MethodBankTransfer Method = "bank_transfer"
	MethodCash         Method = "cash"
	MethodCOD          Method = "cod"
)

// IsValid checks if the method is a known payment Method
func (m Method) IsValid() bool {
	switch m {
	case MethodCreditCard, MethodDebitCard, MethodPaypal, MethodBankTransfer, MethodCash, MethodCOD:
		return true
	}
	return false
}

// String returns the string representation of Method
func (m Method) String() string {
	return string(m)
}

// IsInstant returns true for channels whose confirmation arrives with
// the recording call itself
func (m Method) IsInstant() bool {
	switch m {
	case MethodCreditCard, MethodDebitCard, MethodPaypal:
		return true
	}
	return false
}
