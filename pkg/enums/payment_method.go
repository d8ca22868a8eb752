package enums

// PaymentMethod distinguishes cash-on-delivery from prepaid Razorpay orders.
// Signature verification is mandatory for every non-COD method.
type PaymentMethod string

const (
	PaymentCOD      PaymentMethod = "cod"
	PaymentRazorpay PaymentMethod = "razorpay"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCOD, PaymentRazorpay:
		return true
	}
	return false
}

// RequiresVerification reports whether the method needs a verified payment
// signature before an order may be persisted.
func (m PaymentMethod) RequiresVerification() bool {
	return m != PaymentCOD
}
