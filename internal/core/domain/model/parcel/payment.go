package parcel

import (
	"fmt"

	"parcels/internal/pkg/errs"
)

// PaymentMethod is how the sender settles the parcel price.
type PaymentMethod int

const (
	PaymentMethodUnknown PaymentMethod = iota
	PaymentMethodCash
	PaymentMethodMobileMoney
	PaymentMethodCard
	PaymentMethodBankTransfer
)

func getPaymentMethodNames() map[PaymentMethod]string {
	//nolint:exhaustive // PaymentMethodUnknown has no wire name
	return map[PaymentMethod]string{
		PaymentMethodCash:         "CASH",
		PaymentMethodMobileMoney:  "MOBILE_MONEY",
		PaymentMethodCard:         "CARD",
		PaymentMethodBankTransfer: "BANK_TRANSFER",
	}
}

func ParsePaymentMethod(name string) (PaymentMethod, error) {
	m, ok := parseName(getPaymentMethodNames(), name)
	if !ok {
		return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%q is not a known payment method", name))
	}
	return m, nil
}

func (m PaymentMethod) Validate() error {
	if _, ok := getPaymentMethodNames()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// IsSet reports whether a method has been chosen.
func (m PaymentMethod) IsSet() bool {
	return m != PaymentMethodUnknown
}

func (m PaymentMethod) String() string {
	if name, ok := getPaymentMethodNames()[m]; ok {
		return name
	}
	return "UNKNOWN"
}

func (m PaymentMethod) MarshalText() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return []byte(m.String()), nil
}

func (m *PaymentMethod) UnmarshalText(text []byte) error {
	parsed, err := ParsePaymentMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// PaymentStatus tracks settlement of the parcel price.
type PaymentStatus int

const (
	PaymentStatusUnknown PaymentStatus = iota
	PaymentStatusPending
	PaymentStatusPaid
	PaymentStatusFailed
	PaymentStatusRefunded
)

func getPaymentStatusNames() map[PaymentStatus]string {
	//nolint:exhaustive // PaymentStatusUnknown has no wire name
	return map[PaymentStatus]string{
		PaymentStatusPending:  "PENDING",
		PaymentStatusPaid:     "PAID",
		PaymentStatusFailed:   "FAILED",
		PaymentStatusRefunded: "REFUNDED",
	}
}

func ParsePaymentStatus(name string) (PaymentStatus, error) {
	s, ok := parseName(getPaymentStatusNames(), name)
	if !ok {
		return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%q is not a known payment status", name))
	}
	return s, nil
}

func (s PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusNames()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

func (s PaymentStatus) String() string {
	if name, ok := getPaymentStatusNames()[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s PaymentStatus) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

func (s *PaymentStatus) UnmarshalText(text []byte) error {
	parsed, err := ParsePaymentStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
