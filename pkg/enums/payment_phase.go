package enums

import "fmt"

// PaymentPhase is the payment surface's lifecycle state for one checkout session.
type PaymentPhase string

const (
	PaymentPhaseIdle       PaymentPhase = "idle"
	PaymentPhaseSubmitting PaymentPhase = "submitting"
	PaymentPhaseSucceeded  PaymentPhase = "succeeded"
	PaymentPhaseFailed     PaymentPhase = "failed"
	PaymentPhaseAbandoned  PaymentPhase = "abandoned"
)

var validPaymentPhases = []PaymentPhase{
	PaymentPhaseIdle,
	PaymentPhaseSubmitting,
	PaymentPhaseSucceeded,
	PaymentPhaseFailed,
	PaymentPhaseAbandoned,
}

// String implements fmt.Stringer.
func (p PaymentPhase) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentPhase.
func (p PaymentPhase) IsValid() bool {
	for _, candidate := range validPaymentPhases {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the phase ends the session from the client's view.
func (p PaymentPhase) IsTerminal() bool {
	return p == PaymentPhaseSucceeded || p == PaymentPhaseFailed || p == PaymentPhaseAbandoned
}

// ParsePaymentPhase converts raw input into a PaymentPhase.
func ParsePaymentPhase(value string) (PaymentPhase, error) {
	for _, candidate := range validPaymentPhases {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment phase %q", value)
}
