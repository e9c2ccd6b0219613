// Package invest holds the portal's investment arithmetic and the
// product filter pipeline.
package invest

import (
	"fmt"
	"math"
)

// InputError reports an invalid calculator argument.
type InputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// CalculateReturns projects the total value of amount held for tenureMonths
// at annualYield percent simple interest:
//
//	amount + amount*annualYield*tenureMonths/(100*12)
//
// The result is not rounded. Inputs are not checked; use ProjectReturns
// for untrusted values.
func CalculateReturns(amount, annualYield float64, tenureMonths int) float64 {
	return amount + (amount*annualYield*float64(tenureMonths))/(100*12)
}

// ProjectedGain is the interest part of CalculateReturns.
func ProjectedGain(amount, annualYield float64, tenureMonths int) float64 {
	return CalculateReturns(amount, annualYield, tenureMonths) - amount
}

// ValidateReturnsInput rejects negative and non-finite calculator inputs.
func ValidateReturnsInput(amount, annualYield float64, tenureMonths int) error {
	if err := checkNonNegative("amount", amount); err != nil {
		return err
	}
	if err := checkNonNegative("annual_yield", annualYield); err != nil {
		return err
	}
	if tenureMonths < 0 {
		return &InputError{Field: "tenure_months", Value: float64(tenureMonths), Reason: "must not be negative"}
	}
	return nil
}

// ProjectReturns validates its inputs, calls CalculateReturns and rejects
// a result that overflowed.
func ProjectReturns(amount, annualYield float64, tenureMonths int) (float64, error) {
	if err := ValidateReturnsInput(amount, annualYield, tenureMonths); err != nil {
		return 0, err
	}
	v := CalculateReturns(amount, annualYield, tenureMonths)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, &InputError{Field: "projected_value", Value: v, Reason: "result is not a finite number"}
	}
	return v, nil
}

func checkNonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InputError{Field: field, Value: v, Reason: "must be a finite number"}
	}
	if v < 0 {
		return &InputError{Field: field, Value: v, Reason: "must not be negative"}
	}
	return nil
}
