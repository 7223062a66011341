// Package order validates delivery details, composes the WhatsApp order
// message and drives checkout.
package order

import (
	"regexp"
	"strings"
)

// Indian mobile numbers: ten digits starting 6 through 9.
var phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// Location is an optional pin dropped on the map, with the address the
// reverse geocoder resolved for it.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// Address carries the customer's delivery details as submitted at checkout.
type Address struct {
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Instructions string    `json:"instructions,omitempty"`
	Location     *Location `json:"location,omitempty"`
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Normalize trims all free-text fields. Called before validation so
// length limits apply to the trimmed values.
func (a *Address) Normalize() {
	a.Name = strings.TrimSpace(a.Name)
	a.Phone = strings.TrimSpace(a.Phone)
	a.Address = strings.TrimSpace(a.Address)
	a.Instructions = strings.TrimSpace(a.Instructions)
}

// ValidateAddress validates delivery details before composing an order.
func ValidateAddress(a *Address) []ValidationError {
	var errors []ValidationError

	if len(a.Name) < 2 {
		errors = append(errors, ValidationError{
			Field:   "name",
			Message: "Name must be at least 2 characters",
		})
	} else if len(a.Name) > 100 {
		errors = append(errors, ValidationError{
			Field:   "name",
			Message: "Name must be less than 100 characters",
		})
	}

	if !phonePattern.MatchString(a.Phone) {
		errors = append(errors, ValidationError{
			Field:   "phone",
			Message: "Please enter a valid 10-digit mobile number",
		})
	}

	if len(a.Address) < 10 {
		errors = append(errors, ValidationError{
			Field:   "address",
			Message: "Please provide a complete address (minimum 10 characters)",
		})
	} else if len(a.Address) > 300 {
		errors = append(errors, ValidationError{
			Field:   "address",
			Message: "Address must be less than 300 characters",
		})
	}

	if len(a.Instructions) > 200 {
		errors = append(errors, ValidationError{
			Field:   "instructions",
			Message: "Instructions must be less than 200 characters",
		})
	}

	return errors
}
