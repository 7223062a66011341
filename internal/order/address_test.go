package order

import (
	"strings"
	"testing"
)

func validAddress() Address {
	return Address{
		Name:    "Asha Rao",
		Phone:   "9876543210",
		Address: "221B Hill Cart Road, Siliguri",
	}
}

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(a *Address)
		wantField string
	}{
		{
			name:   "valid",
			mutate: func(a *Address) {},
		},
		{
			name:      "nameTooShort",
			mutate:    func(a *Address) { a.Name = "A" },
			wantField: "name",
		},
		{
			name:      "nameTooLong",
			mutate:    func(a *Address) { a.Name = strings.Repeat("a", 101) },
			wantField: "name",
		},
		{
			name:      "phoneWrongLength",
			mutate:    func(a *Address) { a.Phone = "98765" },
			wantField: "phone",
		},
		{
			name:      "phoneBadLeadingDigit",
			mutate:    func(a *Address) { a.Phone = "5876543210" },
			wantField: "phone",
		},
		{
			name:      "phoneNonNumeric",
			mutate:    func(a *Address) { a.Phone = "98765abcde" },
			wantField: "phone",
		},
		{
			name:      "addressTooShort",
			mutate:    func(a *Address) { a.Address = "Siliguri" },
			wantField: "address",
		},
		{
			name:      "addressTooLong",
			mutate:    func(a *Address) { a.Address = strings.Repeat("a", 301) },
			wantField: "address",
		},
		{
			name:      "instructionsTooLong",
			mutate:    func(a *Address) { a.Instructions = strings.Repeat("a", 201) },
			wantField: "instructions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			address := validAddress()
			tt.mutate(&address)

			errors := ValidateAddress(&address)

			if tt.wantField == "" {
				if len(errors) != 0 {
					t.Errorf("ValidateAddress() = %v, want no errors", errors)
				}
				return
			}

			found := false
			for _, e := range errors {
				if e.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("ValidateAddress() = %v, want error on %q", errors, tt.wantField)
			}
		})
	}
}

func TestNormalizeTrimsFields(t *testing.T) {
	address := Address{
		Name:         "  Asha Rao  ",
		Phone:        " 9876543210 ",
		Address:      "  221B Hill Cart Road, Siliguri  ",
		Instructions: "  Ring twice  ",
	}
	address.Normalize()

	if address.Name != "Asha Rao" || address.Phone != "9876543210" {
		t.Errorf("Normalize() left whitespace: %+v", address)
	}
	if address.Address != "221B Hill Cart Road, Siliguri" || address.Instructions != "Ring twice" {
		t.Errorf("Normalize() left whitespace: %+v", address)
	}

	if errors := ValidateAddress(&address); len(errors) != 0 {
		t.Errorf("ValidateAddress() after Normalize = %v", errors)
	}
}
