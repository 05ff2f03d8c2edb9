package services

import (
	"fmt"

	types "github.com/tanujaya/user-directory/internal/domain"
)

const (
	maxTextLen   = 255
	maxPostalLen = 10
)

// ValidateUserInput checks the seven submitted fields and returns one
// message per violated field, keyed by field name. An empty result means
// the payload is valid as-is; nothing is trimmed or normalized. Birthdate
// is only checked for presence: the contract treats it as an opaque
// string, not a calendar date.
func ValidateUserInput(in types.UserInput) map[string]string {
	errs := map[string]string{}

	checkText(errs, "firstname", "First name", in.Firstname)
	checkText(errs, "lastname", "Last name", in.Lastname)
	if in.Birthdate == "" {
		errs["birthdate"] = "Birth date is required"
	}
	checkText(errs, "street", "Street", in.Street)
	checkText(errs, "city", "City", in.City)
	checkText(errs, "province", "Province", in.Province)
	switch {
	case in.PostalCode == "":
		errs["postal_code"] = "Postal code is required"
	case len(in.PostalCode) > maxPostalLen:
		errs["postal_code"] = fmt.Sprintf("Postal code must be at most %d characters", maxPostalLen)
	}

	return errs
}

func checkText(errs map[string]string, field, label, value string) {
	switch {
	case value == "":
		errs[field] = label + " is required"
	case len(value) > maxTextLen:
		errs[field] = fmt.Sprintf("%s must be at most %d characters", label, maxTextLen)
	}
}
