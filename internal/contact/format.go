package contact

import "github.com/nyaruka/phonenumbers"

// FormatNumber renders a phone number for display: national format for
// numbers of the default region, international format otherwise. Addresses
// that are not valid phone numbers (email addresses, short codes) come back
// unchanged.
func FormatNumber(address, region string) string {
	num, err := phonenumbers.Parse(address, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return address
	}
	if phonenumbers.GetRegionCodeForNumber(num) == region {
		return phonenumbers.Format(num, phonenumbers.NATIONAL)
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}
