package billing

import "regexp"

// Contact validation rules. Both are full-string matches: a single
// out-of-place character invalidates the whole value.
//   - email: local-part (letters, digits, . _ % + -) @ domain, tld ≥ 2 letters
//   - phone: leading 0 followed by 8–10 digits, nothing else
var (
	emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phoneRe = regexp.MustCompile(`^0[0-9]{8,10}$`)
)

// EmailIsValid reports whether s is a well-formed email address.
func EmailIsValid(s string) bool {
	return emailRe.MatchString(s)
}

// PhoneIsValid reports whether s is a well-formed national phone number.
func PhoneIsValid(s string) bool {
	return phoneRe.MatchString(s)
}
