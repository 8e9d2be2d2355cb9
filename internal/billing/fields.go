// Package billing holds the pure derivation rules that turn an invoice
// record into the payload fragments the Billogram API expects. Nothing in
// this package performs I/O.
package billing

import (
	"billrun/internal/apierror"
	"billrun/internal/model"

	"github.com/shopspring/decimal"
)

const (
	// VATPercent is the fixed Swedish VAT rate applied to all articles.
	VATPercent = 25

	maxTitleLen = 40
	ellipsis    = "..."
)

// vatDivisor converts a VAT-inclusive price to VAT-exclusive: gross / 1.25.
var vatDivisor = decimal.NewFromInt(1).Add(
	decimal.NewFromInt(VATPercent).Div(decimal.NewFromInt(100)))

// BuildContactField validates and assembles the contact sub-object.
// Empty email and phone are both fine (the customer becomes a Letter
// recipient); a non-empty value that fails validation aborts with an
// invalid_contact error naming the offending value. Email is checked
// first — the first failure wins.
func BuildContactField(rec model.InvoiceRecord) (model.ContactField, error) {
	if rec.Email != "" && !EmailIsValid(rec.Email) {
		return model.ContactField{}, apierror.Newf(apierror.KindInvalidContact,
			"invalid email address %q for customer %s", rec.Email, rec.CustomerNumber)
	}
	if rec.PhoneNumber != "" && !PhoneIsValid(rec.PhoneNumber) {
		return model.ContactField{}, apierror.Newf(apierror.KindInvalidContact,
			"invalid phone number %q for customer %s", rec.PhoneNumber, rec.CustomerNumber)
	}
	return model.ContactField{Email: rec.Email, Phone: rec.PhoneNumber}, nil
}

// BuildAddressField copies the address columns verbatim. Never fails.
func BuildAddressField(rec model.InvoiceRecord) model.AddressField {
	return model.AddressField{
		StreetAddress: rec.StreetAddress,
		Zipcode:       rec.PostalCode,
		City:          rec.City,
	}
}

// BuildItemField derives the single line item of a billogram: fixed VAT and
// count, VAT-exclusive price, and a title capped at 40 characters. When the
// article name is longer, the title keeps the first 37 characters plus "..."
// and the full name moves to the description.
func BuildItemField(rec model.InvoiceRecord) model.ItemField {
	item := model.ItemField{
		Title: rec.ArticleName,
		Price: rec.ArticlePrice.Div(vatDivisor),
		VAT:   VATPercent,
		Count: 1,
	}
	if name := []rune(rec.ArticleName); len(name) > maxTitleLen {
		item.Title = string(name[:maxTitleLen-len(ellipsis)]) + ellipsis
		item.Description = rec.ArticleName
	}
	return item
}

// DetermineSendMethod picks the delivery channel: email wins over phone,
// Letter is the fallback when neither is present.
func DetermineSendMethod(rec model.InvoiceRecord) model.SendMethod {
	switch {
	case rec.Email != "":
		return model.SendEmail
	case rec.PhoneNumber != "":
		return model.SendSMS
	default:
		return model.SendLetter
	}
}
