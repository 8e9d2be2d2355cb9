package model

import "github.com/shopspring/decimal"

// InvoiceRecord is one row of the input CSV. It is immutable once decoded;
// its lifecycle is a single iteration of the batch.
type InvoiceRecord struct {
	CustomerNumber string `validate:"required"`
	InvoiceNumber  string `validate:"required"`
	Name           string `validate:"required"`
	StreetAddress  string `validate:"required"`
	PostalCode     string `validate:"required"`
	City           string `validate:"required"`
	Email          string
	PhoneNumber    string
	ArticleName    string `validate:"required"`
	ArticlePrice   decimal.Decimal
}

// ContactField is the contact sub-object of a customer body.
// Fields are empty strings when absent; present values have already passed
// validation by the time this struct exists.
type ContactField struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// AddressField is the address sub-object of a customer body.
type AddressField struct {
	StreetAddress string `json:"street_address"`
	Zipcode       string `json:"zipcode"`
	City          string `json:"city"`
}

// ItemField is one line item of a billogram. Price is VAT-exclusive;
// Description carries the untruncated article name when Title was cut.
type ItemField struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	VAT         int             `json:"vat"`
	Count       int             `json:"count"`
}

// SendMethod is the delivery channel the billing service uses.
type SendMethod string

const (
	SendEmail  SendMethod = "Email"
	SendSMS    SendMethod = "SMS"
	SendLetter SendMethod = "Letter"
)
