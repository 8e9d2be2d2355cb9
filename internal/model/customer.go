package model

import "encoding/json"

// Customer is the remote service's view of a customer, decoded from the
// data field of a {status, data} envelope. Extra keys the API may return
// are preserved in Raw for logging.
type Customer struct {
	CustomerNo json.Number `json:"customer_no"`
	Name       string      `json:"name"`

	Raw json.RawMessage `json:"-"`
}

// Billogram is the remote invoice object as returned on creation.
type Billogram struct {
	ID string `json:"id"`

	Raw json.RawMessage `json:"-"`
}

// CustomerBody is the POST /customer request payload.
type CustomerBody struct {
	CustomerNo string       `json:"customer_no"`
	Name       string       `json:"name"`
	Contact    ContactField `json:"contact"`
	Address    AddressField `json:"address"`
}

// OnSuccess instructs the service what to do once a billogram is created.
type OnSuccess struct {
	Command string     `json:"command"`
	Method  SendMethod `json:"method"`
}

// CustomerRef references an existing customer by number.
type CustomerRef struct {
	CustomerNo string `json:"customer_no"`
}

// BillogramBody is the POST /billogram request payload.
type BillogramBody struct {
	InvoiceNo string      `json:"invoice_no"`
	Customer  CustomerRef `json:"customer"`
	Items     []ItemField `json:"items"`
	OnSuccess OnSuccess   `json:"on_success"`
}
