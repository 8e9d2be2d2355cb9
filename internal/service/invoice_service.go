package service

import (
	"context"

	"billrun/internal/billing"
	"billrun/internal/model"

	"github.com/rs/zerolog/log"
)

// BillogramAPI is the slice of the API client the workflow needs.
// Satisfied by *infra.BillogramClient; stubbed in tests.
type BillogramAPI interface {
	FindCustomer(ctx context.Context, customerNo string) (*model.Customer, bool, error)
	CreateCustomer(ctx context.Context, body model.CustomerBody) (*model.Customer, error)
	CreateBillogram(ctx context.Context, body model.BillogramBody) (*model.Billogram, error)
}

type InvoiceService interface {
	ProcessRecord(ctx context.Context, rec model.InvoiceRecord) error
}

type invoiceService struct {
	api BillogramAPI
}

func NewInvoiceService(api BillogramAPI) InvoiceService {
	return &invoiceService{api: api}
}

// ProcessRecord runs the two-step workflow for one invoice row: make sure
// the customer exists, then create and dispatch the billogram. Any error is
// terminal for the record — there are no retries at this layer.
func (s *invoiceService) ProcessRecord(ctx context.Context, rec model.InvoiceRecord) error {
	if err := s.ensureCustomer(ctx, rec); err != nil {
		return err
	}
	return s.createAndSend(ctx, rec)
}

// ensureCustomer looks the customer up and creates it on the explicit
// not-found outcome. Every other lookup failure propagates — a malfunctioning
// service must not be mistaken for a missing customer.
func (s *invoiceService) ensureCustomer(ctx context.Context, rec model.InvoiceRecord) error {
	cust, found, err := s.api.FindCustomer(ctx, rec.CustomerNumber)
	if err != nil {
		return err
	}
	if found {
		log.Info().Msgf("Found customer: %s", cust.CustomerNo)
		return nil
	}

	// Contact validation happens before the create call so that a bad email
	// or phone never reaches the network.
	contact, err := billing.BuildContactField(rec)
	if err != nil {
		return err
	}
	created, err := s.api.CreateCustomer(ctx, model.CustomerBody{
		CustomerNo: rec.CustomerNumber,
		Name:       rec.Name,
		Contact:    contact,
		Address:    billing.BuildAddressField(rec),
	})
	if err != nil {
		return err
	}
	log.Info().Msgf("Created customer: %s", created.CustomerNo)
	return nil
}

func (s *invoiceService) createAndSend(ctx context.Context, rec model.InvoiceRecord) error {
	bg, err := s.api.CreateBillogram(ctx, model.BillogramBody{
		InvoiceNo: rec.InvoiceNumber,
		Customer:  model.CustomerRef{CustomerNo: rec.CustomerNumber},
		Items:     []model.ItemField{billing.BuildItemField(rec)},
		OnSuccess: model.OnSuccess{
			Command: "send",
			Method:  billing.DetermineSendMethod(rec),
		},
	})
	if err != nil {
		return err
	}
	log.Info().Msgf("Billogram created and sent with id: %s", bg.ID)
	return nil
}

// CheckRecord runs every pure derivation for a record without touching the
// network. Used by offline validation and dry runs.
func CheckRecord(rec model.InvoiceRecord) error {
	if _, err := billing.BuildContactField(rec); err != nil {
		return err
	}
	billing.BuildAddressField(rec)
	billing.BuildItemField(rec)
	billing.DetermineSendMethod(rec)
	return nil
}
