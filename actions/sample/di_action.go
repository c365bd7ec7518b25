// Package sample is an example action wired from a container: every message it sees
// sends an invoice and creates a delivery.
package sample

import (
	"github.com/pkg/errors"

	"github.com/twitter/icewire/ice"
	"github.com/twitter/icewire/pipeline"
	"github.com/twitter/icewire/services"
)

type DIAction struct {
	invoiceService  services.InvoiceService
	deliveryService services.DeliveryService
}

// Wire pulls both services from ex.
func (a *DIAction) Wire(ex ice.Extractor) error {
	if err := ex.Extract(&a.invoiceService); err != nil {
		return errors.Wrap(err, "InvoiceService")
	}
	if err := ex.Extract(&a.deliveryService); err != nil {
		return errors.Wrap(err, "DeliveryService")
	}
	return nil
}

func (a *DIAction) Process(msg *pipeline.Message) (*pipeline.Message, error) {
	if err := a.invoiceService.SendInvoice(); err != nil {
		return nil, err
	}
	if err := a.deliveryService.CreateDelivery(); err != nil {
		return nil, err
	}
	return msg, nil
}

// Services exposes what Wire filled in.
func (a *DIAction) Services() (services.InvoiceService, services.DeliveryService) {
	return a.invoiceService, a.deliveryService
}
