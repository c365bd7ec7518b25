// Package services holds the sample business services pipeline actions are wired with.
package services

import (
	log "github.com/sirupsen/logrus"

	"github.com/twitter/icewire/common/stats"
)

type InvoiceService interface {
	SendInvoice() error
}

type DeliveryService interface {
	CreateDelivery() error
}

// loggingInvoiceService logs and counts every invoice.
type loggingInvoiceService struct {
	prefix string
	sent   stats.Counter
}

func NewLoggingInvoiceService(prefix string, stat stats.StatsReceiver) InvoiceService {
	return &loggingInvoiceService{prefix: prefix, sent: stat.Counter(stats.InvoiceSentCounter)}
}

func (s *loggingInvoiceService) Prefix() string {
	return s.prefix
}

func (s *loggingInvoiceService) SendInvoice() error {
	s.sent.Inc(1)
	log.WithField("invoice", s.prefix).Info("sending invoice")
	return nil
}

// loggingDeliveryService logs and counts every delivery.
type loggingDeliveryService struct {
	carrier string
	created stats.Counter
}

func NewLoggingDeliveryService(carrier string, stat stats.StatsReceiver) DeliveryService {
	return &loggingDeliveryService{carrier: carrier, created: stat.Counter(stats.DeliveryCreatedCounter)}
}

func (s *loggingDeliveryService) Carrier() string {
	return s.carrier
}

func (s *loggingDeliveryService) CreateDelivery() error {
	s.created.Inc(1)
	log.WithField("carrier", s.carrier).Info("creating delivery")
	return nil
}
