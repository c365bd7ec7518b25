package services

import (
	"github.com/twitter/icewire/common/stats"
	"github.com/twitter/icewire/config/jsonconfig"
	"github.com/twitter/icewire/ice"
)

// LoggingInvoiceConfig is used by ice to create a logging InvoiceService.
type LoggingInvoiceConfig struct {
	Type   string
	Prefix string
}

func (c *LoggingInvoiceConfig) Install(bag *ice.MagicBag) {
	bag.Put(c.Create)
}

func (c *LoggingInvoiceConfig) Create(stat stats.StatsReceiver) InvoiceService {
	return NewLoggingInvoiceService(c.Prefix, stat.Scope("invoice"))
}

// LoggingDeliveryConfig is used by ice to create a logging DeliveryService.
type LoggingDeliveryConfig struct {
	Type    string
	Carrier string
}

func (c *LoggingDeliveryConfig) Install(bag *ice.MagicBag) {
	bag.Put(c.Create)
}

func (c *LoggingDeliveryConfig) Create(stat stats.StatsReceiver) DeliveryService {
	return NewLoggingDeliveryService(c.Carrier, stat.Scope("delivery"))
}

// Schema lists the configurable services. With no configuration both are logging services.
func Schema() jsonconfig.Schema {
	return jsonconfig.Schema{
		"InvoiceService": {
			"logging": &LoggingInvoiceConfig{},
			"":        &LoggingInvoiceConfig{Type: "logging", Prefix: "INV"},
		},
		"DeliveryService": {
			"logging": &LoggingDeliveryConfig{},
			"":        &LoggingDeliveryConfig{Type: "logging", Carrier: "default"},
		},
	}
}

// StatsModule binds stat as the StatsReceiver every service is created with.
func StatsModule(stat stats.StatsReceiver) ice.Module {
	return ice.ModuleFunc(func(bag *ice.MagicBag) {
		bag.Put(func() stats.StatsReceiver { return stat })
	})
}
