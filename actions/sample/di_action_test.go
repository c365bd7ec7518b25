package sample

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"

	"github.com/twitter/icewire/actions"
	"github.com/twitter/icewire/common/stats"
	"github.com/twitter/icewire/config/jsonconfig"
	"github.com/twitter/icewire/ice"
	"github.com/twitter/icewire/locator"
	"github.com/twitter/icewire/pipeline"
	"github.com/twitter/icewire/services"
)

func TestProcessCallsBothServicesOnce(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	invoice := services.NewMockInvoiceService(mockCtrl)
	delivery := services.NewMockDeliveryService(mockCtrl)
	gomock.InOrder(
		invoice.EXPECT().SendInvoice().Return(nil).Times(1),
		delivery.EXPECT().CreateDelivery().Return(nil).Times(1),
	)

	bag := ice.NewMagicBag()
	bag.Put(func() services.InvoiceService { return invoice })
	bag.Put(func() services.DeliveryService { return delivery })

	a := &DIAction{}
	if err := a.Wire(bag); err != nil {
		t.Fatal(err)
	}
	msg := &pipeline.Message{ID: "m1"}
	out, err := a.Process(msg)
	if err != nil {
		t.Fatal(err)
	}
	if out != msg {
		t.Fatal("expected the message back unchanged")
	}
}

func TestProcessStopsOnInvoiceError(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	invoice := services.NewMockInvoiceService(mockCtrl)
	delivery := services.NewMockDeliveryService(mockCtrl)
	invoice.EXPECT().SendInvoice().Return(errors.New("ledger down"))

	a := &DIAction{invoiceService: invoice, deliveryService: delivery}
	if _, err := a.Process(&pipeline.Message{}); err == nil {
		t.Fatal("expected the invoice error")
	}
}

func TestWireNamesMissingService(t *testing.T) {
	bag := ice.NewMagicBag()
	bag.Put(func() services.InvoiceService { return nil })
	err := (&DIAction{}).Wire(bag)
	if err == nil {
		t.Fatal("expected an error when DeliveryService is unbound")
	}
}

const e2eRefs = `{
 "Contexts": {
  "esb.parent":   {"Type": "context", "ConfigLocation": "parent.json"},
  "esb.services": {"Type": "context", "ConfigLocation": "services.json", "Parent": "esb.parent"}
 }
}`

// The child binds the carrier; the invoice service comes from the parent.
func TestEndToEnd(t *testing.T) {
	stat := stats.DefaultStatsReceiver()
	asset := jsonconfig.MapAsset(map[string]string{
		locator.DefaultSelector: e2eRefs,
		"parent.json":           `{"InvoiceService": {"Type": "logging", "Prefix": "ACME"}}`,
		"services.json":         `{"DeliveryService": {"Type": "logging", "Carrier": "DHL"}}`,
	})
	registry := locator.NewRegistry(asset, services.Schema(), stat, services.StatsModule(stat))

	action := &DIAction{}
	p := pipeline.NewPipeline("e2e", stat)
	if err := p.Add(actions.NewAutowiredAction(action, registry), pipeline.Properties{
		actions.ContextKeyProperty: "esb.services",
	}); err != nil {
		t.Fatal(err)
	}
	if err := p.Initialize(); err != nil {
		t.Fatal(err)
	}

	invoice, delivery := action.Services()
	if invoice == nil || delivery == nil {
		t.Fatalf("expected both services wired; were %v %v", invoice, delivery)
	}
	if p, ok := invoice.(interface{ Prefix() string }); !ok || p.Prefix() != "ACME" {
		t.Fatalf("expected the parent's ACME invoice service; was %#v", invoice)
	}
	if c, ok := delivery.(interface{ Carrier() string }); !ok || c.Carrier() != "DHL" {
		t.Fatalf("expected the child's DHL delivery service; was %#v", delivery)
	}

	msg, err := pipeline.NewMessage([]byte("order-1"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Process(msg); err != nil {
		t.Fatal(err)
	}
	if c := stat.Counter("invoice", stats.InvoiceSentCounter).Count(); c != 1 {
		t.Fatalf("expected 1 invoice per message; was %d", c)
	}
	if c := stat.Counter("delivery", stats.DeliveryCreatedCounter).Count(); c != 1 {
		t.Fatalf("expected 1 delivery per message; was %d", c)
	}

	l, err := registry.GetInstance("")
	if err != nil {
		t.Fatal(err)
	}
	if l.RefCount("esb.services") != 1 || l.RefCount("esb.parent") != 1 {
		t.Fatalf("unexpected counts before destroy: services=%d parent=%d",
			l.RefCount("esb.services"), l.RefCount("esb.parent"))
	}
	if err := p.Destroy(); err != nil {
		t.Fatal(err)
	}
	if l.RefCount("esb.services") != 0 || l.RefCount("esb.parent") != 0 {
		t.Fatal("destroying the pipeline must release every container")
	}
}
