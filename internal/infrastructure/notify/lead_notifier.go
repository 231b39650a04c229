package notify

import (
	"context"

	"github.com/jhoicas/solarsync-api/internal/application/ports"
	"github.com/jhoicas/solarsync-api/pkg/logger"
)

var _ ports.LeadNotifier = (*LeadNotifier)(nil)

// LeadSink canal concreto por el que se avisa al proveedor.
type LeadSink interface {
	SendLeadCreated(ctx context.Context, event ports.LeadCreatedEvent) error
}

// LeadNotifier adapta el puerto LeadNotifier al despachador asíncrono.
type LeadNotifier struct {
	dispatcher *Dispatcher
	sink       LeadSink
}

// NewLeadNotifier construye el adaptador.
func NewLeadNotifier(dispatcher *Dispatcher, sink LeadSink) *LeadNotifier {
	return &LeadNotifier{dispatcher: dispatcher, sink: sink}
}

// LeadCreated encola el aviso y retorna de inmediato.
func (n *LeadNotifier) LeadCreated(event ports.LeadCreatedEvent) {
	n.dispatcher.Submit(Job{
		Name: "lead_created",
		Run: func(ctx context.Context) error {
			return n.sink.SendLeadCreated(ctx, event)
		},
	})
}

// LogSink deja constancia del aviso en el log estructurado.
type LogSink struct {
	log *logger.Logger
}

// NewLogSink construye el sink por defecto.
func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{log: log.Component("notify")}
}

// SendLeadCreated registra el lead recibido por el proveedor.
func (s *LogSink) SendLeadCreated(_ context.Context, event ports.LeadCreatedEvent) error {
	s.log.Info().
		Str("lead_id", event.LeadID).
		Str("supplier_id", event.SupplierID).
		Str("supplier_name", event.SupplierName).
		Str("contact_email", event.ContactEmail).
		Msg("nuevo lead para el proveedor")
	return nil
}
