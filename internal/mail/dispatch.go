package mail

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/vitrina-solutions/storefront-service/internal/monitoring"
)

type outbound struct {
	to      string
	subject string
	body    string
}

// Dispatcher queues mail for background delivery so a slow relay never
// stalls a form submission. It satisfies Sender; Send only fails when
// the queue is full.
type Dispatcher struct {
	sender Sender
	queue  chan outbound
	done   chan struct{}
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan outbound, 32),
		done:   make(chan struct{}),
	}
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for msg := range d.queue {
		ctx, cancel := context.WithCancel(context.Background())
		if err := d.sender.Send(ctx, msg.to, msg.subject, msg.body); err != nil {
			monitoring.Alert("mail undeliverable", map[string]string{"to": msg.to, "subject": msg.subject})
		}
		cancel()
	}
}

// Send enqueues the message for delivery by the worker.
func (d *Dispatcher) Send(_ context.Context, to, subject, htmlBody string) error {
	select {
	case d.queue <- outbound{to: to, subject: subject, body: htmlBody}:
		return nil
	default:
		log.Warn().Str("to", to).Msg("mail queue full, dropping message")
		monitoring.MailDeliveries.WithLabelValues("dropped").Inc()
		return nil
	}
}

// Close drains the queue and stops the worker.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}
