// Package jobs holds the background work dispatched by the controllers.
// Every job is registered by name at boot so queue workers can rebuild it
// from its stored payload.
package jobs

import (
	"fmt"

	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/mail"
	"github.com/shashiranjanraj/vastra/pkg/queue"
)

const orderConfirmationJob = "jobs.OrderConfirmation"

// RegisterAll makes every job type known to the queue. Call once at boot,
// before workers start.
func RegisterAll() {
	queue.Register(orderConfirmationJob, func() queue.Job { return &OrderConfirmation{} })
}

// OrderConfirmation emails the buyer after checkout. The fields are the
// snapshot the email needs; the job never reads the store, so a later
// status change cannot alter a confirmation already queued.
type OrderConfirmation struct {
	OrderID string `json:"order_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Total   string `json:"total"`
}

func (j *OrderConfirmation) Handle() error {
	err := mail.To(j.Email).
		Subject(fmt.Sprintf("Order %s confirmed", j.OrderID)).
		Body(fmt.Sprintf(
			"<p>Hi %s,</p><p>Your order <strong>%s</strong> for %s has been placed. "+
				"We will let you know when it ships.</p>", j.Name, j.OrderID, j.Total)).
		Send()
	if err != nil {
		return fmt.Errorf("jobs: order confirmation %s: %w", j.OrderID, err)
	}
	logger.Info("order confirmation sent", "order_id", j.OrderID)
	return nil
}
