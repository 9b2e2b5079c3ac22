// Package notifications defines the operational alerts the storefront
// sends. These go to the shop's staff, not to buyers; buyer email lives in
// the jobs package where it rides the queue.
package notifications

import (
	"fmt"

	"github.com/shashiranjanraj/vastra/pkg/notification"
)

// OrderPlaced alerts the ops channel about a fresh order.
type OrderPlaced struct {
	OrderID string
	Total   string
}

func (n *OrderPlaced) Via() []string { return []string{"mail", "slack"} }

func (n *OrderPlaced) ToMail() notification.MailData {
	return notification.MailData{
		Subject: fmt.Sprintf("New order %s", n.OrderID),
		Body: fmt.Sprintf("<p>Order <strong>%s</strong> was just placed for %s.</p>",
			n.OrderID, n.Total),
	}
}

func (n *OrderPlaced) ToSlack() notification.SlackData {
	return notification.SlackData{
		Attachments: []notification.SlackAttachment{{
			Color: "good",
			Title: "New order " + n.OrderID,
			Text:  "Total " + n.Total,
		}},
	}
}
