package sos

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"echo_campus/internal/models"
)

// DefaultStagger spaces consecutive link opens so the browser does not block
// near-simultaneous pop-ups.
const DefaultStagger = 1500 * time.Millisecond

// Link is one outbound messaging link produced by a dispatch.
type Link struct {
	ContactName string `json:"contact_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	URL         string `json:"url"`
	Generic     bool   `json:"generic"`
}

// BuildLinks produces the outbound link set for a dispatch: one link per
// trusted contact, or exactly one generic link when the user has none.
// Never both.
func BuildLinks(contacts []models.TrustedContact, message string) []Link {
	if len(contacts) == 0 {
		return []Link{{URL: WhatsAppLink("", message), Generic: true}}
	}
	links := make([]Link, 0, len(contacts))
	for _, contact := range contacts {
		links = append(links, Link{
			ContactName: contact.Name,
			Phone:       contact.Phone,
			URL:         WhatsAppLink(contact.Phone, message),
		})
	}
	return links
}

// Opener opens an external messaging link. "Opened" does not mean delivered;
// this is a best-effort notification mechanism.
type Opener interface {
	Open(url string) error
}

// Dispatcher walks a link batch on a fixed-interval schedule. A failure to
// open one link never aborts the rest of the batch.
type Dispatcher struct {
	opener  Opener
	stagger time.Duration
}

func NewDispatcher(opener Opener, stagger time.Duration) *Dispatcher {
	if stagger <= 0 {
		stagger = DefaultStagger
	}
	return &Dispatcher{opener: opener, stagger: stagger}
}

// Dispatch opens each link in order, waiting the stagger interval between
// consecutive opens. Returns the number of links successfully opened.
// Cancellation stops the remaining schedule.
func (d *Dispatcher) Dispatch(ctx context.Context, links []Link) int {
	opened := 0
	for i, link := range links {
		if i > 0 {
			select {
			case <-time.After(d.stagger):
			case <-ctx.Done():
				logrus.WithField("remaining", len(links)-i).Warn("sos: dispatch cancelled mid-batch")
				return opened
			}
		}
		if err := d.opener.Open(link.URL); err != nil {
			logrus.WithError(err).WithField("contact", link.ContactName).Warn("sos: failed to open messaging link")
			continue
		}
		opened++
	}
	return opened
}
