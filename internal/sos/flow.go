// Package sos implements the SOS dispatch flow: capture location, persist
// the alert, fetch trusted contacts, then open one staggered messaging link
// per contact. The flow is strictly sequential; any step's failure aborts
// the rest.
package sos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"echo_campus/internal/models"
)

// ErrLocationRequired distinguishes a missing/denied location from generic
// failures; the alert is never persisted in that case.
var ErrLocationRequired = errors.New("sos: location is required")

// AlertStore persists SOS alerts.
type AlertStore interface {
	SaveAlert(ctx context.Context, alert *models.SOSAlert) error
}

// ContactSource fetches the user's trusted contacts.
type ContactSource interface {
	TrustedContacts(ctx context.Context, userID uint) ([]models.TrustedContact, error)
}

// Result describes a completed dispatch.
type Result struct {
	Alert  *models.SOSAlert `json:"alert"`
	Links  []Link           `json:"links"`
	Opened int              `json:"opened"`
}

// Flow orchestrates the SOS steps.
type Flow struct {
	store      AlertStore
	contacts   ContactSource
	dispatcher *Dispatcher
	now        func() time.Time
}

func NewFlow(store AlertStore, contacts ContactSource, dispatcher *Dispatcher) *Flow {
	return &Flow{store: store, contacts: contacts, dispatcher: dispatcher, now: time.Now}
}

// Trigger runs the full flow for a user. Steps run in order — location,
// alert persistence, contact fetch, staggered dispatch — and the first
// failure aborts everything after it.
func (f *Flow) Trigger(ctx context.Context, user models.User, loc *models.Location, emergencyType string) (*Result, error) {
	if loc == nil {
		return nil, ErrLocationRequired
	}
	if emergencyType == "" {
		emergencyType = "general"
	}

	alert := &models.SOSAlert{
		PublicID:      uuid.NewString(),
		UserID:        user.ID,
		EmergencyType: emergencyType,
		Status:        "active",
		Location:      *loc,
	}
	if err := f.store.SaveAlert(ctx, alert); err != nil {
		return nil, fmt.Errorf("sos: recording alert: %w", err)
	}

	contacts, err := f.contacts.TrustedContacts(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("sos: fetching trusted contacts: %w", err)
	}

	message := BuildMessage(user.Name, user.RollNumber, f.now(), loc.Lat, loc.Lng)
	links := BuildLinks(contacts, message)
	opened := f.dispatcher.Dispatch(ctx, links)

	logrus.WithFields(logrus.Fields{
		"alert_id": alert.PublicID,
		"links":    len(links),
		"opened":   opened,
	}).Info("sos: dispatch complete")

	return &Result{Alert: alert, Links: links, Opened: opened}, nil
}
