package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/vitacare/hospital-api/internal/email"
	"github.com/vitacare/hospital-api/internal/model"
	"github.com/vitacare/hospital-api/pkg/logger"
	"github.com/vitacare/hospital-api/pkg/messaging"
)

// Notifier consumes domain events and sends the corresponding notification
// emails. Delivery is best effort: failures are logged, never retried.
type Notifier struct {
	broker   messaging.Broker
	emailSvc email.Service
	logger   *logger.Logger
}

func NewNotifier(broker messaging.Broker, emailSvc email.Service, logger *logger.Logger) *Notifier {
	return &Notifier{
		broker:   broker,
		emailSvc: emailSvc,
		logger:   logger,
	}
}

// Start subscribes to the event channels and blocks until ctx is cancelled.
func (n *Notifier) Start(ctx context.Context) error {
	booked, err := n.broker.Subscribe(ctx, messaging.ChannelAppointmentBooked)
	if err != nil {
		return err
	}
	resolved, err := n.broker.Subscribe(ctx, messaging.ChannelDoctorRequestResolved)
	if err != nil {
		return err
	}

	n.logger.Info("notifier started")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case payload, ok := <-booked:
			if !ok {
				return nil
			}
			n.handleAppointmentBooked(ctx, payload)
		case payload, ok := <-resolved:
			if !ok {
				return nil
			}
			n.handleRequestResolved(ctx, payload)
		}
	}
}

func (n *Notifier) handleAppointmentBooked(ctx context.Context, payload []byte) {
	var event model.AppointmentEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		n.logger.Error(err, "failed to decode appointment event")
		return
	}
	if event.DoctorEmail == "" {
		return
	}
	if err := n.emailSvc.SendAppointmentBooked(ctx, event.DoctorEmail, event.Date, event.Time); err != nil {
		n.logger.Error(err, "failed to notify doctor of booking")
	}
}

func (n *Notifier) handleRequestResolved(ctx context.Context, payload []byte) {
	var event model.DoctorRequestEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		n.logger.Error(err, "failed to decode doctor request event")
		return
	}
	if event.ApplicantEmail == "" {
		return
	}
	status := strings.ToLower(string(event.Status))
	if err := n.emailSvc.SendRequestResolved(ctx, event.ApplicantEmail, event.ApplicantName, status); err != nil {
		n.logger.Error(err, "failed to notify applicant of resolution")
	}
}
