// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/execdesk/scheduling-service/internal/domain/models"
	"github.com/execdesk/scheduling-service/internal/logging"
	"github.com/execdesk/scheduling-service/pkg/constants"
	"github.com/go-viper/mapstructure/v2"
)

// INatsConn is the NATS connection interface needed by the message builder.
type INatsConn interface {
	IsConnected() bool
	Publish(subj string, data []byte) error
}

// MessageBuilder builds messages and sends them to the NATS server.
type MessageBuilder struct {
	NatsConn INatsConn
}

// NewMessageBuilder creates a new MessageBuilder.
func NewMessageBuilder(natsConn INatsConn) *MessageBuilder {
	return &MessageBuilder{
		NatsConn: natsConn,
	}
}

// sendMessage sends the message to the NATS server.
func (m *MessageBuilder) sendMessage(ctx context.Context, subject string, data []byte) error {
	err := m.NatsConn.Publish(subject, data)
	if err != nil {
		slog.ErrorContext(ctx, "error sending message to NATS", logging.ErrKey, err, "subject", subject)
		return err
	}
	slog.DebugContext(ctx, "sent message to NATS", "subject", subject)
	return nil
}

// sendIndexerMessage sends the message to the NATS server for the indexer.
func (m *MessageBuilder) sendIndexerMessage(ctx context.Context, subject string, action models.MessageAction, data []byte, tags []string) error {
	headers := make(map[string]string)
	if principal, ok := ctx.Value(constants.ExecutiveContextID).(string); ok {
		headers[constants.XOnBehalfOfHeader] = principal
	}

	var payload any
	switch action {
	case models.ActionCreated, models.ActionUpdated:
		// The data should be a JSON object.
		var jsonData any
		if err := json.Unmarshal(data, &jsonData); err != nil {
			slog.ErrorContext(ctx, "error unmarshalling data into JSON", logging.ErrKey, err, "subject", subject)
			return err
		}

		// Decode the JSON data into a map[string]any since that is what the indexer expects.
		config := mapstructure.DecoderConfig{
			TagName: "json",
			Result:  &payload,
		}
		decoder, err := mapstructure.NewDecoder(&config)
		if err != nil {
			slog.ErrorContext(ctx, "error creating decoder", logging.ErrKey, err, "subject", subject)
			return err
		}
		err = decoder.Decode(jsonData)
		if err != nil {
			slog.ErrorContext(ctx, "error decoding data", logging.ErrKey, err, "subject", subject)
			return err
		}
	case models.ActionDeleted:
		// The data should just be a string of the UID being deleted.
		payload = string(data)
	}

	message := models.SchedulingIndexerMessage{
		Action:  action,
		Headers: headers,
		Data:    payload,
		Tags:    tags,
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling message into JSON", logging.ErrKey, err, "subject", subject)
		return err
	}

	slog.DebugContext(ctx, "constructed indexer message",
		"subject", subject,
		"action", action,
		"tags_count", len(tags),
	)

	return m.sendMessage(ctx, subject, messageBytes)
}

// SendIndexMeeting sends the message to the NATS server for the meeting indexing.
func (m *MessageBuilder) SendIndexMeeting(ctx context.Context, action models.MessageAction, data models.Meeting) error {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling data into JSON", logging.ErrKey, err)
		return err
	}

	return m.sendIndexerMessage(ctx, models.IndexMeetingSubject, action, dataBytes, data.Tags())
}

// SendDeleteIndexMeeting sends the message to the NATS server for the meeting index removal.
func (m *MessageBuilder) SendDeleteIndexMeeting(ctx context.Context, data string) error {
	return m.sendIndexerMessage(ctx, models.IndexMeetingSubject, models.ActionDeleted, []byte(data), nil)
}

// SendIndexExecutive sends the message to the NATS server for the executive indexing.
func (m *MessageBuilder) SendIndexExecutive(ctx context.Context, action models.MessageAction, data models.Executive) error {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling data into JSON", logging.ErrKey, err)
		return err
	}

	return m.sendIndexerMessage(ctx, models.IndexExecutiveSubject, action, dataBytes, data.Tags())
}

// SendDeleteIndexExecutive sends the message to the NATS server for the executive index removal.
func (m *MessageBuilder) SendDeleteIndexExecutive(ctx context.Context, data string) error {
	return m.sendIndexerMessage(ctx, models.IndexExecutiveSubject, models.ActionDeleted, []byte(data), nil)
}

// SendIndexConflict sends the message to the NATS server for the conflict ticket indexing.
func (m *MessageBuilder) SendIndexConflict(ctx context.Context, action models.MessageAction, data models.Conflict) error {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling data into JSON", logging.ErrKey, err)
		return err
	}

	return m.sendIndexerMessage(ctx, models.IndexConflictSubject, action, dataBytes, data.Tags())
}

// SendDeleteIndexConflict sends the message to the NATS server for the conflict ticket index removal.
func (m *MessageBuilder) SendDeleteIndexConflict(ctx context.Context, data string) error {
	return m.sendIndexerMessage(ctx, models.IndexConflictSubject, models.ActionDeleted, []byte(data), nil)
}

// SendIndexNotification sends the message to the NATS server for the notification indexing.
func (m *MessageBuilder) SendIndexNotification(ctx context.Context, action models.MessageAction, data models.Notification) error {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling data into JSON", logging.ErrKey, err)
		return err
	}

	return m.sendIndexerMessage(ctx, models.IndexNotificationSubject, action, dataBytes, data.Tags())
}

// SendMeetingScheduled sends a message about a clean-path meeting being created.
func (m *MessageBuilder) SendMeetingScheduled(ctx context.Context, data models.MeetingEventMessage) error {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling data into JSON", logging.ErrKey, err)
		return err
	}

	return m.sendMessage(ctx, models.MeetingScheduledSubject, dataBytes)
}

// SendMeetingCancelled sends a message about a meeting being cancelled.
func (m *MessageBuilder) SendMeetingCancelled(ctx context.Context, data models.MeetingEventMessage) error {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling data into JSON", logging.ErrKey, err)
		return err
	}

	return m.sendMessage(ctx, models.MeetingCancelledSubject, dataBytes)
}

// SendConflictDetected sends a message about a new scheduling conflict being detected.
func (m *MessageBuilder) SendConflictDetected(ctx context.Context, data models.ConflictEventMessage) error {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling data into JSON", logging.ErrKey, err)
		return err
	}

	return m.sendMessage(ctx, models.ConflictDetectedSubject, dataBytes)
}

// SendConflictEscalated sends a message about a conflict ticket being escalated.
func (m *MessageBuilder) SendConflictEscalated(ctx context.Context, data models.ConflictEventMessage) error {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling data into JSON", logging.ErrKey, err)
		return err
	}

	return m.sendMessage(ctx, models.ConflictEscalatedSubject, dataBytes)
}
