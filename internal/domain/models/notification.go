// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package models

import (
	"fmt"
	"time"
)

// NotificationSeverity classifies a notification for the recipient's inbox.
type NotificationSeverity string

const (
	SeverityInfo     NotificationSeverity = "info"
	SeverityWarning  NotificationSeverity = "warning"
	SeverityCritical NotificationSeverity = "critical"
)

// NotificationChannel is the delivery channel for a notification record.
type NotificationChannel string

const (
	ChannelInApp NotificationChannel = "in_app"
	ChannelEmail NotificationChannel = "email"
)

// Notification is a fan-out record for one recipient. Delivery is a
// side-effect sink: failures are logged and never surfaced to the operation
// that triggered the fan-out.
type Notification struct {
	UID          string               `json:"uid"`
	RecipientUID string               `json:"recipient_uid"`
	Title        string               `json:"title"`
	Message      string               `json:"message"`
	Channel      NotificationChannel  `json:"channel"`
	Severity     NotificationSeverity `json:"severity"`
	MeetingUID   string               `json:"meeting_uid,omitempty"`
	ConflictUID  string               `json:"conflict_uid,omitempty"`
	Metadata     map[string]string    `json:"metadata,omitempty"`
	CreatedAt    *time.Time           `json:"created_at,omitempty"`
	ReadAt       *time.Time           `json:"read_at,omitempty"`
}

// Tags generates a consistent set of tags for the notification for searching/indexing.
func (n *Notification) Tags() []string {
	tags := []string{}

	if n == nil {
		return nil
	}

	if n.UID != "" {
		tags = append(tags, n.UID)
		tags = append(tags, fmt.Sprintf("notification_uid:%s", n.UID))
	}

	if n.RecipientUID != "" {
		tags = append(tags, fmt.Sprintf("recipient_uid:%s", n.RecipientUID))
	}

	if n.MeetingUID != "" {
		tags = append(tags, fmt.Sprintf("meeting_uid:%s", n.MeetingUID))
	}

	if n.ConflictUID != "" {
		tags = append(tags, fmt.Sprintf("conflict_uid:%s", n.ConflictUID))
	}

	return tags
}
