// Package outboxrepo stores domain events in the outbox_messages table until
// they are relayed to the broker.
package outboxrepo

import (
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/ports"

	"github.com/google/uuid"
)

type OutboxMessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EventType   string     `gorm:"size:64;not null"`
	AggregateID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Key         string     `gorm:"size:32;not null"`
	Payload     string     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"not null;index"`
	PublishedAt *time.Time `gorm:"index"`
}

func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

func fromMessage(m ports.OutboxMessage) OutboxMessageDTO {
	return OutboxMessageDTO{
		ID:          m.ID.Bytes(),
		EventType:   m.EventType,
		AggregateID: m.AggregateID.Bytes(),
		Key:         m.Key,
		Payload:     string(m.Payload),
		OccurredAt:  m.OccurredAt,
	}
}

func toMessage(dto OutboxMessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	return ports.OutboxMessage{
		ID:          id,
		EventType:   dto.EventType,
		AggregateID: aggregateID,
		Key:         dto.Key,
		Payload:     []byte(dto.Payload),
		OccurredAt:  dto.OccurredAt.UTC(),
	}, nil
}
