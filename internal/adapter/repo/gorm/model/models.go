package model

import "time"

type DriveState struct {
	DriveID   string `gorm:"primaryKey;column:drive_id"`
	SessionID string `gorm:"column:session_id"`
	Mode      string `gorm:"column:mode"`
	X         int32  `gorm:"column:x"`
	Y         int32  `gorm:"column:y"`
	Tick      int64  `gorm:"column:tick"`
	Version   int64  `gorm:"column:version"`
	UpdatedAt time.Time
}

func (DriveState) TableName() string { return "drive_states" }

type TickExecution struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	DriveID        string `gorm:"column:drive_id;uniqueIndex:uq_tick_executions_key"`
	IdempotencyKey string `gorm:"column:idempotency_key;uniqueIndex:uq_tick_executions_key"`
	Move           string `gorm:"column:move"`
	ResultCode     string `gorm:"column:result_code"`
	Held           bool   `gorm:"column:held"`
	Replanned      bool   `gorm:"column:replanned"`
	PlanRemaining  int32  `gorm:"column:plan_remaining"`
	State          []byte `gorm:"column:state;type:jsonb"`
	AppliedAt      time.Time
}

func (TickExecution) TableName() string { return "tick_executions" }

type DomainEvent struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	DriveID    string `gorm:"column:drive_id;index"`
	Type       string `gorm:"column:type"`
	OccurredAt time.Time
	Payload    []byte `gorm:"column:payload;type:jsonb"`
}

func (DomainEvent) TableName() string { return "domain_events" }

type DriveCredential struct {
	DriveID   string `gorm:"primaryKey;column:drive_id"`
	KeySalt   []byte `gorm:"column:key_salt"`
	KeyHash   []byte `gorm:"column:key_hash"`
	Status    string `gorm:"column:status"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (DriveCredential) TableName() string { return "drive_credentials" }

type FieldLayout struct {
	Name      string `gorm:"primaryKey;column:name"`
	Spec      []byte `gorm:"column:spec;type:jsonb"`
	UpdatedAt time.Time
}

func (FieldLayout) TableName() string { return "field_layouts" }
