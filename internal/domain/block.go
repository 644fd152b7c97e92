package domain

import "time"

// BlockType тип личного времени мастера
type BlockType string

const (
	BlockPersonal BlockType = "personal"
	BlockBreak    BlockType = "break"
	BlockTraining BlockType = "training"
	BlockVacation BlockType = "vacation"
)

// TechnicianBlock блок личного времени мастера (перерыв, обучение, отпуск)
type TechnicianBlock struct {
	ID           int64
	TechnicianID int64
	Title        string
	BlockType    BlockType
	StartTime    time.Time
	EndTime      time.Time
	IsActive     bool

	// RecurrenceRule RRULE по RFC 5545 (например, "FREQ=WEEKLY;BYDAY=MO,WE").
	// StartTime/EndTime задают первое вхождение
	RecurrenceRule *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRecurring возвращает true для повторяющихся блоков
func (b *TechnicianBlock) IsRecurring() bool {
	return b.RecurrenceRule != nil && *b.RecurrenceRule != ""
}

// Duration длительность одного вхождения блока
func (b *TechnicianBlock) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}

// Occurrence возвращает копию блока, сдвинутую на конкретное вхождение
func (b *TechnicianBlock) Occurrence(start time.Time) *TechnicianBlock {
	occ := *b
	occ.StartTime = start
	occ.EndTime = start.Add(b.Duration())
	return &occ
}
