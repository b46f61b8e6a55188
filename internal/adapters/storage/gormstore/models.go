package gormstore

import "time"

type userRow struct {
	Username     string    `gorm:"primarykey;size:30"`
	Email        string    `gorm:"uniqueIndex;size:254;not null"`
	PasswordHash string    `gorm:"not null"`
	IsActive     bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (userRow) TableName() string { return "users" }

// messageRow keeps the timestamp as unix milliseconds so ordering is exact
// and independent of how the driver formats times.
type messageRow struct {
	ID       uint   `gorm:"primarykey"`
	Room     string `gorm:"size:64;not null;index:idx_messages_room_sent,priority:1"`
	Username string `gorm:"size:30;not null"`
	Body     string `gorm:"not null"`
	SentAt   int64  `gorm:"not null;index:idx_messages_room_sent,priority:2"`
}

func (messageRow) TableName() string { return "messages" }

type recentRoomsRow struct {
	Username string   `gorm:"primarykey;size:30"`
	Rooms    []string `gorm:"serializer:json"`
}

func (recentRoomsRow) TableName() string { return "recent_rooms" }
