// Package gormstore is the relational backend of the chat stores, backed by
// gorm and SQLite.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/dkeye/roomchat/internal/core"
	"github.com/dkeye/roomchat/internal/domain"
)

type Store struct {
	db *gorm.DB
}

var _ core.Store = (*Store)(nil)

// Open connects to the SQLite database at path and migrates the schema.
// ":memory:" gives a private in-process database.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	// SQLite allows one writer; an in-memory database also exists per connection.
	sqlDB.SetMaxOpenConns(1)

	s, err := New(db)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	log.Info().Str("module", "store.gorm").Str("path", path).Msg("database ready")
	return s, nil
}

// New wraps an already opened gorm handle and migrates the schema.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&userRow{}, &messageRow{}, &recentRoomsRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) FindUser(ctx context.Context, username string) (*domain.UserRecord, error) {
	var row userRow
	if err := s.db.WithContext(ctx).First(&row, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &domain.UserRecord{
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		IsActive:     row.IsActive,
		CreatedAt:    row.CreatedAt.UTC(),
	}, nil
}

func (s *Store) SaveUser(ctx context.Context, user *domain.UserRecord) error {
	row := userRow{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&userRow{}).
			Where("username = ? OR email = ?", row.Username, row.Email).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrUserExists
		}
		return tx.Create(&row).Error
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrUserExists), errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrUserExists
	default:
		return fmt.Errorf("failed to create user: %w", err)
	}
}

func (s *Store) SaveMessage(ctx context.Context, msg domain.Message) error {
	row := messageRow{
		Room:     string(msg.Room),
		Username: string(msg.Sender),
		Body:     msg.Body,
		SentAt:   msg.Timestamp.UnixMilli(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

func (s *Store) FetchMessages(ctx context.Context, room domain.RoomID, limit, offset int) ([]domain.Message, error) {
	var rows []messageRow
	err := s.db.WithContext(ctx).
		Where("room = ?", string(room)).
		Order("sent_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	out := make([]domain.Message, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Message{
			Room:      domain.RoomID(r.Room),
			Sender:    domain.Identity(r.Username),
			Body:      r.Body,
			Timestamp: time.UnixMilli(r.SentAt).UTC(),
		})
	}
	return out, nil
}

func (s *Store) RecentRooms(ctx context.Context, username domain.Identity) (domain.RecentRooms, error) {
	var row recentRoomsRow
	err := s.db.WithContext(ctx).First(&row, "username = ?", string(username)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RecentRooms{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load recent rooms: %w", err)
	}
	return domain.RecentRoomsFromStrings(row.Rooms), nil
}

func (s *Store) TouchRecentRoom(ctx context.Context, username domain.Identity, room domain.RoomID, limit int) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row recentRoomsRow
		err := tx.First(&row, "username = ?", string(username)).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		row.Username = string(username)
		row.Rooms = domain.RecentRoomsFromStrings(row.Rooms).Touch(room, limit).Strings()
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
	})
	if err != nil {
		return fmt.Errorf("failed to touch recent room: %w", err)
	}
	return nil
}
