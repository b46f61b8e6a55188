package mongostore

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// userDoc lives in the users collection keyed by username; the recent rooms
// list is embedded in it.
type userDoc struct {
	Username    string    `bson:"_id"`
	Email       string    `bson:"email"`
	Password    string    `bson:"password"`
	IsActive    bool      `bson:"is_active"`
	CreatedAt   time.Time `bson:"created_at"`
	RecentRooms []string  `bson:"recent_rooms,omitempty"`
}

type messageDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	RoomID    string             `bson:"roomid"`
	Username  string             `bson:"username"`
	Message   string             `bson:"message"`
	Timestamp time.Time          `bson:"timestamp"`
}
