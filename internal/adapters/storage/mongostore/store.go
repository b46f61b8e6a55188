// Package mongostore is the MongoDB backend of the chat stores.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dkeye/roomchat/internal/core"
	"github.com/dkeye/roomchat/internal/domain"
)

const (
	usersCollection    = "users"
	messagesCollection = "messages"
)

type Store struct {
	client   *mongo.Client
	users    *mongo.Collection
	messages *mongo.Collection
}

var _ core.Store = (*Store)(nil)

// Connect dials uri, pings it and makes sure the indexes exist.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	s := New(client.Database(database))
	s.client = client
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	log.Info().Str("module", "store.mongo").Str("database", database).Msg("database ready")
	return s, nil
}

func New(db *mongo.Database) *Store {
	return &Store{
		users:    db.Collection(usersCollection),
		messages: db.Collection(messagesCollection),
	}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "roomid", Value: 1}, {Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create messages index: %w", err)
	}
	_, err = s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}
	return nil
}

// Close disconnects the client when the store owns it.
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(context.Background())
}

func (s *Store) FindUser(ctx context.Context, username string) (*domain.UserRecord, error) {
	var doc userDoc
	err := s.users.FindOne(ctx, bson.M{"_id": username}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &domain.UserRecord{
		Username:     doc.Username,
		Email:        doc.Email,
		PasswordHash: doc.Password,
		IsActive:     doc.IsActive,
		CreatedAt:    doc.CreatedAt.UTC(),
	}, nil
}

func (s *Store) SaveUser(ctx context.Context, user *domain.UserRecord) error {
	_, err := s.users.InsertOne(ctx, userDoc{
		Username:  user.Username,
		Email:     user.Email,
		Password:  user.PasswordHash,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrUserExists
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) SaveMessage(ctx context.Context, msg domain.Message) error {
	_, err := s.messages.InsertOne(ctx, messageDoc{
		RoomID:    string(msg.Room),
		Username:  string(msg.Sender),
		Message:   msg.Body,
		Timestamp: msg.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (s *Store) FetchMessages(ctx context.Context, room domain.RoomID, limit, offset int) ([]domain.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cur, err := s.messages.Find(ctx, bson.M{"roomid": string(room)}, opts)
	if err != nil {
		return nil, fmt.Errorf("find messages: %w", err)
	}
	var docs []messageDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	out := make([]domain.Message, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.Message{
			Room:      domain.RoomID(d.RoomID),
			Sender:    domain.Identity(d.Username),
			Body:      d.Message,
			Timestamp: d.Timestamp.UTC(),
		})
	}
	return out, nil
}

func (s *Store) RecentRooms(ctx context.Context, username domain.Identity) (domain.RecentRooms, error) {
	var doc userDoc
	opts := options.FindOne().SetProjection(bson.M{"recent_rooms": 1})
	err := s.users.FindOne(ctx, bson.M{"_id": string(username)}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.RecentRooms{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find recent rooms: %w", err)
	}
	return domain.RecentRoomsFromStrings(doc.RecentRooms), nil
}

// TouchRecentRoom moves room to the head of the list and trims it to limit
// in a single pipeline update, atomic per document.
func (s *Store) TouchRecentRoom(ctx context.Context, username domain.Identity, room domain.RoomID, limit int) error {
	if limit <= 0 {
		limit = domain.DefaultRecentRoomsLimit
	}
	res, err := s.users.UpdateOne(ctx, bson.M{"_id": string(username)}, touchPipeline(string(room), limit))
	if err != nil {
		return fmt.Errorf("touch recent room: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("touch recent room for %q: %w", username, domain.ErrNotFound)
	}
	return nil
}

func touchPipeline(room string, limit int) mongo.Pipeline {
	// $literal keeps ids such as "$x" from being read as field paths.
	lit := bson.M{"$literal": room}
	others := bson.M{"$filter": bson.M{
		"input": bson.M{"$ifNull": bson.A{"$recent_rooms", bson.A{}}},
		"cond":  bson.M{"$ne": bson.A{"$$this", lit}},
	}}
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.M{"recent_rooms": bson.M{
			"$slice": bson.A{bson.M{"$concatArrays": bson.A{bson.A{lit}, others}}, limit},
		}}}},
	}
}
