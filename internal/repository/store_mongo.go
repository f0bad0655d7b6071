package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"prodtrack/internal/adapters"
	"prodtrack/internal/domain/user"
)

const usersCollection = "users"

// MongoUserStore keeps one document per user, _id being the email. It exposes
// the same whole-store load/mutate/save contract as FileUserStore. Documents
// that fail to decode are skipped; saves only upsert, so they stay untouched.
type MongoUserStore struct {
	adapter *adapters.AdapterMongo
	log     *zap.SugaredLogger
	mu      sync.Mutex
}

func NewMongoUserStore(adapter *adapters.AdapterMongo, log *zap.SugaredLogger) *MongoUserStore {
	return &MongoUserStore{adapter: adapter, log: log}
}

func (m *MongoUserStore) View(ctx context.Context, fn func(users user.Users) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	users, err := m.load(ctx)
	if err != nil {
		return err
	}
	return fn(users)
}

func (m *MongoUserStore) Update(ctx context.Context, fn func(users user.Users) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	users, err := m.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(users); err != nil {
		return err
	}
	return m.save(ctx, users)
}

func (m *MongoUserStore) load(ctx context.Context) (user.Users, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := m.adapter.Database.Collection(usersCollection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	decoded := map[string]*user.User{}
	for cursor.Next(ctx) {
		var u user.User
		if err := cursor.Decode(&u); err != nil {
			m.log.Errorf("store: skipping undecodable user document %v: %v", cursor.Current.Lookup("_id"), err)
			continue
		}
		decoded[u.Email] = &u
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	users, shadowed := rekey(decoded)
	for _, key := range shadowed {
		m.log.Warnf("store: user document %q collides with %q, skipping it", key, user.NormalizeEmail(key))
	}
	return users, nil
}

func (m *MongoUserStore) save(ctx context.Context, users user.Users) error {
	if len(users) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	models := make([]mongo.WriteModel, 0, len(users))
	for email, u := range users {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": email}).
			SetReplacement(u).
			SetUpsert(true))
	}

	_, err := m.adapter.Database.Collection(usersCollection).
		BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("write users: %w", err)
	}
	return nil
}
