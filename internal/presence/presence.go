package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps live connection state in Redis so presence survives restarts
// of individual app instances. One key per user:
//
//	<prefix>:presence:<userID> -> {"status":..., "last_seen":...}
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

type Status struct {
	Online   bool  `json:"online"`
	LastSeen int64 `json:"last_seen"`
}

func NewStore(client *redis.Client, prefix string, ttl time.Duration) *Store {
	return &Store{client: client, prefix: prefix, ttl: ttl}
}

func (s *Store) key(userID string) string {
	return fmt.Sprintf("%s:presence:%s", s.prefix, userID)
}

func (s *Store) SetOnline(ctx context.Context, userID string) error {
	st := Status{Online: true, LastSeen: time.Now().Unix()}
	b, _ := json.Marshal(st)
	return s.client.Set(ctx, s.key(userID), b, s.ttl).Err()
}

func (s *Store) SetOffline(ctx context.Context, userID string) error {
	st := Status{Online: false, LastSeen: time.Now().Unix()}
	b, _ := json.Marshal(st)
	// offline entries don't expire: last_seen stays readable
	return s.client.Set(ctx, s.key(userID), b, 0).Err()
}

func (s *Store) Get(ctx context.Context, userID string) (*Status, error) {
	b, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err == redis.Nil {
		return &Status{}, nil
	}
	if err != nil {
		return nil, err
	}
	var st Status
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, err
	}
	return &st, nil
}
