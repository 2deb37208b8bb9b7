package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/booking"
)

// DraftStore は予約下書きをTTL付きでRedisに保持するセッションストア
// 期限切れで下書きは自動的に破棄される
type DraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDraftStore は新しいDraftStoreインスタンスを作成する
func NewDraftStore(client *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{client: client, ttl: ttl}
}

// Save は下書きをJSONで保存し、TTLを更新する
func (s *DraftStore) Save(ctx context.Context, d *booking.Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("下書きのシリアライズに失敗: %w", err)
	}
	if err := s.client.Set(ctx, s.draftKey(d.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("下書き保存に失敗: %w", err)
	}
	return nil
}

// Get はIDから下書きを取得する
func (s *DraftStore) Get(ctx context.Context, id string) (*booking.Draft, error) {
	data, err := s.client.Get(ctx, s.draftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, booking.ErrDraftNotFound
		}
		return nil, fmt.Errorf("下書き取得に失敗: %w", err)
	}
	var d booking.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("下書きのデシリアライズに失敗: %w", err)
	}
	return &d, nil
}

// Delete は下書きを破棄する
func (s *DraftStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.draftKey(id)).Err(); err != nil {
		return fmt.Errorf("下書き削除に失敗: %w", err)
	}
	return nil
}

func (s *DraftStore) draftKey(id string) string {
	return fmt.Sprintf("booking:draft:%s", id)
}

var _ booking.DraftStore = (*DraftStore)(nil)
