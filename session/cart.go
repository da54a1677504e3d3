package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CartStore 每个会话一份申请购物车，整包 JSON 存 Redis。
// 购物车只是提交预约前的草稿，过期即丢，不落库。
type CartStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCartStore(rdb *redis.Client, ttl time.Duration) *CartStore {
	return &CartStore{rdb: rdb, ttl: ttl}
}

type CartLine struct {
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Qty      int    `json:"qty"`
}

func cartKey(sid string) string { return fmt.Sprintf("daci:cart:%s", sid) }

func (s *CartStore) Get(ctx context.Context, sid string) ([]CartLine, error) {
	b, err := s.rdb.Get(ctx, cartKey(sid)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var lines []CartLine
	if err := json.Unmarshal(b, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Upsert 更新一行：同一 SKU 覆盖数量，数量 ≤ 0 视为移除。
// 返回更新后的整车内容。
func (s *CartStore) Upsert(ctx context.Context, sid string, line CartLine) ([]CartLine, error) {
	lines, err := s.Get(ctx, sid)
	if err != nil {
		return nil, err
	}

	out := make([]CartLine, 0, len(lines)+1)
	for _, l := range lines {
		if l.Name == line.Name && l.Brand == line.Brand && l.Type == line.Type && l.Category == line.Category {
			continue
		}
		out = append(out, l)
	}
	if line.Qty > 0 {
		out = append(out, line)
	}

	return out, s.save(ctx, sid, out)
}

func (s *CartStore) Clear(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, cartKey(sid)).Err()
}

func (s *CartStore) save(ctx context.Context, sid string, lines []CartLine) error {
	b, _ := json.Marshal(lines)
	return s.rdb.Set(ctx, cartKey(sid), b, s.ttl).Err()
}
