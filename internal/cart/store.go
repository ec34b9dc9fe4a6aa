package cart

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/meiduo-next/mall/internal/constants"

	"github.com/redis/go-redis/v9"
)

// ErrStoreUnavailable 购物车存储未启用
var ErrStoreUnavailable = errors.New("cart store unavailable")

// Entry 购物车条目
type Entry struct {
	SKUID    uint `json:"sku_id"`
	Count    int  `json:"count"`
	Selected bool `json:"selected"`
}

// Store 购物车存储接口
// 购物车存放于 Redis：hash 记录 sku_id -> count，set 记录已勾选的 sku_id。
type Store interface {
	// GetAll 读取用户的全部购物车条目
	GetAll(ctx context.Context, userID uint) ([]Entry, error)
	// GetSelected 读取已勾选条目快照（sku_id -> count）
	GetSelected(ctx context.Context, userID uint) (map[uint]int, error)
	// SetEntry 写入/覆盖单个条目及其勾选状态
	SetEntry(ctx context.Context, userID, skuID uint, count int, selected bool) error
	// RemoveEntries 批量删除条目（hash 与勾选集合在同一 pipeline 内清理）
	RemoveEntries(ctx context.Context, userID uint, skuIDs []uint) error
	// SelectAll 全选/取消全选
	SelectAll(ctx context.Context, userID uint, selected bool) error
	// Merge 合并游客购物车（数量覆盖、勾选状态按传入集合调整，单 pipeline 提交）
	Merge(ctx context.Context, userID uint, counts map[uint]int, selected, unselected []uint) error
}

// RedisStore go-redis 实现
type RedisStore struct {
	client *redis.Client
	prefix string
	expire time.Duration
}

// NewRedisStore 创建购物车存储，expire 为 0 时购物车键不过期
func NewRedisStore(client *redis.Client, prefix string, expire time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, expire: expire}
}

func (s *RedisStore) hashKey(userID uint) string {
	return s.buildKey(fmt.Sprintf(constants.CartHashKeyFormat, userID))
}

func (s *RedisStore) selectedKey(userID uint) string {
	return s.buildKey(fmt.Sprintf(constants.CartSelectedKeyFormat, userID))
}

func (s *RedisStore) buildKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

func (s *RedisStore) ready() error {
	if s == nil || s.client == nil {
		return ErrStoreUnavailable
	}
	return nil
}

// GetAll 读取用户的全部购物车条目
func (s *RedisStore) GetAll(ctx context.Context, userID uint) ([]Entry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	counts, err := s.client.HGetAll(ctx, s.hashKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	selectedIDs, err := s.client.SMembers(ctx, s.selectedKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	selected := make(map[uint]bool, len(selectedIDs))
	for _, raw := range selectedIDs {
		if id, ok := parseUint(raw); ok {
			selected[id] = true
		}
	}

	entries := make([]Entry, 0, len(counts))
	for rawID, rawCount := range counts {
		id, ok := parseUint(rawID)
		if !ok {
			continue
		}
		count, err := strconv.Atoi(rawCount)
		if err != nil || count <= 0 {
			continue
		}
		entries = append(entries, Entry{SKUID: id, Count: count, Selected: selected[id]})
	}
	return entries, nil
}

// GetSelected 读取已勾选条目快照
func (s *RedisStore) GetSelected(ctx context.Context, userID uint) (map[uint]int, error) {
	entries, err := s.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	snapshot := make(map[uint]int)
	for _, entry := range entries {
		if entry.Selected {
			snapshot[entry.SKUID] = entry.Count
		}
	}
	return snapshot, nil
}

// SetEntry 写入/覆盖单个条目及其勾选状态
func (s *RedisStore) SetEntry(ctx context.Context, userID, skuID uint, count int, selected bool) error {
	if err := s.ready(); err != nil {
		return err
	}
	field := strconv.FormatUint(uint64(skuID), 10)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.hashKey(userID), field, count)
	if selected {
		pipe.SAdd(ctx, s.selectedKey(userID), field)
	} else {
		pipe.SRem(ctx, s.selectedKey(userID), field)
	}
	s.touchExpire(ctx, pipe, userID)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) touchExpire(ctx context.Context, pipe redis.Pipeliner, userID uint) {
	if s.expire <= 0 {
		return
	}
	pipe.Expire(ctx, s.hashKey(userID), s.expire)
	pipe.Expire(ctx, s.selectedKey(userID), s.expire)
}

// RemoveEntries 批量删除条目
func (s *RedisStore) RemoveEntries(ctx context.Context, userID uint, skuIDs []uint) error {
	if err := s.ready(); err != nil {
		return err
	}
	if len(skuIDs) == 0 {
		return nil
	}
	fields := make([]string, 0, len(skuIDs))
	members := make([]interface{}, 0, len(skuIDs))
	for _, id := range skuIDs {
		field := strconv.FormatUint(uint64(id), 10)
		fields = append(fields, field)
		members = append(members, field)
	}
	pipe := s.client.TxPipeline()
	pipe.HDel(ctx, s.hashKey(userID), fields...)
	pipe.SRem(ctx, s.selectedKey(userID), members...)
	_, err := pipe.Exec(ctx)
	return err
}

// SelectAll 全选/取消全选
func (s *RedisStore) SelectAll(ctx context.Context, userID uint, selected bool) error {
	if err := s.ready(); err != nil {
		return err
	}
	if !selected {
		return s.client.Del(ctx, s.selectedKey(userID)).Err()
	}
	counts, err := s.client.HKeys(ctx, s.hashKey(userID)).Result()
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		return nil
	}
	members := make([]interface{}, 0, len(counts))
	for _, field := range counts {
		members = append(members, field)
	}
	return s.client.SAdd(ctx, s.selectedKey(userID), members...).Err()
}

// Merge 合并游客购物车
func (s *RedisStore) Merge(ctx context.Context, userID uint, counts map[uint]int, selected, unselected []uint) error {
	if err := s.ready(); err != nil {
		return err
	}
	if len(counts) == 0 {
		return nil
	}
	pipe := s.client.TxPipeline()
	hashKey := s.hashKey(userID)
	selectedKey := s.selectedKey(userID)
	for skuID, count := range counts {
		if count <= 0 {
			continue
		}
		pipe.HSet(ctx, hashKey, strconv.FormatUint(uint64(skuID), 10), count)
	}
	if len(selected) > 0 {
		pipe.SAdd(ctx, selectedKey, toMembers(selected)...)
	}
	if len(unselected) > 0 {
		pipe.SRem(ctx, selectedKey, toMembers(unselected)...)
	}
	s.touchExpire(ctx, pipe, userID)
	_, err := pipe.Exec(ctx)
	return err
}

func toMembers(ids []uint) []interface{} {
	members := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		members = append(members, strconv.FormatUint(uint64(id), 10))
	}
	return members
}

func parseUint(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
