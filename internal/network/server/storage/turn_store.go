package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/stellar-empires/internal/protocol"
)

const (
	// Redis key 前缀
	gameKeyPrefix = "game:"

	// 回合数据过期时间
	turnExpiration = 24 * time.Hour
)

// TurnStore 回合指令存储
//
// 每个帝国每回合一个 hash（order id -> OrderInfo JSON），存档单独保存。
type TurnStore struct {
	client *redis.Client
}

// NewTurnStore 创建回合指令存储
func NewTurnStore(client *redis.Client) *TurnStore {
	return &TurnStore{client: client}
}

func turnKey(gameID string, turn int) string {
	return fmt.Sprintf("%s%s:turn:%d", gameKeyPrefix, gameID, turn)
}

func ordersKey(gameID string, turn, empireID int) string {
	return fmt.Sprintf("%s:orders:%d", turnKey(gameID, turn), empireID)
}

func saveStateKey(gameID string, turn, empireID int) string {
	return fmt.Sprintf("%s:save:%d", turnKey(gameID, turn), empireID)
}

func indexKey(gameID string, turn int) string {
	return turnKey(gameID, turn) + ":keys"
}

// SaveTurnOrders 保存整回合指令，覆盖之前的增量
func (ts *TurnStore) SaveTurnOrders(ctx context.Context, gameID string, turn, empireID int, orders []protocol.OrderInfo, saveState []byte) error {
	key := ordersKey(gameID, turn, empireID)
	fields, err := orderFields(orders)
	if err != nil {
		return err
	}

	pipe := ts.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(fields) > 0 {
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, turnExpiration)
	}
	pipe.SAdd(ctx, indexKey(gameID, turn), key)
	if len(saveState) > 0 {
		sk := saveStateKey(gameID, turn, empireID)
		pipe.Set(ctx, sk, saveState, turnExpiration)
		pipe.SAdd(ctx, indexKey(gameID, turn), sk)
	}
	pipe.Expire(ctx, indexKey(gameID, turn), turnExpiration)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save turn orders: %w", err)
	}
	return nil
}

// ApplyPartialOrders 应用回合内增量指令
func (ts *TurnStore) ApplyPartialOrders(ctx context.Context, gameID string, turn, empireID int, added []protocol.OrderInfo, removed []int) error {
	key := ordersKey(gameID, turn, empireID)
	fields, err := orderFields(added)
	if err != nil {
		return err
	}

	pipe := ts.client.TxPipeline()
	if len(fields) > 0 {
		pipe.HSet(ctx, key, fields)
	}
	if len(removed) > 0 {
		ids := make([]string, len(removed))
		for i, id := range removed {
			ids[i] = strconv.Itoa(id)
		}
		pipe.HDel(ctx, key, ids...)
	}
	pipe.Expire(ctx, key, turnExpiration)
	pipe.SAdd(ctx, indexKey(gameID, turn), key)
	pipe.Expire(ctx, indexKey(gameID, turn), turnExpiration)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("apply partial orders: %w", err)
	}
	return nil
}

// LoadOrders 读取帝国本回合的指令，按 order id 排序
func (ts *TurnStore) LoadOrders(ctx context.Context, gameID string, turn, empireID int) ([]protocol.OrderInfo, error) {
	values, err := ts.client.HGetAll(ctx, ordersKey(gameID, turn, empireID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	orders := make([]protocol.OrderInfo, 0, len(values))
	for field, raw := range values {
		var o protocol.OrderInfo
		if err := json.Unmarshal([]byte(raw), &o); err != nil {
			return nil, fmt.Errorf("decode order %s: %w", field, err)
		}
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

// LoadSaveState 读取帝国本回合的压缩存档，不存在时返回 nil
func (ts *TurnStore) LoadSaveState(ctx context.Context, gameID string, turn, empireID int) ([]byte, error) {
	data, err := ts.client.Get(ctx, saveStateKey(gameID, turn, empireID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load save state: %w", err)
	}
	return data, nil
}

// ClearTurn 删除一个回合的全部数据
func (ts *TurnStore) ClearTurn(ctx context.Context, gameID string, turn int) error {
	idx := indexKey(gameID, turn)
	keys, err := ts.client.SMembers(ctx, idx).Result()
	if err != nil {
		return fmt.Errorf("list turn keys: %w", err)
	}
	keys = append(keys, idx)
	if err := ts.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("clear turn: %w", err)
	}
	return nil
}

func orderFields(orders []protocol.OrderInfo) (map[string]any, error) {
	fields := make(map[string]any, len(orders))
	for _, o := range orders {
		data, err := json.Marshal(o)
		if err != nil {
			return nil, fmt.Errorf("encode order %d: %w", o.ID, err)
		}
		fields[strconv.Itoa(o.ID)] = string(data)
	}
	return fields, nil
}
