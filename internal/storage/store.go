package storage

import (
	"context"

	"github.com/palemoky/card-showdown/internal/protocol"
)

// Store 对局记录存储，核心逻辑不依赖任何实现
type Store interface {
	// SaveRound 保存一局记录，同 ID 覆盖
	SaveRound(ctx context.Context, rec *protocol.RoundRecord) error
	// LoadRound 加载一局记录，不存在时返回 nil, nil
	LoadRound(ctx context.Context, id string) (*protocol.RoundRecord, error)
	// RecentRounds 按时间从新到旧返回最近的记录
	RecentRounds(ctx context.Context, limit int) ([]*protocol.RoundRecord, error)
	// Reset 清空所有对局记录
	Reset(ctx context.Context) error
	Close() error
}

// NopStore 不做任何持久化
type NopStore struct{}

func (NopStore) SaveRound(context.Context, *protocol.RoundRecord) error { return nil }

func (NopStore) LoadRound(context.Context, string) (*protocol.RoundRecord, error) { return nil, nil }

func (NopStore) RecentRounds(context.Context, int) ([]*protocol.RoundRecord, error) { return nil, nil }

func (NopStore) Reset(context.Context) error { return nil }

func (NopStore) Close() error { return nil }
