//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/card-showdown/internal/protocol"
	"github.com/palemoky/card-showdown/internal/storage"
)

// MockStore 对局存储 mock
type MockStore struct {
	mock.Mock
}

var _ storage.Store = (*MockStore)(nil)

func (m *MockStore) SaveRound(ctx context.Context, rec *protocol.RoundRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockStore) LoadRound(ctx context.Context, id string) (*protocol.RoundRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*protocol.RoundRecord), args.Error(1)
}

func (m *MockStore) RecentRounds(ctx context.Context, limit int) ([]*protocol.RoundRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*protocol.RoundRecord), args.Error(1)
}

func (m *MockStore) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockRanking 排行榜 mock
type MockRanking struct {
	mock.Mock
}

var _ storage.Ranking = (*MockRanking)(nil)

func (m *MockRanking) RecordRound(ctx context.Context, rec *protocol.RoundRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRanking) GetLeaderboard(ctx context.Context, limit int) ([]*storage.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.LeaderboardEntry), args.Error(1)
}

func (m *MockRanking) GetPlayerRank(ctx context.Context, playerID string) (int64, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRanking) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
