//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/card-showdown/internal/game"
	"github.com/palemoky/card-showdown/internal/protocol"
	"github.com/palemoky/card-showdown/internal/sound"
)

// MockRecorder 对局记录 mock
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordRound(ctx context.Context, r *game.Round) (*protocol.RoundRecord, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*protocol.RoundRecord), args.Error(1)
}

// MockRankedRecorder 同时提供排行榜名次的对局记录 mock
type MockRankedRecorder struct {
	MockRecorder
}

func (m *MockRankedRecorder) PlayerRank(ctx context.Context, playerID string) (int64, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(int64), args.Error(1)
}

// MockSound 记录播放过的音效
type MockSound struct {
	mock.Mock
}

var _ sound.Player = (*MockSound)(nil)

func (m *MockSound) Play(cue sound.Cue) {
	m.Called(cue)
}
