package sound

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	_ Player = (*SoundManager)(nil)
	_ Player = Nop{}
)

func TestSoundManager_SilentBeforeInit(t *testing.T) {
	t.Parallel()

	sm := NewSoundManager(t.TempDir())
	assert.False(t, sm.Loaded(CueWin))

	// 未初始化时播放和关闭都不应 panic
	assert.NotPanics(t, func() {
		sm.Play(CueDeal)
		sm.Close()
	})
}

func TestNop(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { Nop{}.Play(CueShuffle) })
}
