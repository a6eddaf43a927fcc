//go:build ci

package sound

// SoundManager CI 环境下没有音频设备，全部为空操作
type SoundManager struct{}

func NewSoundManager(string) *SoundManager {
	return &SoundManager{}
}

func (sm *SoundManager) Init() error {
	return nil
}

func (sm *SoundManager) Loaded(Cue) bool {
	return false
}

func (sm *SoundManager) Play(Cue) {}

func (sm *SoundManager) Close() {}
