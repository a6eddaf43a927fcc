//go:build !ci

package sound

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"

	"github.com/palemoky/card-showdown/internal/logger"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager 预加载音效并按 Cue 播放
type SoundManager struct {
	dir string

	mu      sync.RWMutex
	buffers map[Cue]*beep.Buffer
	enabled bool
}

// NewSoundManager 创建音效管理器，Init 之前 Play 不会发声
func NewSoundManager(dir string) *SoundManager {
	return &SoundManager{
		dir:     dir,
		buffers: make(map[Cue]*beep.Buffer),
	}
}

// Init 初始化扬声器并加载音效目录
func (sm *SoundManager) Init() error {
	// 小缓冲区降低延迟
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("初始化扬声器失败: %w", err)
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.enabled = true
	return sm.loadDir()
}

// loadDir 加载目录下所有 mp3/wav，目录不存在时不报错
func (sm *SoundManager) loadDir() error {
	entries, err := os.ReadDir(sm.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("读取音效目录失败: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".mp3" && ext != ".wav" {
			continue
		}

		buffer, err := decodeFile(filepath.Join(sm.dir, name), ext)
		if err != nil {
			logger.Debug("跳过无法解码的音效", "file", name, "error", err)
			continue
		}
		sm.buffers[Cue(strings.TrimSuffix(name, filepath.Ext(name)))] = buffer
	}
	return nil
}

// decodeFile 解码并重采样到统一格式
func decodeFile(path, ext string) (*beep.Buffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = streamer.Close() }()

	var s beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buffer := beep.NewBuffer(beep.Format{
		SampleRate:  sampleRate,
		NumChannels: 2,
		Precision:   4,
	})
	buffer.Append(s)
	return buffer, nil
}

// Loaded 是否已加载该音效
func (sm *SoundManager) Loaded(cue Cue) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	_, ok := sm.buffers[cue]
	return ok
}

// Play 播放音效，未启用或未加载时静默
func (sm *SoundManager) Play(cue Cue) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	if !sm.enabled {
		return
	}
	buffer, ok := sm.buffers[cue]
	if !ok {
		return
	}
	speaker.Play(buffer.Streamer(0, buffer.Len()))
}

// Close 停止播放
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.enabled {
		speaker.Clear()
	}
	sm.enabled = false
}
