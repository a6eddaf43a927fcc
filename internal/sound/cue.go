package sound

// Cue 音效名称，对应音效目录下去掉扩展名的文件名
type Cue string

const (
	CueShuffle Cue = "shuffle" // 洗牌
	CueDeal    Cue = "deal"    // 发牌
	CueWin     Cue = "win"     // 揭晓获胜者
	CueTie     Cue = "tie"     // 完全平局
)

// Player 播放音效
type Player interface {
	Play(cue Cue)
}

// Nop 静音
type Nop struct{}

func (Nop) Play(Cue) {}
