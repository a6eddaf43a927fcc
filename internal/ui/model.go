// Package ui provides the interactive play/replay loop.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/card-showdown/internal/game"
	"github.com/palemoky/card-showdown/internal/logger"
	"github.com/palemoky/card-showdown/internal/protocol"
	"github.com/palemoky/card-showdown/internal/randutil"
	"github.com/palemoky/card-showdown/internal/sound"
	"github.com/palemoky/card-showdown/internal/ui/common"
	"github.com/palemoky/card-showdown/internal/ui/view"
)

const recordTimeout = 5 * time.Second

// Recorder 持久化每一局，storage.Recorder 实现了该接口
type Recorder interface {
	RecordRound(ctx context.Context, r *game.Round) (*protocol.RoundRecord, error)
}

// Ranker 可选接口，Recorder 同时实现时在获胜者旁显示排行榜名次
type Ranker interface {
	PlayerRank(ctx context.Context, playerID string) (int64, error)
}

// Options 创建 Model 的参数
type Options struct {
	Players  []string     // 为空时使用默认玩家名
	Seed     int64        // 非 0 时第 n 局使用 Seed+n-1，可复现
	Recorder Recorder     // 可为 nil
	Sound    sound.Player // 可为 nil
}

// roundPlayedMsg 一局结束
type roundPlayedMsg struct {
	round      *game.Round
	err        error
	saveErr    error
	winnerRank int64 // 0 表示不显示
}

// Model 对局界面：每局展示手牌和获胜者，询问是否再来一局
type Model struct {
	players  []*game.Player
	seed     int64
	recorder Recorder
	sound    sound.Player

	roundNo  int
	round    *game.Round
	err      error
	saveErr  error
	rank     int64
	playing  bool
	quitting bool

	keys  keyMap
	help  help.Model
	width int
}

// NewModel 创建对局界面
func NewModel(opts Options) *Model {
	snd := opts.Sound
	if snd == nil {
		snd = sound.Nop{}
	}
	return &Model{
		players:  game.NewPlayers(opts.Players...),
		seed:     opts.Seed,
		recorder: opts.Recorder,
		sound:    snd,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
}

// Round 当前展示的一局
func (m *Model) Round() *game.Round { return m.round }

// RoundNo 已开始的局数
func (m *Model) RoundNo() int { return m.roundNo }

// Err 最近一局的错误
func (m *Model) Err() error { return m.err }

// Quitting 是否已退出
func (m *Model) Quitting() bool { return m.quitting }

func (m *Model) Init() tea.Cmd {
	return m.nextRound()
}

// nextRound 开始下一局
func (m *Model) nextRound() tea.Cmd {
	m.roundNo++
	m.playing = true

	seed := randutil.NewSeed()
	if m.seed != 0 {
		seed = m.seed + int64(m.roundNo-1)
	}
	return playRound(m.players, seed, m.recorder, m.sound)
}

// playRound 在 Cmd 中完成一局并写入存储
func playRound(players []*game.Player, seed int64, recorder Recorder, snd sound.Player) tea.Cmd {
	return func() tea.Msg {
		snd.Play(sound.CueShuffle)
		round := game.NewSeededRound(players, seed)
		res, err := round.Play()
		if err != nil {
			logger.Error("对局失败", "seed", seed, "error", err)
			return roundPlayedMsg{round: round, err: err}
		}
		snd.Play(sound.CueDeal)
		if res.Tie {
			snd.Play(sound.CueTie)
		} else {
			snd.Play(sound.CueWin)
		}

		msg := roundPlayedMsg{round: round}
		if recorder != nil {
			ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
			defer cancel()
			if _, err := recorder.RecordRound(ctx, round); err != nil {
				logger.Error("保存对局失败", "round", round.ID, "error", err)
				msg.saveErr = err
			}
			if ranker, ok := recorder.(Ranker); ok && msg.saveErr == nil {
				rank, err := ranker.PlayerRank(ctx, res.Winner.ID)
				if err != nil {
					logger.Error("查询排名失败", "player", res.Winner.ID, "error", err)
				} else if rank > 0 {
					msg.winnerRank = rank
				}
			}
		}
		return msg
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case roundPlayedMsg:
		m.playing = false
		m.round = msg.round
		m.err = msg.err
		m.saveErr = msg.saveErr
		m.rank = msg.winnerRank
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Again):
			if m.playing {
				return m, nil
			}
			return m, m.nextRound()
		}
	}
	return m, nil
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(common.TitleStyle(fmt.Sprintf("🃏 Card Showdown · 第 %d 局", m.roundNo)))
	sb.WriteString("\n\n")

	switch {
	case m.playing:
		sb.WriteString(common.MutedStyle.Render("洗牌发牌中..."))
	case m.err != nil:
		sb.WriteString(common.ErrorStyle.Render("⚠️ " + m.err.Error()))
	default:
		sb.WriteString(view.RenderRound(m.round))
		if m.round != nil {
			if m.rank > 0 && m.round.Result != nil {
				sb.WriteString("\n")
				sb.WriteString(common.WinnerStyle.Render(fmt.Sprintf("🏆 %s 排行榜第 %d 名", m.round.Result.Winner.Name, m.rank)))
			}
			sb.WriteString("\n")
			sb.WriteString(common.MutedStyle.Render(fmt.Sprintf("seed %d", m.round.Seed)))
		}
	}

	if m.saveErr != nil {
		sb.WriteString("\n")
		sb.WriteString(common.ErrorStyle.Render("⚠️ 保存失败: " + m.saveErr.Error()))
	}

	if !m.playing {
		sb.WriteString("\n")
		sb.WriteString(common.PromptStyle.Render("Do you want to play again? (y/n)"))
		sb.WriteString("\n")
		sb.WriteString(m.help.View(m.keys))
	}

	out := common.DocStyle.Render(sb.String())
	if m.width > 0 {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Left, out)
	}
	return out
}
