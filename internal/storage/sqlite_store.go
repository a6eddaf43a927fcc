package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/palemoky/card-showdown/internal/game/card"
	"github.com/palemoky/card-showdown/internal/protocol"
	"github.com/palemoky/card-showdown/internal/protocol/convert"
)

// SQLiteStore SQLite 存储，表结构与牌、玩家、手牌一一对应
type SQLiteStore struct {
	db           *sql.DB
	historyLimit int
}

// NewSQLiteStore 打开（必要时创建）数据库并初始化表结构，dbPath 可为 ":memory:"
func NewSQLiteStore(ctx context.Context, dbPath string, historyLimit int) (*SQLiteStore, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// 单连接：内存库依赖同一连接存活，也避免写锁竞争
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
		`PRAGMA foreign_keys = ON;`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db, historyLimit: historyLimit}, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS cards (
    id INTEGER PRIMARY KEY,
    rank INTEGER NOT NULL,
    suit INTEGER NOT NULL,
    UNIQUE (rank, suit)
);`,
		`CREATE TABLE IF NOT EXISTS rounds (
    id TEXT PRIMARY KEY,
    seed INTEGER NOT NULL,
    played_at_ms INTEGER NOT NULL,
    winner_id TEXT,
    winning_rank INTEGER,
    set_size INTEGER,
    top_suit INTEGER,
    tie INTEGER NOT NULL DEFAULT 0
);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_played_at ON rounds (played_at_ms DESC);`,
		`CREATE TABLE IF NOT EXISTS players (
    round_id TEXT NOT NULL REFERENCES rounds (id) ON DELETE CASCADE,
    player_id TEXT NOT NULL,
    seat INTEGER NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (round_id, player_id)
);`,
		`CREATE TABLE IF NOT EXISTS hands (
    round_id TEXT NOT NULL,
    player_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    card_id INTEGER NOT NULL REFERENCES cards (id),
    PRIMARY KEY (round_id, player_id, position),
    FOREIGN KEY (round_id, player_id) REFERENCES players (round_id, player_id) ON DELETE CASCADE
);`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("初始化表结构失败: %w", err)
		}
	}

	// 牌表是固定的 52 张
	for _, c := range card.NewDeck() {
		info := convert.CardToInfo(c)
		if _, err := db.ExecContext(ctx,
			`INSERT OR IGNORE INTO cards (id, rank, suit) VALUES (?, ?, ?)`,
			info.Code(), info.Rank, info.Suit,
		); err != nil {
			return fmt.Errorf("初始化牌表失败: %w", err)
		}
	}
	return nil
}

// SaveRound 在一个事务内写入对局、玩家和手牌，同 ID 覆盖
func (s *SQLiteStore) SaveRound(ctx context.Context, rec *protocol.RoundRecord) error {
	if rec == nil {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rounds WHERE id = ?`, rec.ID); err != nil {
		return fmt.Errorf("覆盖对局失败: %w", err)
	}

	var (
		winnerID                    sql.NullString
		rank, setSize, topSuit, tie sql.NullInt64
	)
	tie = sql.NullInt64{Int64: 0, Valid: true}
	if res := rec.Result; res != nil {
		winnerID = sql.NullString{String: res.WinnerID, Valid: true}
		rank = sql.NullInt64{Int64: int64(res.Rank), Valid: true}
		setSize = sql.NullInt64{Int64: int64(res.SetSize), Valid: true}
		topSuit = sql.NullInt64{Int64: int64(res.TopSuit), Valid: true}
		if res.Tie {
			tie.Int64 = 1
		}
	}
	if _, err := tx.ExecContext(ctx, `
INSERT INTO rounds (id, seed, played_at_ms, winner_id, winning_rank, set_size, top_suit, tie)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, rec.ID, rec.Seed, rec.PlayedAt, winnerID, rank, setSize, topSuit, tie); err != nil {
		return fmt.Errorf("保存对局失败: %w", err)
	}

	for seat, p := range rec.Players {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO players (round_id, player_id, seat, name) VALUES (?, ?, ?, ?)`,
			rec.ID, p.ID, seat, p.Name,
		); err != nil {
			return fmt.Errorf("保存玩家失败: %w", err)
		}
	}

	for _, h := range rec.Hands {
		for pos, c := range h.Cards {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO hands (round_id, player_id, position, card_id) VALUES (?, ?, ?, ?)`,
				rec.ID, h.PlayerID, pos, c.Code(),
			); err != nil {
				return fmt.Errorf("保存手牌失败: %w", err)
			}
		}
	}

	if s.historyLimit > 0 {
		if _, err := tx.ExecContext(ctx, `
DELETE FROM rounds WHERE id NOT IN (
    SELECT id FROM rounds ORDER BY played_at_ms DESC, rowid DESC LIMIT ?
)`, s.historyLimit); err != nil {
			return fmt.Errorf("清理旧对局失败: %w", err)
		}
	}

	return tx.Commit()
}

// LoadRound 加载对局，不存在时返回 nil, nil
func (s *SQLiteStore) LoadRound(ctx context.Context, id string) (*protocol.RoundRecord, error) {
	rec := &protocol.RoundRecord{ID: id}
	var (
		winnerID                    sql.NullString
		rank, setSize, topSuit, tie sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
SELECT seed, played_at_ms, winner_id, winning_rank, set_size, top_suit, tie
FROM rounds WHERE id = ?`, id).Scan(&rec.Seed, &rec.PlayedAt, &winnerID, &rank, &setSize, &topSuit, &tie)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if winnerID.Valid {
		rec.Result = &protocol.ResultInfo{
			WinnerID: winnerID.String,
			Rank:     int(rank.Int64),
			SetSize:  int(setSize.Int64),
			TopSuit:  int(topSuit.Int64),
			Tie:      tie.Int64 != 0,
		}
	}

	if err := s.loadPlayers(ctx, rec); err != nil {
		return nil, err
	}
	if err := s.loadHands(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *SQLiteStore) loadPlayers(ctx context.Context, rec *protocol.RoundRecord) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, name FROM players WHERE round_id = ? ORDER BY seat`, rec.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p protocol.PlayerInfo
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return err
		}
		rec.Players = append(rec.Players, p)
	}
	return rows.Err()
}

func (s *SQLiteStore) loadHands(ctx context.Context, rec *protocol.RoundRecord) error {
	rows, err := s.db.QueryContext(ctx, `
SELECT h.player_id, c.rank, c.suit
FROM hands h
JOIN players p ON p.round_id = h.round_id AND p.player_id = h.player_id
JOIN cards c ON c.id = h.card_id
WHERE h.round_id = ?
ORDER BY p.seat, h.position`, rec.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	index := make(map[string]int)
	for rows.Next() {
		var (
			playerID string
			info     protocol.CardInfo
		)
		if err := rows.Scan(&playerID, &info.Rank, &info.Suit); err != nil {
			return err
		}
		i, ok := index[playerID]
		if !ok {
			i = len(rec.Hands)
			index[playerID] = i
			rec.Hands = append(rec.Hands, protocol.HandInfo{PlayerID: playerID})
		}
		rec.Hands[i].Cards = append(rec.Hands[i].Cards, info)
	}
	return rows.Err()
}

// RecentRounds 按时间从新到旧返回最近的对局
func (s *SQLiteStore) RecentRounds(ctx context.Context, limit int) ([]*protocol.RoundRecord, error) {
	if limit <= 0 {
		return nil, nil
	}

	// 先取完 ID 再逐个加载，单连接下不能嵌套查询
	ids, err := s.recentIDs(ctx, limit)
	if err != nil {
		return nil, err
	}

	records := make([]*protocol.RoundRecord, 0, len(ids))
	for _, id := range ids {
		rec, err := s.LoadRound(ctx, id)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (s *SQLiteStore) recentIDs(ctx context.Context, limit int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM rounds ORDER BY played_at_ms DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Reset 清空对局、玩家和手牌，牌表保留
func (s *SQLiteStore) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{`DELETE FROM hands`, `DELETE FROM players`, `DELETE FROM rounds`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Close 关闭数据库
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
