package codec

import (
	"bytes"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/palemoky/card-showdown/internal/apperrors"
	"github.com/palemoky/card-showdown/internal/protocol"
)

// RoundRecord 的 protobuf 线格式，字段号一经发布不可修改：
//
//	message Round  { string id = 1; sint64 seed = 2; int64 played_at = 3;
//	                 repeated Player players = 4; repeated Hand hands = 5; Result result = 6; }
//	message Player { string id = 1; string name = 2; }
//	message Hand   { string player_id = 1; repeated uint32 cards = 2 [packed]; }
//	message Result { string winner_id = 1; uint32 rank = 2; uint32 set_size = 3;
//	                 uint32 top_suit = 4; bool tie = 5; }
const (
	roundID       protowire.Number = 1
	roundSeed     protowire.Number = 2
	roundPlayedAt protowire.Number = 3
	roundPlayers  protowire.Number = 4
	roundHands    protowire.Number = 5
	roundResult   protowire.Number = 6

	playerID   protowire.Number = 1
	playerName protowire.Number = 2

	handPlayerID protowire.Number = 1
	handCards    protowire.Number = 2

	resultWinnerID protowire.Number = 1
	resultRank     protowire.Number = 2
	resultSetSize  protowire.Number = 3
	resultTopSuit  protowire.Number = 4
	resultTie      protowire.Number = 5
)

// EncodeRound 将一局记录编码为 protobuf 字节
func EncodeRound(r *protocol.RoundRecord) ([]byte, error) {
	if r == nil {
		return nil, apperrors.InvalidArgument("记录为空")
	}

	buf := GetBuffer()
	defer PutBuffer(buf)

	b := appendRound(buf.AvailableBuffer(), r)
	buf.Write(b)
	return bytes.Clone(buf.Bytes()), nil
}

func appendRound(b []byte, r *protocol.RoundRecord) []byte {
	b = appendString(b, roundID, r.ID)
	if r.Seed != 0 {
		b = protowire.AppendTag(b, roundSeed, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(r.Seed))
	}
	if r.PlayedAt != 0 {
		b = protowire.AppendTag(b, roundPlayedAt, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(r.PlayedAt))
	}
	for _, p := range r.Players {
		var msg []byte
		msg = appendString(msg, playerID, p.ID)
		msg = appendString(msg, playerName, p.Name)
		b = appendMessage(b, roundPlayers, msg)
	}
	for _, h := range r.Hands {
		var msg []byte
		msg = appendString(msg, handPlayerID, h.PlayerID)
		if len(h.Cards) > 0 {
			var packed []byte
			for _, c := range h.Cards {
				packed = protowire.AppendVarint(packed, uint64(c.Code()))
			}
			msg = appendMessage(msg, handCards, packed)
		}
		b = appendMessage(b, roundHands, msg)
	}
	if r.Result != nil {
		var msg []byte
		msg = appendString(msg, resultWinnerID, r.Result.WinnerID)
		msg = appendUint(msg, resultRank, uint64(r.Result.Rank))
		msg = appendUint(msg, resultSetSize, uint64(r.Result.SetSize))
		msg = appendUint(msg, resultTopSuit, uint64(r.Result.TopSuit))
		if r.Result.Tie {
			msg = appendUint(msg, resultTie, protowire.EncodeBool(true))
		}
		b = appendMessage(b, roundResult, msg)
	}
	return b
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendUint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

// DecodeRound 从 protobuf 字节解码一局记录，未知字段会被跳过
func DecodeRound(data []byte) (*protocol.RoundRecord, error) {
	r := &protocol.RoundRecord{}
	err := walk(data, func(num protowire.Number, typ protowire.Type, v []byte, u uint64) error {
		switch {
		case num == roundID && typ == protowire.BytesType:
			r.ID = string(v)
		case num == roundSeed && typ == protowire.VarintType:
			r.Seed = protowire.DecodeZigZag(u)
		case num == roundPlayedAt && typ == protowire.VarintType:
			r.PlayedAt = int64(u)
		case num == roundPlayers && typ == protowire.BytesType:
			p, err := decodePlayer(v)
			if err != nil {
				return err
			}
			r.Players = append(r.Players, p)
		case num == roundHands && typ == protowire.BytesType:
			h, err := decodeHand(v)
			if err != nil {
				return err
			}
			r.Hands = append(r.Hands, h)
		case num == roundResult && typ == protowire.BytesType:
			res, err := decodeResult(v)
			if err != nil {
				return err
			}
			r.Result = res
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func decodePlayer(data []byte) (protocol.PlayerInfo, error) {
	var p protocol.PlayerInfo
	err := walk(data, func(num protowire.Number, typ protowire.Type, v []byte, _ uint64) error {
		if typ != protowire.BytesType {
			return nil
		}
		switch num {
		case playerID:
			p.ID = string(v)
		case playerName:
			p.Name = string(v)
		}
		return nil
	})
	return p, err
}

func decodeHand(data []byte) (protocol.HandInfo, error) {
	var h protocol.HandInfo
	err := walk(data, func(num protowire.Number, typ protowire.Type, v []byte, u uint64) error {
		switch {
		case num == handPlayerID && typ == protowire.BytesType:
			h.PlayerID = string(v)
		case num == handCards && typ == protowire.BytesType:
			for len(v) > 0 {
				code, n := protowire.ConsumeVarint(v)
				if n < 0 {
					return corrupt(protowire.ParseError(n))
				}
				h.Cards = append(h.Cards, protocol.CardInfoFromCode(int(code)))
				v = v[n:]
			}
		case num == handCards && typ == protowire.VarintType:
			// 未打包的 repeated 字段
			h.Cards = append(h.Cards, protocol.CardInfoFromCode(int(u)))
		}
		return nil
	})
	return h, err
}

func decodeResult(data []byte) (*protocol.ResultInfo, error) {
	res := &protocol.ResultInfo{}
	err := walk(data, func(num protowire.Number, typ protowire.Type, v []byte, u uint64) error {
		switch {
		case num == resultWinnerID && typ == protowire.BytesType:
			res.WinnerID = string(v)
		case num == resultRank && typ == protowire.VarintType:
			res.Rank = int(u)
		case num == resultSetSize && typ == protowire.VarintType:
			res.SetSize = int(u)
		case num == resultTopSuit && typ == protowire.VarintType:
			res.TopSuit = int(u)
		case num == resultTie && typ == protowire.VarintType:
			res.Tie = protowire.DecodeBool(u)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// walk 逐个遍历字段，varint 字段传 u，长度前缀字段传 v，其他类型直接跳过
func walk(data []byte, fn func(num protowire.Number, typ protowire.Type, v []byte, u uint64) error) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return corrupt(protowire.ParseError(n))
		}
		data = data[n:]

		var (
			v []byte
			u uint64
		)
		switch typ {
		case protowire.VarintType:
			u, n = protowire.ConsumeVarint(data)
		case protowire.BytesType:
			v, n = protowire.ConsumeBytes(data)
		default:
			n = protowire.ConsumeFieldValue(num, typ, data)
		}
		if n < 0 {
			return corrupt(protowire.ParseError(n))
		}
		data = data[n:]

		if typ != protowire.VarintType && typ != protowire.BytesType {
			continue
		}
		if err := fn(num, typ, v, u); err != nil {
			return err
		}
	}
	return nil
}

func corrupt(err error) error {
	return fmt.Errorf("%w: %v", apperrors.ErrCorruptRecord, err)
}
