package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/card-showdown/internal/randutil"
)

// fixedRand 总是返回固定的下标，便于断言精确的洗牌结果
type fixedRand struct {
	pick func(n int) int
}

func (f fixedRand) IntN(n int) int { return f.pick(n) }

func multiset(d Deck) map[Card]int {
	m := make(map[Card]int, len(d))
	for _, c := range d {
		m[c]++
	}
	return m
}

func TestShuffle_PreservesMultiset(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	for seed := int64(0); seed < 20; seed++ {
		shuffled := Shuffle(deck, randutil.New(seed))
		require.Len(t, shuffled, len(deck))
		assert.Equal(t, multiset(deck), multiset(shuffled), "seed %d", seed)
	}
}

func TestShuffle_SameSeedSameOrder(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	first := Shuffle(deck, randutil.New(2024))
	second := Shuffle(deck, randutil.New(2024))
	assert.Equal(t, first, second)

	other := Shuffle(deck, randutil.New(2025))
	assert.NotEqual(t, first, other)
}

func TestShuffle_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	_ = Shuffle(deck, randutil.New(7))
	assert.Equal(t, NewDeck(), deck)
}

func TestShuffle_ExactOrderWithStubSource(t *testing.T) {
	t.Parallel()

	deck, err := ParseCards("2@ 3@ 4@ 5@")
	require.NoError(t, err)

	// 每次都与最后一个位置交换自身：顺序不变
	identity := Shuffle(Deck(deck), fixedRand{pick: func(n int) int { return n - 1 }})
	assert.Equal(t, Deck(deck), identity)

	// 每次都与第 0 位交换：整体左移一位
	rotated := Shuffle(Deck(deck), fixedRand{pick: func(int) int { return 0 }})
	expected, err := ParseCards("3@ 4@ 5@ 2@")
	require.NoError(t, err)
	assert.Equal(t, Deck(expected), rotated)
}

func TestShuffle_EmptyAndSingle(t *testing.T) {
	t.Parallel()

	r := randutil.New(1)
	assert.Empty(t, Shuffle(Deck{}, r))
	one := Deck{{Rank: RankA, Suit: SuitAt}}
	assert.Equal(t, one, Shuffle(one, r))
}
