package card

// Rand 洗牌使用的随机源，*rand.Rand（math/rand/v2）满足该接口。
// 并发模拟时每局应持有独立的随机源。
type Rand interface {
	IntN(n int) int
}

// Shuffle 返回洗好的新牌堆（Fisher-Yates），原牌堆不变
func Shuffle(d Deck, r Rand) Deck {
	shuffled := d.Clone()
	for i := len(shuffled) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
