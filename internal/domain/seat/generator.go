package seat

import "math/rand"

// Tier は行位置による価格帯（前方の帯から順に並べる）
type Tier struct {
	LastRow string // この帯に含まれる最後の行（この行まで、を意味する）
	Price   int
}

// Layout はスクリーンの座席レイアウト設定
type Layout struct {
	Rows              string  // 行文字を前方から順に並べたもの（例: "ABCDEFGH"）
	SeatsPerRow       int     // 1行あたりの座席数
	BookedProbability float64 // 初期状態で予約済みにする確率（デモデータ用）
	Tiers             []Tier  // 前方の帯から順
}

// DefaultLayout は標準のスクリーンレイアウトを返す
// 8行×12席、前方3行が最高価格の3段階バンド
func DefaultLayout() Layout {
	return Layout{
		Rows:              "ABCDEFGH",
		SeatsPerRow:       12,
		BookedProbability: 0.3,
		Tiers: []Tier{
			{LastRow: "C", Price: 300},
			{LastRow: "F", Price: 250},
			{LastRow: "H", Price: 200},
		},
	}
}

// Validate はレイアウトの検証を行う
func (l Layout) Validate() error {
	if len(l.Rows) == 0 || l.SeatsPerRow < 1 {
		return ErrInvalidLayout
	}
	if l.BookedProbability < 0 || l.BookedProbability > 1 {
		return ErrInvalidLayout
	}
	if len(l.Tiers) == 0 {
		return ErrInvalidLayout
	}
	// 最後の帯がすべての行を覆うこと
	last := l.Tiers[len(l.Tiers)-1].LastRow
	if l.Rows[len(l.Rows)-1:] > last {
		return ErrInvalidLayout
	}
	return nil
}

// PriceForRow は行文字から価格帯の価格を返す
func (l Layout) PriceForRow(row string) int {
	for _, t := range l.Tiers {
		if row <= t.LastRow {
			return t.Price
		}
	}
	return l.Tiers[len(l.Tiers)-1].Price
}

// TotalSeats はレイアウト全体の座席数を返す
func (l Layout) TotalSeats() int {
	return len(l.Rows) * l.SeatsPerRow
}

// Generate は上映回の座席カタログを生成する
// 行×番号の全組み合わせを行順・番号順に並べ、各座席は BookedProbability で
// 独立に予約済み、それ以外は空席となる。乱数源は呼び出し側が注入するため
// シードを固定すれば決定的に再現できる
func Generate(layout Layout, showingID string, rng *rand.Rand) []*Seat {
	seats := make([]*Seat, 0, layout.TotalSeats())
	for i := 0; i < len(layout.Rows); i++ {
		row := layout.Rows[i : i+1]
		price := layout.PriceForRow(row)
		for n := 1; n <= layout.SeatsPerRow; n++ {
			s := NewSeat(showingID, row, n, price)
			if rng.Float64() < layout.BookedProbability {
				s.Status = StatusBooked
			}
			seats = append(seats, s)
		}
	}
	return seats
}
