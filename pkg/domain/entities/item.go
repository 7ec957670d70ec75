package entities

// ItemID uniquely identifies a stock item.
type ItemID string

// Units counts individual sellable stock units.
type Units int64

// Item represents a stocked item with its replenishment bounds and
// sales characteristics. Items are loaded once and are immutable for
// the duration of an optimization run.
type Item struct {
	ID            ItemID
	Name          string
	MinStock      Units
	MaxStock      Units
	ExpiryDays    int
	CurrentStock  Units
	AvgDailySales float64
}

// Shortfall returns how many units are missing to reach minimum stock,
// or zero when current stock already covers it.
func (i *Item) Shortfall() Units {
	if i.CurrentStock >= i.MinStock {
		return 0
	}
	return i.MinStock - i.CurrentStock
}
