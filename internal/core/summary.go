package core

// Total is a named amount produced by an aggregation.
type Total struct {
	Name   string `json:"name"`
	Amount Money  `json:"amount"`
}

// Totals is an ordered list of named amounts.
type Totals []Total

// Get returns the amount stored under name, or zero.
func (t Totals) Get(name string) Money {
	for _, v := range t {
		if v.Name == name {
			return v.Amount
		}
	}
	return Zero
}

// Map indexes the totals by name.
func (t Totals) Map() map[string]Money {
	out := make(map[string]Money, len(t))
	for _, v := range t {
		out[v.Name] = v.Amount
	}
	return out
}

// Ratio is a helper for percentage composites: part as a percentage of
// whole, zero when whole is zero.
func Ratio(part, whole Money) Money {
	return MoneyFromDecimal(part.Percent(whole))
}
