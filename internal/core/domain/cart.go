package domain

// CartLine is one distinct catalog item in the cart together with how many
// units of it the shopper selected. A line present in a cart always has
// Quantity >= 1; a line that would reach 0 is removed instead of kept.
type CartLine struct {
	ItemID   int64 `json:"id"`
	Quantity int   `json:"quantity"`
}

// Quantity returns the quantity of the line with the given id, or 0 when no
// such line exists.
func Quantity(lines []CartLine, itemID int64) int {
	for _, line := range lines {
		if line.ItemID == itemID {
			return line.Quantity
		}
	}
	return 0
}

// TotalQuantity sums the quantities of all lines.
func TotalQuantity(lines []CartLine) int {
	total := 0
	for _, line := range lines {
		total += line.Quantity
	}
	return total
}

// Increase returns a new line set with the item's quantity incremented by
// one. An absent item is inserted as a new line with quantity 1.
func Increase(lines []CartLine, itemID int64) []CartLine {
	next := make([]CartLine, 0, len(lines)+1)
	found := false
	for _, line := range lines {
		if line.ItemID == itemID {
			line.Quantity++
			found = true
		}
		next = append(next, line)
	}
	if !found {
		next = append(next, CartLine{ItemID: itemID, Quantity: 1})
	}
	return next
}

// Decrease returns a new line set with the item's quantity decremented by
// one, dropping the line entirely when its quantity was exactly 1.
// Decreasing an absent item returns the input unchanged; creating lines is
// Increase's job only.
func Decrease(lines []CartLine, itemID int64) []CartLine {
	if Quantity(lines, itemID) == 0 {
		return lines
	}
	next := make([]CartLine, 0, len(lines))
	for _, line := range lines {
		if line.ItemID == itemID {
			if line.Quantity == 1 {
				continue
			}
			line.Quantity--
		}
		next = append(next, line)
	}
	return next
}

// Remove returns a new line set without the item, regardless of its
// quantity. Removing an absent item returns the input unchanged.
func Remove(lines []CartLine, itemID int64) []CartLine {
	if Quantity(lines, itemID) == 0 {
		return lines
	}
	next := make([]CartLine, 0, len(lines))
	for _, line := range lines {
		if line.ItemID != itemID {
			next = append(next, line)
		}
	}
	return next
}

// Normalize re-establishes the cart invariants over externally supplied
// lines: entries with a quantity below 1 are dropped and only the first
// line for a duplicated id is kept. Restored storage payloads pass through
// here before becoming cart state.
func Normalize(lines []CartLine) []CartLine {
	next := make([]CartLine, 0, len(lines))
	seen := make(map[int64]struct{}, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}
		if _, ok := seen[line.ItemID]; ok {
			continue
		}
		seen[line.ItemID] = struct{}{}
		next = append(next, line)
	}
	return next
}
