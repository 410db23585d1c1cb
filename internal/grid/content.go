package grid

// ContentKind tags what occupies a cell or an inventory slot.
type ContentKind int

const (
	None ContentKind = iota
	Coin
	Rock
	Garbage
	Tree
	Fish
	Bank
)

func (k ContentKind) String() string {
	switch k {
	case None:
		return "NONE"
	case Coin:
		return "COIN"
	case Rock:
		return "ROCK"
	case Garbage:
		return "GARBAGE"
	case Tree:
		return "TREE"
	case Fish:
		return "FISH"
	case Bank:
		return "BANK"
	}
	return "?"
}

// Collectible reports whether the kind can be carried in an inventory.
// Banks are fixed world tiles, never inventory items.
func (k ContentKind) Collectible() bool {
	switch k {
	case Coin, Rock, Garbage, Tree, Fish:
		return true
	}
	return false
}

// Tile is one observed cell: a coordinate plus what was seen there.
type Tile struct {
	Pos     Coordinate
	Content ContentKind
}

// Inventory maps kinds to non-negative counts. Mutated only by harvest,
// deposit and conversion; a remove below zero clamps at zero.
type Inventory map[ContentKind]int

func (inv Inventory) Count(k ContentKind) int {
	return inv[k]
}

func (inv Inventory) Add(k ContentKind, n int) {
	if n <= 0 {
		return
	}
	inv[k] += n
}

// Remove takes up to n of kind k and returns how many were actually removed.
func (inv Inventory) Remove(k ContentKind, n int) int {
	if n <= 0 {
		return 0
	}
	have := inv[k]
	if n > have {
		n = have
	}
	inv[k] = have - n
	return n
}
