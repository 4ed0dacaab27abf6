package menus

import "math"

// maxPriceCents is one past the largest value items.price NUMERIC(10,2) holds
const maxPriceCents = 1e10

// MaxPrice is the largest accepted item price
const MaxPrice = 99999999.99

// normalizePrice rounds p to whole cents the way the price column does and
// rejects values it cannot store
func normalizePrice(p float64) (float64, error) {
	if math.IsNaN(p) || p < 0 {
		return 0, ErrInvalidPrice
	}
	cents := math.Round(p * 100)
	if cents >= maxPriceCents {
		return 0, ErrInvalidPrice
	}
	return cents / 100, nil
}

// withNormalizedPrice returns in with its price rounded to cents
func withNormalizedPrice(in ItemInput) (ItemInput, error) {
	price, err := normalizePrice(in.Price)
	if err != nil {
		return in, err
	}
	in.Price = price
	return in, nil
}
