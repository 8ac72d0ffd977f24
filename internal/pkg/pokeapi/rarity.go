package pokeapi

// RarityFromCaptureRate maps a species' capture rate to a 1-5 rarity tier.
// Harder to capture means rarer.
func RarityFromCaptureRate(captureRate int) int {
	switch {
	case captureRate <= 10:
		return 5
	case captureRate <= 30:
		return 4
	case captureRate <= 70:
		return 3
	case captureRate <= 150:
		return 2
	default:
		return 1
	}
}

// DefaultSpecies is the fallback used when the provider cannot be reached,
// so account provisioning always completes.
func DefaultSpecies() Species {
	return Species{
		ID:          129,
		Name:        "magikarp",
		ImageURL:    "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/129.png",
		Types:       []string{"water"},
		CaptureRate: 255,
	}
}
