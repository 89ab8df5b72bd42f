package schedule

import "microgreens-planner/internal/model"

// The half-half combinators below are the single source of truth for how
// a tray split between two varieties is valued. Every display and
// aggregation path goes through them instead of branching on the second
// crop itself.

// ExpectedYield returns the nominal harvest mass of one tray in grams.
// A half-half tray yields the arithmetic mean of both varieties.
func ExpectedYield(crop model.CropType, second *model.CropType) float64 {
	if second == nil {
		return crop.YieldGrams
	}
	return (crop.YieldGrams + second.YieldGrams) / 2
}

// SeedCost returns the seed cost of sowing one tray. A half-half tray
// costs the sum of both varieties sown at half their normal seeding rate.
func SeedCost(crop model.CropType, second *model.CropType) float64 {
	if second == nil {
		return crop.SeedingRate * seedCostPerGram(crop)
	}
	return crop.SeedingRate/2*seedCostPerGram(crop) +
		second.SeedingRate/2*seedCostPerGram(*second)
}

// DisplayName returns the tray's crop label, concatenating both variety
// names for a half-half tray.
func DisplayName(crop model.CropType, second *model.CropType) string {
	if second == nil {
		return crop.Name
	}
	return crop.Name + " / " + second.Name
}

// seedCostPerGram derives the per-gram seed price, preferring the larger
// bulk package when it is fully configured, falling back to the small
// package, and to zero when neither carries a usable price.
func seedCostPerGram(crop model.CropType) float64 {
	if crop.SeedPackLargePrice > 0 && crop.SeedPackLargeGrams > 0 {
		return crop.SeedPackLargePrice / crop.SeedPackLargeGrams
	}
	if crop.SeedPackSmallPrice > 0 && crop.SeedPackSmallGrams > 0 {
		return crop.SeedPackSmallPrice / crop.SeedPackSmallGrams
	}
	return 0
}
