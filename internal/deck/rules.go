package deck

// IsSet reports whether the cards form a set: exactly FeatureSize distinct
// cards such that, for every feature, their values are either all equal or
// all pairwise different.
func (r Rules) IsSet(cards []Card) bool {
	if len(cards) != r.FeatureSize || r.FeatureSize < 1 {
		return false
	}
	for i := range cards {
		if !r.Valid(cards[i]) {
			return false
		}
		for j := i + 1; j < len(cards); j++ {
			if cards[i] == cards[j] {
				return false
			}
		}
	}

	features := make([][]int, len(cards))
	for i, c := range cards {
		features[i] = r.Features(c)
	}
	for f := range r.FeatureCount {
		if !sameOrDistinct(features, f, len(features)) {
			return false
		}
	}
	return true
}

// sameOrDistinct checks feature f over the first n vectors.
func sameOrDistinct(features [][]int, f, n int) bool {
	allSame, allDistinct := true, true
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if features[i][f] == features[j][f] {
				allDistinct = false
			} else {
				allSame = false
			}
		}
	}
	return allSame || allDistinct
}

// FindSets returns up to limit sets found among cards. A limit of zero or less
// means no limit. Each set is returned in the order the cards appear in the
// input.
func (r Rules) FindSets(cards []Card, limit int) [][]Card {
	if r.FeatureSize < 1 || len(cards) < r.FeatureSize {
		return nil
	}

	features := make([][]int, len(cards))
	for i, c := range cards {
		features[i] = r.Features(c)
	}

	var (
		found  [][]Card
		picked = make([]int, 0, r.FeatureSize)
		chosen = make([][]int, 0, r.FeatureSize)
	)

	var search func(start int) bool
	search = func(start int) bool {
		if len(picked) == r.FeatureSize {
			set := make([]Card, len(picked))
			for i, idx := range picked {
				set[i] = cards[idx]
			}
			found = append(found, set)
			return limit > 0 && len(found) >= limit
		}
		remaining := r.FeatureSize - len(picked)
		for i := start; i <= len(cards)-remaining; i++ {
			if duplicate(cards, picked, i) {
				continue
			}
			picked = append(picked, i)
			chosen = append(chosen, features[i])
			if r.partialOK(chosen) && search(i+1) {
				return true
			}
			picked = picked[:len(picked)-1]
			chosen = chosen[:len(chosen)-1]
		}
		return false
	}
	search(0)
	return found
}

// HasSet reports whether at least one set exists among cards.
func (r Rules) HasSet(cards []Card) bool {
	return len(r.FindSets(cards, 1)) > 0
}

// partialOK prunes a partial pick that can no longer become a set.
func (r Rules) partialOK(chosen [][]int) bool {
	if len(chosen) < 2 {
		return true
	}
	for f := range r.FeatureCount {
		if !sameOrDistinct(chosen, f, len(chosen)) {
			return false
		}
	}
	return true
}

func duplicate(cards []Card, picked []int, i int) bool {
	for _, p := range picked {
		if cards[p] == cards[i] {
			return true
		}
	}
	return false
}
