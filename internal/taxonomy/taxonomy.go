package taxonomy

// Taxonomy stores threat records bucketed by category. The category set is
// fixed at construction; records are only ever appended.
type Taxonomy struct {
	categories map[Category][]ThreatRecord
}

// New returns an empty taxonomy with every predeclared category present.
func New() *Taxonomy {
	t := &Taxonomy{categories: make(map[Category][]ThreatRecord, len(categoryOrder))}
	for _, c := range categoryOrder {
		t.categories[c] = nil
	}
	return t
}

// AddThreat appends a record to category. The taxonomy is left untouched
// when category is not one of the fixed keys.
func (t *Taxonomy) AddThreat(category Category, name string, techniques, tools []string, efficacy float64) error {
	if _, ok := t.categories[category]; !ok {
		return &UnknownCategoryError{Category: string(category)}
	}
	t.categories[category] = append(t.categories[category], ThreatRecord{
		Name:       name,
		Techniques: append([]string(nil), techniques...),
		Tools:      append([]string(nil), tools...),
		Efficacy:   efficacy,
	})
	return nil
}

// Len returns the total number of stored records.
func (t *Taxonomy) Len() int {
	n := 0
	for _, records := range t.categories {
		n += len(records)
	}
	return n
}

// Records returns a copy of the records stored under category.
func (t *Taxonomy) Records(category Category) []ThreatRecord {
	records := t.categories[category]
	out := make([]ThreatRecord, len(records))
	copy(out, records)
	return out
}

// AverageEfficacyByCategory returns the arithmetic mean efficacy of every
// category holding at least one record. Empty categories are omitted so
// they never show up as zero-height bars.
func (t *Taxonomy) AverageEfficacyByCategory() EfficacyAverages {
	var avgs EfficacyAverages
	for _, c := range categoryOrder {
		records := t.categories[c]
		if len(records) == 0 {
			continue
		}
		var sum float64
		for _, r := range records {
			sum += r.Efficacy
		}
		avgs = append(avgs, CategoryAverage{Category: c, Mean: sum / float64(len(records))})
	}
	return avgs
}

// EfficacyRenderer draws the per-category efficacy chart and returns the
// path of the written image.
type EfficacyRenderer interface {
	RenderEfficacy(avgs EfficacyAverages) (string, error)
}

// RenderEfficacyChart computes the category averages, hands them to r and
// returns them.
func (t *Taxonomy) RenderEfficacyChart(r EfficacyRenderer) (EfficacyAverages, error) {
	avgs := t.AverageEfficacyByCategory()
	if _, err := r.RenderEfficacy(avgs); err != nil {
		return nil, err
	}
	return avgs, nil
}
