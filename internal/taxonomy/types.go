package taxonomy

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is one of the fixed top-level threat groupings.
type Category string

const (
	SocialEngineering      Category = "social_engineering"
	MalwareGeneration      Category = "malware_generation"
	VulnerabilityDiscovery Category = "vulnerability_discovery"
	DefenseEvasion         Category = "defense_evasion"
	AutomatedAttacks       Category = "automated_attacks"
)

// categoryOrder is the declaration order used for averaging and export.
var categoryOrder = []Category{
	SocialEngineering,
	MalwareGeneration,
	VulnerabilityDiscovery,
	DefenseEvasion,
	AutomatedAttacks,
}

// Categories returns the fixed category keys in declaration order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Valid reports whether c is one of the predeclared categories.
func (c Category) Valid() bool {
	for _, known := range categoryOrder {
		if c == known {
			return true
		}
	}
	return false
}

// DisplayName turns the snake_case key into "Title Case With Spaces".
func (c Category) DisplayName() string {
	titleCase := cases.Title(language.English)
	return titleCase.String(strings.ReplaceAll(string(c), "_", " "))
}

// ThreatRecord is one observed or hypothesized threat technique.
// Efficacy is documented on a 1-10 scale but the range is not enforced.
type ThreatRecord struct {
	Name       string   `yaml:"name"`
	Techniques []string `yaml:"techniques"`
	Tools      []string `yaml:"tools"`
	Efficacy   float64  `yaml:"efficacy"`
}

// ErrUnknownCategory is matched by every UnknownCategoryError.
var ErrUnknownCategory = errors.New("unknown threat category")

// UnknownCategoryError is returned when a record targets a category outside
// the fixed set.
type UnknownCategoryError struct {
	Category string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownCategory, e.Category)
}

func (e *UnknownCategoryError) Is(target error) bool {
	return target == ErrUnknownCategory
}

// CategoryAverage is the mean efficacy of one non-empty category.
type CategoryAverage struct {
	Category Category
	Mean     float64
}

// EfficacyAverages holds per-category means in category declaration order.
// Categories without records are absent.
type EfficacyAverages []CategoryAverage

// Lookup returns the mean for c and whether c has any records.
func (a EfficacyAverages) Lookup(c Category) (float64, bool) {
	for _, avg := range a {
		if avg.Category == c {
			return avg.Mean, true
		}
	}
	return 0, false
}

// Map returns the averages keyed by category.
func (a EfficacyAverages) Map() map[Category]float64 {
	m := make(map[Category]float64, len(a))
	for _, avg := range a {
		m[avg.Category] = avg.Mean
	}
	return m
}
