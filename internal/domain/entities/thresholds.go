package entities

const (
	defaultMinStars         = 10
	defaultMinForks         = 5
	defaultMaxAgeMonths     = 24
	defaultOutlierThreshold = 3.0
)

// Thresholds holds the numeric bounds of the maturity and behavior filters.
// It is passed by value so a run can never observe a change mid-flight.
type Thresholds struct {
	MinStars         int     `yaml:"min_stars"`
	MinForks         int     `yaml:"min_forks"`
	MaxAgeMonths     int     `yaml:"max_age_months"`
	OutlierThreshold float64 `yaml:"outlier_threshold"`
}

// DefaultThresholds returns the thresholds used when nothing is configured.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinStars:         defaultMinStars,
		MinForks:         defaultMinForks,
		MaxAgeMonths:     defaultMaxAgeMonths,
		OutlierThreshold: defaultOutlierThreshold,
	}
}

// Admits reports whether the repository is mature enough to be crawled:
// popular enough, recently active, and documented with a readme.
func (t Thresholds) Admits(repo RepositoryMetadata) bool {
	if repo.Stars < t.MinStars {
		return false
	}
	if repo.Forks < t.MinForks {
		return false
	}
	if repo.MonthsSinceLastCommit > t.MaxAgeMonths {
		return false
	}
	return repo.HasReadme
}
