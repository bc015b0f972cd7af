// Package answer turns ranked matches into a natural-language answer using an
// ordered set of topic rules.
package answer

// Category is the topic a question is classified into.
type Category int

const (
	// CategoryGeneric means no topic rule matched.
	CategoryGeneric Category = iota
	// CategoryModelSelection covers which AI model or proxy to use.
	CategoryModelSelection
	// CategoryScoring covers graded assignment scores and the dashboard.
	CategoryScoring
	// CategoryContainers covers Docker and Podman.
	CategoryContainers
	// CategoryLicensing covers project licenses and GitHub.
	CategoryLicensing
	// CategoryExam covers exams, deadlines and dates.
	CategoryExam
)

// String returns a string representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryGeneric:
		return "generic"
	case CategoryModelSelection:
		return "model_selection"
	case CategoryScoring:
		return "scoring"
	case CategoryContainers:
		return "containers"
	case CategoryLicensing:
		return "licensing"
	case CategoryExam:
		return "exam"
	default:
		return "unknown"
	}
}
