package roster

// FilterAll matches every department or status
const FilterAll = "All"

// Filter selects records by department and status. Zero values mean All.
type Filter struct {
	Department string
	Status     string
}

// DefaultFilter is the dashboard's initial filter: every department, Active only
func DefaultFilter() Filter {
	return Filter{Department: FilterAll, Status: string(StatusActive)}
}

// Match reports whether a record passes the filter
func (f Filter) Match(e Employee) bool {
	deptMatch := f.Department == "" || f.Department == FilterAll || e.Department == f.Department
	statusMatch := f.Status == "" || f.Status == FilterAll || string(e.Status) == f.Status
	return deptMatch && statusMatch
}

// Apply returns the matching records in their original order. The input is
// never modified.
func (f Filter) Apply(employees []Employee) []Employee {
	out := make([]Employee, 0, len(employees))
	for _, e := range employees {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// LanguageCount is one bar of the language histogram
type LanguageCount struct {
	Language string
	Count    int
}

// Summary holds the dashboard aggregates
type Summary struct {
	// Counted over the full roster
	Active      int
	Resigned    int
	Hidden      int
	Departments []string

	// Computed over the filtered set
	Visible           int
	AverageExperience float64
	Languages         []LanguageCount
}

// Summarize computes aggregates. Status counts and the department list use
// all; the average and the language histogram use filtered.
func Summarize(all, filtered []Employee) Summary {
	var sum Summary
	seenDept := make(map[string]bool)
	for _, e := range all {
		switch e.Status {
		case StatusActive:
			sum.Active++
		case StatusResigned:
			sum.Resigned++
		case StatusHidden:
			sum.Hidden++
		}
		if !seenDept[e.Department] {
			seenDept[e.Department] = true
			sum.Departments = append(sum.Departments, e.Department)
		}
	}

	sum.Visible = len(filtered)
	sum.AverageExperience = AverageExperience(filtered)
	sum.Languages = LanguageHistogram(filtered)
	return sum
}

// AverageExperience is the mean experience in years, zero when empty
func AverageExperience(employees []Employee) float64 {
	if len(employees) == 0 {
		return 0
	}
	total := 0.0
	for _, e := range employees {
		total += e.TotalExperienceYears
	}
	return total / float64(len(employees))
}

// LanguageHistogram counts records containing each language, in order of
// first appearance
func LanguageHistogram(employees []Employee) []LanguageCount {
	index := make(map[string]int)
	var out []LanguageCount
	for _, e := range employees {
		counted := make(map[string]bool)
		for _, lang := range e.Languages {
			if counted[lang] {
				continue
			}
			counted[lang] = true
			if i, ok := index[lang]; ok {
				out[i].Count++
				continue
			}
			index[lang] = len(out)
			out = append(out, LanguageCount{Language: lang, Count: 1})
		}
	}
	return out
}
