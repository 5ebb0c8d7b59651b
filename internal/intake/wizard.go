package intake

import (
	"errors"
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/ohare93/onboard/internal/roster"
)

// ErrIncomplete is returned by Submit when a required field is missing
var ErrIncomplete = errors.New("required fields are missing")

// ErrNotOnLastStep is returned by Submit before the final step
var ErrNotOnLastStep = errors.New("submit is only available on the last step")

// Issue is a validation problem blocking the current step
type Issue struct {
	Field   Field
	Message string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// Options configures a Wizard
type Options struct {
	// EmailTaken reports whether an email already belongs to a record.
	// When set, Step 1 refuses to advance with a duplicate email.
	EmailTaken func(email string) bool
	// NewID generates the submission reference; defaults to a UUID
	NewID func() string
}

// Wizard accumulates one employee record across four ordered steps
type Wizard struct {
	opts      Options
	step      Step
	values    map[Field]string
	languages *TagSet
	skills    *TagSet
	submitted *roster.Employee
}

// New creates a wizard on Step 1 with the form defaults applied
func New(opts Options) *Wizard {
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.New().String() }
	}
	return &Wizard{
		opts: opts,
		step: StepIdentity,
		values: map[Field]string{
			FieldGender:    string(roster.GenderMale),
			FieldWorkStyle: string(roster.WorkStyleHybrid),
			FieldStatus:    string(roster.StatusActive),
		},
		languages: NewTagSet(DefaultLanguage),
		skills:    NewTagSet(),
	}
}

// Step returns the current step
func (w *Wizard) Step() Step {
	return w.step
}

// Value returns the typed value of a field
func (w *Wizard) Value(f Field) string {
	return w.values[f]
}

// Set stores a field value. Choice fields must name one of their options.
func (w *Wizard) Set(f Field, value string) error {
	spec, ok := Lookup(f)
	if !ok {
		return fmt.Errorf("unknown field: %s", f)
	}
	switch spec.Kind {
	case KindToggle:
		return fmt.Errorf("field %s is a toggle-set; use Toggle", f)
	case KindChoice:
		if !contains(spec.Options, value) {
			return fmt.Errorf("invalid %s: %q", f, value)
		}
	}
	w.values[f] = value
	return nil
}

// Toggle flips an item of a toggle-set field and reports whether it is
// selected afterwards
func (w *Wizard) Toggle(f Field, item string) (bool, error) {
	set, err := w.tagSet(f)
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(item) == "" {
		return false, fmt.Errorf("empty %s item", f)
	}
	return set.Toggle(item), nil
}

// Selected returns the members of a toggle-set field
func (w *Wizard) Selected(f Field) []string {
	set, err := w.tagSet(f)
	if err != nil {
		return nil
	}
	return set.Items()
}

func (w *Wizard) tagSet(f Field) (*TagSet, error) {
	switch f {
	case FieldLanguages:
		return w.languages, nil
	case FieldTopSkills:
		return w.skills, nil
	default:
		return nil, fmt.Errorf("field %s is not a toggle-set", f)
	}
}

// Issues validates the current step
func (w *Wizard) Issues() []Issue {
	return w.issuesFor(w.step)
}

func (w *Wizard) issuesFor(step Step) []Issue {
	var issues []Issue
	for _, spec := range FieldsFor(step) {
		if !spec.IsText() {
			continue
		}
		value := strings.TrimSpace(w.values[spec.Field])
		if value == "" {
			if spec.Required {
				issues = append(issues, Issue{Field: spec.Field, Message: "required"})
			}
			continue
		}
		switch spec.Kind {
		case KindNumber:
			if _, err := parseYears(value); err != nil {
				issues = append(issues, Issue{Field: spec.Field, Message: err.Error()})
			}
		case KindEmail:
			if addr, err := mail.ParseAddress(value); err != nil || addr.Address != value {
				issues = append(issues, Issue{Field: spec.Field, Message: "not a valid email address"})
			} else if w.opts.EmailTaken != nil && w.opts.EmailTaken(value) {
				issues = append(issues, Issue{Field: spec.Field, Message: "already registered"})
			}
		}
	}
	return issues
}

// Missing returns the fields blocking the current step
func (w *Wizard) Missing() []Field {
	issues := w.Issues()
	out := make([]Field, len(issues))
	for i, issue := range issues {
		out[i] = issue.Field
	}
	return out
}

// CanAdvance reports whether the current step validates
func (w *Wizard) CanAdvance() bool {
	return w.step < StepSubmitted && len(w.Issues()) == 0
}

// Next advances one step when the current step validates. It never moves
// past the last editable step; use Submit there.
func (w *Wizard) Next() bool {
	if w.step >= LastStep || !w.CanAdvance() {
		return false
	}
	w.step++
	return true
}

// Back moves one step backward, keeping every entered value
func (w *Wizard) Back() bool {
	if w.step <= StepIdentity || w.step == StepSubmitted {
		return false
	}
	w.step--
	return true
}

// Submit finalizes the record from the last step
func (w *Wizard) Submit() (roster.Employee, error) {
	if w.step != LastStep {
		return roster.Employee{}, ErrNotOnLastStep
	}
	if issues := w.Issues(); len(issues) > 0 {
		return roster.Employee{}, fmt.Errorf("%w: %v", ErrIncomplete, issues)
	}
	e, err := w.finalize()
	if err != nil {
		return roster.Employee{}, err
	}
	w.step = StepSubmitted
	w.submitted = &e
	return e.Clone(), nil
}

// Submitted returns the finalized record once Submit succeeded
func (w *Wizard) Submitted() (roster.Employee, bool) {
	if w.submitted == nil {
		return roster.Employee{}, false
	}
	return w.submitted.Clone(), true
}

func (w *Wizard) finalize() (roster.Employee, error) {
	v := func(f Field) string { return strings.TrimSpace(w.values[f]) }

	years, err := parseYears(v(FieldExperienceYears))
	if err != nil {
		return roster.Employee{}, fmt.Errorf("invalid %s: %w", FieldExperienceYears, err)
	}

	return roster.Employee{
		ID:                       w.opts.NewID(),
		FullName:                 v(FieldFullName),
		Email:                    v(FieldEmail),
		Phone:                    v(FieldPhone),
		Birthday:                 v(FieldBirthday),
		Gender:                   roster.Gender(v(FieldGender)),
		NationalID:               v(FieldNationalID),
		Address:                  v(FieldAddress),
		EmergencyContactName:     v(FieldEmergencyContactName),
		EmergencyContactRelation: v(FieldEmergencyContactRelation),
		EmergencyContactPhone:    v(FieldEmergencyContactPhone),
		Department:               v(FieldDepartment),
		Position:                 v(FieldPosition),
		StartDate:                v(FieldStartDate),
		TotalExperienceYears:     years,
		Education:                v(FieldEducation),
		Major:                    v(FieldMajor),
		Languages:                w.languages.Items(),
		TopSkills:                w.skills.Items(),
		Status:                   roster.Status(v(FieldStatus)),
		BankCode:                 v(FieldBankCode),
		BankAccount:              v(FieldBankAccount),
		MBTI:                     v(FieldMBTI),
		WorkStyle:                roster.WorkStyle(v(FieldWorkStyle)),
		Interests:                v(FieldInterests),
		Expectations:             v(FieldExpectations),
	}, nil
}

func parseYears(s string) (float64, error) {
	years, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(years) || math.IsInf(years, 0) {
		return 0, fmt.Errorf("must be a number")
	}
	if years < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	return years, nil
}

func contains(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
