package intake

import "github.com/ohare93/onboard/internal/roster"

// Step is a stage of the intake wizard
type Step int

const (
	StepIdentity Step = iota + 1
	StepEmergency
	StepEmployment
	StepProfile
	StepSubmitted
)

// LastStep is the final editable step
const LastStep = StepProfile

func (s Step) String() string {
	switch s {
	case StepIdentity:
		return "Personal details"
	case StepEmergency:
		return "Payroll & emergency contact"
	case StepEmployment:
		return "Career & education"
	case StepProfile:
		return "Personality & expectations"
	case StepSubmitted:
		return "Submitted"
	default:
		return "Unknown"
	}
}

// Field names a form input. Values match the persisted JSON keys.
type Field string

const (
	FieldFullName   Field = "fullName"
	FieldGender     Field = "gender"
	FieldBirthday   Field = "birthday"
	FieldNationalID Field = "nationalId"
	FieldEmail      Field = "email"
	FieldPhone      Field = "phone"
	FieldAddress    Field = "address"

	FieldBankCode                 Field = "bankCode"
	FieldBankAccount              Field = "bankAccount"
	FieldEmergencyContactName     Field = "emergencyContactName"
	FieldEmergencyContactRelation Field = "emergencyContactRelation"
	FieldEmergencyContactPhone    Field = "emergencyContactPhone"

	FieldDepartment      Field = "department"
	FieldPosition        Field = "position"
	FieldExperienceYears Field = "totalExperienceYears"
	FieldEducation       Field = "education"
	FieldMajor           Field = "major"
	FieldStartDate       Field = "startDate"
	FieldLanguages       Field = "languages"

	FieldMBTI         Field = "mbti"
	FieldStatus       Field = "status"
	FieldWorkStyle    Field = "workStyle"
	FieldTopSkills    Field = "topSkills"
	FieldInterests    Field = "interests"
	FieldExpectations Field = "expectations"
)

// Kind controls how a field is edited and validated
type Kind int

const (
	KindText Kind = iota
	KindEmail
	KindDate
	KindNumber
	KindChoice
	KindToggle
	KindLongText
)

// FieldSpec describes one input of the wizard
type FieldSpec struct {
	Field       Field
	Label       string
	Step        Step
	Kind        Kind
	Required    bool
	Options     []string
	Placeholder string
}

// IsText reports whether the field takes free-form typed input
func (f FieldSpec) IsText() bool {
	return f.Kind != KindChoice && f.Kind != KindToggle
}

// CommonLanguages are the selectable language chips
var CommonLanguages = []string{"Chinese", "English", "Japanese", "Korean", "Spanish"}

// CommonSkills are the selectable skill chips
var CommonSkills = []string{"Communication", "Python", "React", "Project Management", "UI Design", "Data Analysis", "SQL", "Digital Marketing"}

// DefaultLanguage seeds the languages toggle-set
const DefaultLanguage = "Chinese"

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// Catalogue lists every field in display order
var Catalogue = []FieldSpec{
	{Field: FieldFullName, Label: "Full name", Step: StepIdentity, Kind: KindText, Required: true, Placeholder: "Full legal name"},
	{Field: FieldGender, Label: "Gender", Step: StepIdentity, Kind: KindChoice, Options: stringsOf(roster.Genders)},
	{Field: FieldBirthday, Label: "Birthday", Step: StepIdentity, Kind: KindDate, Required: true, Placeholder: "YYYY-MM-DD"},
	{Field: FieldNationalID, Label: "National ID", Step: StepIdentity, Kind: KindText, Required: true, Placeholder: "A123456789"},
	{Field: FieldEmail, Label: "Email", Step: StepIdentity, Kind: KindEmail, Required: true, Placeholder: "personal@email.com"},
	{Field: FieldPhone, Label: "Mobile phone", Step: StepIdentity, Kind: KindText, Required: true, Placeholder: "09XX-XXX-XXX"},
	{Field: FieldAddress, Label: "Address", Step: StepIdentity, Kind: KindText, Required: true, Placeholder: "Full mailing address"},

	{Field: FieldBankCode, Label: "Bank code", Step: StepEmergency, Kind: KindText, Required: true, Placeholder: "e.g. 822"},
	{Field: FieldBankAccount, Label: "Bank account", Step: StepEmergency, Kind: KindText, Required: true, Placeholder: "Full account number"},
	{Field: FieldEmergencyContactName, Label: "Emergency contact", Step: StepEmergency, Kind: KindText, Required: true},
	{Field: FieldEmergencyContactRelation, Label: "Relation", Step: StepEmergency, Kind: KindText, Required: true},
	{Field: FieldEmergencyContactPhone, Label: "Contact phone", Step: StepEmergency, Kind: KindText, Required: true},

	{Field: FieldDepartment, Label: "Department", Step: StepEmployment, Kind: KindText, Required: true, Placeholder: "e.g. Engineering"},
	{Field: FieldPosition, Label: "Position", Step: StepEmployment, Kind: KindText, Required: true, Placeholder: "e.g. Frontend Engineer"},
	{Field: FieldExperienceYears, Label: "Total experience (years)", Step: StepEmployment, Kind: KindNumber, Required: true},
	{Field: FieldEducation, Label: "School", Step: StepEmployment, Kind: KindText, Required: true},
	{Field: FieldMajor, Label: "Major", Step: StepEmployment, Kind: KindText, Required: true},
	{Field: FieldStartDate, Label: "Start date", Step: StepEmployment, Kind: KindDate, Required: true, Placeholder: "YYYY-MM-DD"},
	{Field: FieldLanguages, Label: "Languages", Step: StepEmployment, Kind: KindToggle, Options: CommonLanguages},

	{Field: FieldMBTI, Label: "MBTI type", Step: StepProfile, Kind: KindChoice, Options: append([]string{""}, roster.MBTITypes...)},
	{Field: FieldStatus, Label: "Initial status", Step: StepProfile, Kind: KindChoice, Options: stringsOf(roster.Statuses)},
	{Field: FieldWorkStyle, Label: "Work style", Step: StepProfile, Kind: KindChoice, Options: stringsOf(roster.WorkStyles)},
	{Field: FieldTopSkills, Label: "Top skills", Step: StepProfile, Kind: KindToggle, Options: CommonSkills},
	{Field: FieldInterests, Label: "Interests", Step: StepProfile, Kind: KindText},
	{Field: FieldExpectations, Label: "Expectations", Step: StepProfile, Kind: KindLongText, Placeholder: "What do you hope to achieve here?"},
}

// FieldsFor returns the fields shown on a step, in display order
func FieldsFor(step Step) []FieldSpec {
	var out []FieldSpec
	for _, spec := range Catalogue {
		if spec.Step == step {
			out = append(out, spec)
		}
	}
	return out
}

// Lookup returns the spec for a field
func Lookup(f Field) (FieldSpec, bool) {
	for _, spec := range Catalogue {
		if spec.Field == f {
			return spec, true
		}
	}
	return FieldSpec{}, false
}
