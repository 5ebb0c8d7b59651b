package roster

import (
	"fmt"
	"strings"
)

// Status is the lifecycle status of an employee record
type Status string

const (
	StatusActive   Status = "Active"
	StatusResigned Status = "Resigned"
	StatusHidden   Status = "Hidden"
)

// Statuses lists every lifecycle status in display order
var Statuses = []Status{StatusActive, StatusResigned, StatusHidden}

// Gender is the legal sex/gender recorded at intake
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Genders lists every gender option in display order
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// WorkStyle is the preferred working arrangement
type WorkStyle string

const (
	WorkStyleRemote WorkStyle = "Remote"
	WorkStyleHybrid WorkStyle = "Hybrid"
	WorkStyleOnSite WorkStyle = "On-site"
)

// WorkStyles lists every work style in display order
var WorkStyles = []WorkStyle{WorkStyleRemote, WorkStyleHybrid, WorkStyleOnSite}

// MBTITypes lists the sixteen accepted MBTI codes
var MBTITypes = []string{
	"INTJ", "ENTJ", "INTP", "ENTP",
	"INFJ", "ENFJ", "INFP", "ENFP",
	"ISTJ", "ESTJ", "ISFJ", "ESFJ",
	"ISTP", "ESTP", "ISFP", "ESFP",
}

// Employee is one onboarded person. Email is the identity key.
type Employee struct {
	ID string `json:"id,omitempty" yaml:"id,omitempty"` // Submission reference, assigned at intake

	FullName   string `json:"fullName" yaml:"fullName"`
	Email      string `json:"email" yaml:"email"`
	Phone      string `json:"phone" yaml:"phone"`
	Birthday   string `json:"birthday" yaml:"birthday"`
	Gender     Gender `json:"gender" yaml:"gender"`
	NationalID string `json:"nationalId" yaml:"nationalId"`
	Address    string `json:"address" yaml:"address"`

	EmergencyContactName     string `json:"emergencyContactName" yaml:"emergencyContactName"`
	EmergencyContactRelation string `json:"emergencyContactRelation" yaml:"emergencyContactRelation"`
	EmergencyContactPhone    string `json:"emergencyContactPhone" yaml:"emergencyContactPhone"`

	Department           string   `json:"department" yaml:"department"`
	Position             string   `json:"position" yaml:"position"`
	StartDate            string   `json:"startDate" yaml:"startDate"`
	TotalExperienceYears float64  `json:"totalExperienceYears" yaml:"totalExperienceYears"`
	Education            string   `json:"education" yaml:"education"`
	Major                string   `json:"major" yaml:"major"`
	Languages            []string `json:"languages" yaml:"languages"`
	TopSkills            []string `json:"topSkills" yaml:"topSkills"`
	Status               Status   `json:"status" yaml:"status"`
	Notes                string   `json:"notes,omitempty" yaml:"notes,omitempty"`

	BankCode    string `json:"bankCode" yaml:"bankCode"`
	BankAccount string `json:"bankAccount" yaml:"bankAccount"`

	MBTI         string    `json:"mbti" yaml:"mbti"`
	WorkStyle    WorkStyle `json:"workStyle" yaml:"workStyle"`
	Interests    string    `json:"interests" yaml:"interests"`
	Expectations string    `json:"expectations" yaml:"expectations"`
}

// Clone returns a deep copy so callers never alias the store's slices
func (e Employee) Clone() Employee {
	c := e
	if e.Languages != nil {
		c.Languages = append([]string(nil), e.Languages...)
	}
	if e.TopSkills != nil {
		c.TopSkills = append([]string(nil), e.TopSkills...)
	}
	return c
}

// HasLanguage reports whether the employee speaks the given language
func (e Employee) HasLanguage(lang string) bool {
	for _, l := range e.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// ValidateStatus checks if a status string is one of the lifecycle statuses
func ValidateStatus(s string) bool {
	for _, st := range Statuses {
		if string(st) == s {
			return true
		}
	}
	return false
}

// ParseStatus accepts a status case-insensitively
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid status: %s (must be Active, Resigned, or Hidden)", s)
}

// ValidateGender checks if a gender string is accepted
func ValidateGender(s string) bool {
	for _, g := range Genders {
		if string(g) == s {
			return true
		}
	}
	return false
}

// ValidateWorkStyle checks if a work style string is accepted
func ValidateWorkStyle(s string) bool {
	for _, w := range WorkStyles {
		if string(w) == s {
			return true
		}
	}
	return false
}

// ValidateMBTI accepts an empty code or one of the sixteen types
func ValidateMBTI(s string) bool {
	if s == "" {
		return true
	}
	for _, t := range MBTITypes {
		if t == s {
			return true
		}
	}
	return false
}
