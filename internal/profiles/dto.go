package profiles

import "strings"

// DetailedFormRequest is the save payload. Pointer-to-slice fields carry the
// replace-vs-leave semantics: a nil pointer leaves the collection untouched,
// an empty slice clears it.
type DetailedFormRequest struct {
	Bio               *string            `json:"bio"`
	Headline          *string            `json:"headline"`
	SalaryExpectation *string            `json:"salary_expectation"`
	Education         *[]EducationInput  `json:"education"`
	Experience        *[]ExperienceInput `json:"experience"`
	Skills            *[]SkillInput      `json:"skills"`
}

type EducationInput struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	StartYear    int    `json:"start_year"`
	EndYear      int    `json:"end_year"`
}

type ExperienceInput struct {
	CompanyName string `json:"company_name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartYear   int    `json:"start_year"`
	EndYear     int    `json:"end_year"`
}

// SkillInput accepts both current and legacy field names for each attribute.
type SkillInput struct {
	SkillName        string `json:"skill_name"`
	Name             string `json:"name"`
	ProficiencyLevel string `json:"proficiency_level"`
	Level            string `json:"level"`
	YearsExperience  int    `json:"years_experience"`
	Years            int    `json:"years"`
}

// normalize resolves the aliases. Rows without a resolvable skill name are
// dropped silently.
func (s SkillInput) normalize() (Skill, bool) {
	name := strings.TrimSpace(s.SkillName)
	if name == "" {
		name = strings.TrimSpace(s.Name)
	}
	if name == "" {
		return Skill{}, false
	}

	level := strings.TrimSpace(s.ProficiencyLevel)
	if level == "" {
		level = strings.TrimSpace(s.Level)
	}
	years := s.YearsExperience
	if years == 0 {
		years = s.Years
	}

	return Skill{
		SkillName:        name,
		ProficiencyLevel: level,
		YearsExperience:  years,
	}, true
}

// DetailedFormView is the read-side composition. Profile is null when no
// profile row exists yet.
type DetailedFormView struct {
	Profile    *Profile     `json:"profile"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
	Skills     []Skill      `json:"skills"`
}
