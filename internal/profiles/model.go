package profiles

import "time"

// Profile is the 1:1 mutable bag of candidate fields. ResumeURL is the
// legacy plain URL kept only as a fallback; new uploads record ResumeKey.
type Profile struct {
	CandidateID       string    `json:"candidate_id"`
	Bio               string    `json:"bio,omitempty"`
	Headline          string    `json:"headline,omitempty"`
	SalaryExpectation string    `json:"salary_expectation,omitempty"`
	ResumeKey         string    `json:"-"`
	ResumeURL         string    `json:"resume_url,omitempty"`
	ResumeText        string    `json:"-"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type Education struct {
	ID           string `json:"id"`
	CandidateID  string `json:"-"`
	Institution  string `json:"institution"`
	Degree       string `json:"degree,omitempty"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	StartYear    int    `json:"start_year,omitempty"`
	EndYear      int    `json:"end_year,omitempty"`
}

type Experience struct {
	ID          string `json:"id"`
	CandidateID string `json:"-"`
	CompanyName string `json:"company_name"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	StartYear   int    `json:"start_year,omitempty"`
	EndYear     int    `json:"end_year,omitempty"`
}

type Skill struct {
	ID               string `json:"id"`
	CandidateID      string `json:"-"`
	SkillName        string `json:"skill_name"`
	ProficiencyLevel string `json:"proficiency_level,omitempty"`
	YearsExperience  int    `json:"years_experience,omitempty"`
}
