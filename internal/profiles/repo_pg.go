package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type PGRepo struct {
	DB *sql.DB
}

// SaveForm upserts the profile and replaces each provided child collection,
// all inside one transaction.
func (r *PGRepo) SaveForm(ctx context.Context, candidateID string, form FormWrite) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin form tx: %w", err)
	}
	defer tx.Rollback()

	if form.Profile != nil {
		const query = `
INSERT INTO candidate_profiles (candidate_id, bio, headline, salary_expectation, updated_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (candidate_id) DO UPDATE SET
  bio = EXCLUDED.bio,
  headline = EXCLUDED.headline,
  salary_expectation = EXCLUDED.salary_expectation,
  updated_at = now()`
		if _, err := tx.ExecContext(ctx, query,
			candidateID,
			nullableString(form.Profile.Bio),
			nullableString(form.Profile.Headline),
			nullableString(form.Profile.SalaryExpectation),
		); err != nil {
			return fmt.Errorf("upsert profile: %w", err)
		}
	}

	if form.Education != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM candidate_education WHERE candidate_id = $1`, candidateID); err != nil {
			return fmt.Errorf("clear education: %w", err)
		}
		for _, row := range *form.Education {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO candidate_education (id, candidate_id, institution, degree, field_of_study, start_year, end_year)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				uuid.NewString(), candidateID, row.Institution,
				nullableString(row.Degree), nullableString(row.FieldOfStudy),
				nullableInt(row.StartYear), nullableInt(row.EndYear),
			); err != nil {
				return fmt.Errorf("insert education: %w", err)
			}
		}
	}

	if form.Experience != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM candidate_experience WHERE candidate_id = $1`, candidateID); err != nil {
			return fmt.Errorf("clear experience: %w", err)
		}
		for _, row := range *form.Experience {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO candidate_experience (id, candidate_id, company_name, title, description, start_year, end_year)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				uuid.NewString(), candidateID, row.CompanyName,
				nullableString(row.Title), nullableString(row.Description),
				nullableInt(row.StartYear), nullableInt(row.EndYear),
			); err != nil {
				return fmt.Errorf("insert experience: %w", err)
			}
		}
	}

	if form.Skills != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM candidate_skills WHERE candidate_id = $1`, candidateID); err != nil {
			return fmt.Errorf("clear skills: %w", err)
		}
		for _, row := range *form.Skills {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO candidate_skills (id, candidate_id, skill_name, proficiency_level, years_experience)
VALUES ($1, $2, $3, $4, $5)`,
				uuid.NewString(), candidateID, row.SkillName,
				nullableString(row.ProficiencyLevel), nullableInt(row.YearsExperience),
			); err != nil {
				return fmt.Errorf("insert skill: %w", err)
			}
		}
	}

	return tx.Commit()
}

func (r *PGRepo) GetProfile(ctx context.Context, candidateID string) (Profile, error) {
	const query = `
SELECT candidate_id, bio, headline, salary_expectation, resume_key, resume_url, resume_text, updated_at
FROM candidate_profiles
WHERE candidate_id = $1
LIMIT 1`
	var p Profile
	var bio, headline, salary, resumeKey, resumeURL, resumeText sql.NullString
	var updatedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, candidateID).Scan(
		&p.CandidateID, &bio, &headline, &salary, &resumeKey, &resumeURL, &resumeText, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	p.Bio = bio.String
	p.Headline = headline.String
	p.SalaryExpectation = salary.String
	p.ResumeKey = resumeKey.String
	p.ResumeURL = resumeURL.String
	p.ResumeText = resumeText.String
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.Time
	} else {
		p.UpdatedAt = time.Now().UTC()
	}
	return p, nil
}

func (r *PGRepo) ListEducation(ctx context.Context, candidateID string) ([]Education, error) {
	const query = `
SELECT id, candidate_id, institution, degree, field_of_study, start_year, end_year
FROM candidate_education
WHERE candidate_id = $1`
	rows, err := r.DB.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Education
	for rows.Next() {
		var e Education
		var degree, field sql.NullString
		var start, end sql.NullInt64
		if err := rows.Scan(&e.ID, &e.CandidateID, &e.Institution, &degree, &field, &start, &end); err != nil {
			return nil, err
		}
		e.Degree = degree.String
		e.FieldOfStudy = field.String
		e.StartYear = int(start.Int64)
		e.EndYear = int(end.Int64)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PGRepo) ListExperience(ctx context.Context, candidateID string) ([]Experience, error) {
	const query = `
SELECT id, candidate_id, company_name, title, description, start_year, end_year
FROM candidate_experience
WHERE candidate_id = $1`
	rows, err := r.DB.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Experience
	for rows.Next() {
		var e Experience
		var title, desc sql.NullString
		var start, end sql.NullInt64
		if err := rows.Scan(&e.ID, &e.CandidateID, &e.CompanyName, &title, &desc, &start, &end); err != nil {
			return nil, err
		}
		e.Title = title.String
		e.Description = desc.String
		e.StartYear = int(start.Int64)
		e.EndYear = int(end.Int64)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PGRepo) ListSkills(ctx context.Context, candidateID string) ([]Skill, error) {
	const query = `
SELECT id, candidate_id, skill_name, proficiency_level, years_experience
FROM candidate_skills
WHERE candidate_id = $1`
	rows, err := r.DB.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Skill
	for rows.Next() {
		var s Skill
		var level sql.NullString
		var years sql.NullInt64
		if err := rows.Scan(&s.ID, &s.CandidateID, &s.SkillName, &level, &years); err != nil {
			return nil, err
		}
		s.ProficiencyLevel = level.String
		s.YearsExperience = int(years.Int64)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PGRepo) SetResume(ctx context.Context, candidateID, resumeKey, resumeText string) error {
	const query = `
INSERT INTO candidate_profiles (candidate_id, resume_key, resume_text, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (candidate_id) DO UPDATE SET
  resume_key = EXCLUDED.resume_key,
  resume_text = EXCLUDED.resume_text,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query, candidateID, resumeKey, nullableString(resumeText))
	return err
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableInt(value int) any {
	if value == 0 {
		return nil
	}
	return value
}
