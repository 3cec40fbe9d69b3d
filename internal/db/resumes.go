package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jeffynunes09/create-resume/internal/types"
)

// CreateResume stores a new resume aggregate for the user and returns the
// stored document with its assigned identity and timestamps.
func (db *DB) CreateResume(ctx context.Context, userID uuid.UUID, input types.ResumeInput) (*types.Resume, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			// Log rollback error but don't overwrite main error
			_ = rErr
		}
	}()

	var resume types.Resume
	err = tx.QueryRow(ctx,
		`INSERT INTO resumes (user_id, summary)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		userID, input.Summary,
	).Scan(&resume.ID, &resume.CreatedAt, &resume.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}

	if err := upsertPersonalInfo(ctx, tx, resume.ID, input.PersonalInfo); err != nil {
		return nil, err
	}
	if err := insertChildren(ctx, tx, resume.ID, input); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	resume.PersonalInfo = input.PersonalInfo
	resume.Summary = input.Summary
	resume.Experiences = input.Experiences
	resume.Education = input.Education
	resume.Skills = input.Skills
	normalizeCollections(&resume)
	return &resume, nil
}

// ListResumes returns all resumes of a user, most recently updated first.
func (db *DB) ListResumes(ctx context.Context, userID uuid.UUID) ([]*types.Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT r.id, r.summary, r.created_at, r.updated_at,
		        COALESCE(p.full_name, ''), COALESCE(p.email, ''), COALESCE(p.phone, ''),
		        COALESCE(p.location, ''), COALESCE(p.linked_in, ''), COALESCE(p.github, ''),
		        COALESCE(p.website, '')
		 FROM resumes r
		 LEFT JOIN personal_info p ON p.resume_id = r.id
		 WHERE r.user_id = $1
		 ORDER BY r.updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []*types.Resume
	for rows.Next() {
		var r types.Resume
		err := rows.Scan(&r.ID, &r.Summary, &r.CreatedAt, &r.UpdatedAt,
			&r.PersonalInfo.FullName, &r.PersonalInfo.Email, &r.PersonalInfo.Phone,
			&r.PersonalInfo.Location, &r.PersonalInfo.LinkedIn, &r.PersonalInfo.GitHub,
			&r.PersonalInfo.Website)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resumes: %w", err)
	}

	for _, r := range resumes {
		if err := db.loadChildren(ctx, r); err != nil {
			return nil, err
		}
	}
	return resumes, nil
}

// GetResume retrieves one resume of a user with all child collections in
// stored order. Returns nil when the resume does not exist or belongs to
// a different user.
func (db *DB) GetResume(ctx context.Context, userID, resumeID uuid.UUID) (*types.Resume, error) {
	var r types.Resume
	err := db.pool.QueryRow(ctx,
		`SELECT r.id, r.summary, r.created_at, r.updated_at,
		        COALESCE(p.full_name, ''), COALESCE(p.email, ''), COALESCE(p.phone, ''),
		        COALESCE(p.location, ''), COALESCE(p.linked_in, ''), COALESCE(p.github, ''),
		        COALESCE(p.website, '')
		 FROM resumes r
		 LEFT JOIN personal_info p ON p.resume_id = r.id
		 WHERE r.id = $1 AND r.user_id = $2`,
		resumeID, userID,
	).Scan(&r.ID, &r.Summary, &r.CreatedAt, &r.UpdatedAt,
		&r.PersonalInfo.FullName, &r.PersonalInfo.Email, &r.PersonalInfo.Phone,
		&r.PersonalInfo.Location, &r.PersonalInfo.LinkedIn, &r.PersonalInfo.GitHub,
		&r.PersonalInfo.Website)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if err := db.loadChildren(ctx, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateResume replaces the content of an existing resume in one
// transaction: the summary and personal info are updated in place, the
// child collections are deleted and recreated so the stored ordinals
// match the payload order exactly. Returns nil when the resume does not
// exist or belongs to a different user.
func (db *DB) UpdateResume(ctx context.Context, userID, resumeID uuid.UUID, input types.ResumeInput) (*types.Resume, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			// Log rollback error but don't overwrite main error
			_ = rErr
		}
	}()

	var resume types.Resume
	err = tx.QueryRow(ctx,
		`UPDATE resumes SET summary = $1, updated_at = NOW()
		 WHERE id = $2 AND user_id = $3
		 RETURNING id, created_at, updated_at`,
		input.Summary, resumeID, userID,
	).Scan(&resume.ID, &resume.CreatedAt, &resume.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}

	if err := upsertPersonalInfo(ctx, tx, resumeID, input.PersonalInfo); err != nil {
		return nil, err
	}

	for _, table := range []string{"experiences", "education", "skills"} {
		if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE resume_id = $1`, table), resumeID); err != nil {
			return nil, fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := insertChildren(ctx, tx, resumeID, input); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	resume.PersonalInfo = input.PersonalInfo
	resume.Summary = input.Summary
	resume.Experiences = input.Experiences
	resume.Education = input.Education
	resume.Skills = input.Skills
	normalizeCollections(&resume)
	return &resume, nil
}

// DeleteResume removes a resume and all its children via cascade. Returns
// false when the resume does not exist or belongs to a different user.
func (db *DB) DeleteResume(ctx context.Context, userID, resumeID uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM resumes WHERE id = $1 AND user_id = $2`,
		resumeID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete resume: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func upsertPersonalInfo(ctx context.Context, tx pgx.Tx, resumeID uuid.UUID, info types.PersonalInfo) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO personal_info (resume_id, full_name, email, phone, location, linked_in, github, website)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (resume_id) DO UPDATE SET
		   full_name = EXCLUDED.full_name,
		   email     = EXCLUDED.email,
		   phone     = EXCLUDED.phone,
		   location  = EXCLUDED.location,
		   linked_in = EXCLUDED.linked_in,
		   github    = EXCLUDED.github,
		   website   = EXCLUDED.website`,
		resumeID, info.FullName, info.Email, info.Phone, info.Location,
		info.LinkedIn, info.GitHub, info.Website,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert personal info: %w", err)
	}
	return nil
}

func insertChildren(ctx context.Context, tx pgx.Tx, resumeID uuid.UUID, input types.ResumeInput) error {
	for i, exp := range input.Experiences {
		_, err := tx.Exec(ctx,
			`INSERT INTO experiences (id, resume_id, ordinal, company, position, start_date, end_date, current, description, highlights)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			exp.ID, resumeID, i, exp.Company, exp.Position, exp.StartDate,
			exp.EndDate, exp.Current, exp.Description, StringArray(exp.Highlights),
		)
		if err != nil {
			return fmt.Errorf("failed to insert experience: %w", err)
		}
	}
	for i, edu := range input.Education {
		_, err := tx.Exec(ctx,
			`INSERT INTO education (id, resume_id, ordinal, institution, degree, field, start_date, end_date, current, gpa)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			edu.ID, resumeID, i, edu.Institution, edu.Degree, edu.Field,
			edu.StartDate, edu.EndDate, edu.Current, edu.GPA,
		)
		if err != nil {
			return fmt.Errorf("failed to insert education: %w", err)
		}
	}
	for i, skill := range input.Skills {
		_, err := tx.Exec(ctx,
			`INSERT INTO skills (id, resume_id, ordinal, name, level, category)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			skill.ID, resumeID, i, skill.Name, string(skill.Level), skill.Category,
		)
		if err != nil {
			return fmt.Errorf("failed to insert skill: %w", err)
		}
	}
	return nil
}

func (db *DB) loadChildren(ctx context.Context, r *types.Resume) error {
	expRows, err := db.pool.Query(ctx,
		`SELECT id, company, position, start_date, end_date, current, description, highlights
		 FROM experiences WHERE resume_id = $1 ORDER BY ordinal`,
		r.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to load experiences: %w", err)
	}
	defer expRows.Close()
	for expRows.Next() {
		var exp types.Experience
		var highlights StringArray
		err := expRows.Scan(&exp.ID, &exp.Company, &exp.Position, &exp.StartDate,
			&exp.EndDate, &exp.Current, &exp.Description, &highlights)
		if err != nil {
			return fmt.Errorf("failed to scan experience: %w", err)
		}
		exp.Highlights = highlights
		r.Experiences = append(r.Experiences, exp)
	}
	if err := expRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate experiences: %w", err)
	}

	eduRows, err := db.pool.Query(ctx,
		`SELECT id, institution, degree, field, start_date, end_date, current, gpa
		 FROM education WHERE resume_id = $1 ORDER BY ordinal`,
		r.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to load education: %w", err)
	}
	defer eduRows.Close()
	for eduRows.Next() {
		var edu types.Education
		err := eduRows.Scan(&edu.ID, &edu.Institution, &edu.Degree, &edu.Field,
			&edu.StartDate, &edu.EndDate, &edu.Current, &edu.GPA)
		if err != nil {
			return fmt.Errorf("failed to scan education: %w", err)
		}
		r.Education = append(r.Education, edu)
	}
	if err := eduRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate education: %w", err)
	}

	skillRows, err := db.pool.Query(ctx,
		`SELECT id, name, level, category
		 FROM skills WHERE resume_id = $1 ORDER BY ordinal`,
		r.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to load skills: %w", err)
	}
	defer skillRows.Close()
	for skillRows.Next() {
		var skill types.Skill
		var level string
		err := skillRows.Scan(&skill.ID, &skill.Name, &level, &skill.Category)
		if err != nil {
			return fmt.Errorf("failed to scan skill: %w", err)
		}
		skill.Level = types.SkillLevel(level)
		r.Skills = append(r.Skills, skill)
	}
	if err := skillRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate skills: %w", err)
	}

	normalizeCollections(r)
	return nil
}

// normalizeCollections makes empty child collections serialize as [] rather
// than null in API responses.
func normalizeCollections(r *types.Resume) {
	if r.Experiences == nil {
		r.Experiences = []types.Experience{}
	}
	if r.Education == nil {
		r.Education = []types.Education{}
	}
	if r.Skills == nil {
		r.Skills = []types.Skill{}
	}
	for i := range r.Experiences {
		if r.Experiences[i].Highlights == nil {
			r.Experiences[i].Highlights = []string{}
		}
	}
}
