package db

import (
	"context"
	"fmt"
)

// schemaDDL creates the storage for users and the resume aggregate.
// Children carry the client-generated id as text plus an ordinal column:
// array order in the payload is authoritative for display and export, so
// it is persisted explicitly.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS users (
    id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name          TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL DEFAULT '',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS resumes (
    id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    summary    TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS personal_info (
    resume_id UUID PRIMARY KEY REFERENCES resumes(id) ON DELETE CASCADE,
    full_name TEXT NOT NULL DEFAULT '',
    email     TEXT NOT NULL DEFAULT '',
    phone     TEXT NOT NULL DEFAULT '',
    location  TEXT NOT NULL DEFAULT '',
    linked_in TEXT NOT NULL DEFAULT '',
    github    TEXT NOT NULL DEFAULT '',
    website   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS experiences (
    id          TEXT NOT NULL,
    resume_id   UUID NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
    ordinal     INT NOT NULL,
    company     TEXT NOT NULL DEFAULT '',
    position    TEXT NOT NULL DEFAULT '',
    start_date  TEXT NOT NULL DEFAULT '',
    end_date    TEXT NOT NULL DEFAULT '',
    current     BOOLEAN NOT NULL DEFAULT FALSE,
    description TEXT NOT NULL DEFAULT '',
    highlights  JSONB NOT NULL DEFAULT '[]',
    PRIMARY KEY (resume_id, id)
);

CREATE TABLE IF NOT EXISTS education (
    id          TEXT NOT NULL,
    resume_id   UUID NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
    ordinal     INT NOT NULL,
    institution TEXT NOT NULL DEFAULT '',
    degree      TEXT NOT NULL DEFAULT '',
    field       TEXT NOT NULL DEFAULT '',
    start_date  TEXT NOT NULL DEFAULT '',
    end_date    TEXT NOT NULL DEFAULT '',
    current     BOOLEAN NOT NULL DEFAULT FALSE,
    gpa         TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (resume_id, id)
);

CREATE TABLE IF NOT EXISTS skills (
    id        TEXT NOT NULL,
    resume_id UUID NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
    ordinal   INT NOT NULL,
    name      TEXT NOT NULL DEFAULT '',
    level     TEXT NOT NULL DEFAULT '',
    category  TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (resume_id, id)
);

CREATE INDEX IF NOT EXISTS idx_resumes_user_updated ON resumes (user_id, updated_at DESC);
`

// EnsureSchema creates the tables when they do not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
