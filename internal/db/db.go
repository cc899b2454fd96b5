package db

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'USER',
            is_active BOOLEAN NOT NULL DEFAULT FALSE,
            active_code TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS rooms (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            owner_id INT NOT NULL REFERENCES users(id),
            invite_code TEXT NOT NULL DEFAULT '',
            meeting_info TEXT NOT NULL DEFAULT '',
            presentation TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS room_members (
            room_id INT NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
            user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            role TEXT NOT NULL DEFAULT 'MEMBER',
            PRIMARY KEY(room_id, user_id)
        );`,
		`CREATE TABLE IF NOT EXISTS documents (
            id SERIAL PRIMARY KEY,
            pres_id TEXT NOT NULL UNIQUE,
            filename TEXT NOT NULL,
            upload_url TEXT NOT NULL,
            user_id INT NOT NULL REFERENCES users(id),
            is_public BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS recordings (
            id SERIAL PRIMARY KEY,
            record_id TEXT NOT NULL UNIQUE,
            meeting_id INT NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
            start_time TEXT NOT NULL DEFAULT '',
            end_time TEXT NOT NULL DEFAULT '',
            playback_url TEXT NOT NULL DEFAULT '',
            name TEXT NOT NULL DEFAULT '',
            record_name TEXT NOT NULL DEFAULT '',
            participants INT NOT NULL DEFAULT 0,
            published BOOLEAN NOT NULL DEFAULT FALSE,
            deleted BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS presentations (
            id TEXT PRIMARY KEY,
            data JSONB NOT NULL DEFAULT 'null',
            history JSONB NOT NULL DEFAULT 'null',
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS questions (
            id SERIAL PRIMARY KEY,
            presentation_id TEXT NOT NULL,
            user_name TEXT NOT NULL DEFAULT 'Anonymous',
            content TEXT NOT NULL,
            vote INT NOT NULL DEFAULT 0,
            has_answer BOOLEAN NOT NULL DEFAULT FALSE,
            created_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
		`CREATE INDEX IF NOT EXISTS idx_questions_presentation ON questions(presentation_id);`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}
	log.Println("database migrations applied")
	return nil
}
