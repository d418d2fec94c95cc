package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

func Initialize(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Migrate declares the nine collections and their secondary indexes. The
// statements are idempotent; there is no migration framework and no schema
// version bumps.
//
// users.email and users.username index ciphertext, so equality lookups on
// them only ever match the exact stored bytes. Plaintext-uniqueness checks
// (duplicate email on registration) live in the auth layer as a
// scan-and-decrypt over all users.
func Migrate(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL,
			username TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			email_verified BOOLEAN DEFAULT FALSE,
			verification_token TEXT DEFAULT '',
			profile_image TEXT DEFAULT '',
			reset_token TEXT,
			reset_token_expiry DATETIME,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			full_name TEXT DEFAULT '',
			birth_date DATETIME,
			country TEXT DEFAULT '',
			city TEXT DEFAULT '',
			household_size INTEGER DEFAULT 1,
			income_level TEXT DEFAULT 'medium',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS question_categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT DEFAULT '',
			icon TEXT DEFAULT '',
			order_index INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			category_id INTEGER NOT NULL,
			question_text TEXT NOT NULL,
			question_type TEXT NOT NULL DEFAULT 'single_select',
			help_text TEXT DEFAULT '',
			is_active BOOLEAN DEFAULT TRUE,
			FOREIGN KEY (category_id) REFERENCES question_categories(id)
		)`,
		`CREATE TABLE IF NOT EXISTS question_options (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			question_id INTEGER NOT NULL,
			option_key TEXT NOT NULL,
			option_text TEXT NOT NULL,
			carbon_value INTEGER NOT NULL,
			order_index INTEGER NOT NULL,
			description TEXT DEFAULT '',
			FOREIGN KEY (question_id) REFERENCES questions(id)
		)`,
		`CREATE TABLE IF NOT EXISTS answers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			question_id INTEGER NOT NULL,
			option_id INTEGER NOT NULL,
			session_id INTEGER NOT NULL,
			answered_at DATETIME NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (question_id) REFERENCES questions(id),
			FOREIGN KEY (option_id) REFERENCES question_options(id),
			UNIQUE(user_id, question_id, session_id)
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			calculation_date DATETIME NOT NULL,
			total_carbon_footprint REAL NOT NULL,
			energy_footprint REAL NOT NULL,
			transport_footprint REAL NOT NULL,
			food_footprint REAL NOT NULL,
			digital_footprint REAL NOT NULL,
			consumption_footprint REAL NOT NULL,
			is_offset BOOLEAN DEFAULT FALSE,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS offsets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			result_id INTEGER NOT NULL,
			offset_amount REAL NOT NULL,
			donation_amount REAL NOT NULL,
			project_type TEXT NOT NULL,
			project_name TEXT NOT NULL,
			offset_date DATETIME NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (result_id) REFERENCES results(id)
		)`,
		`CREATE TABLE IF NOT EXISTS survey_sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			started_at DATETIME NOT NULL,
			completed_at DATETIME,
			current_category_index INTEGER DEFAULT 0,
			is_complete BOOLEAN DEFAULT FALSE,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)`,
		`CREATE INDEX IF NOT EXISTS idx_users_reset_token ON users(reset_token)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_profiles_user_id ON profiles(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_categories_order ON question_categories(order_index)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_category_id ON questions(category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_options_question_id ON question_options(question_id)`,
		`CREATE INDEX IF NOT EXISTS idx_answers_user_session ON answers(user_id, session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_results_user_id ON results(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_results_calculation_date ON results(calculation_date)`,
		`CREATE INDEX IF NOT EXISTS idx_offsets_user_id ON offsets(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_offsets_result_id ON offsets(result_id)`,
		`CREATE INDEX IF NOT EXISTS idx_survey_sessions_user_id ON survey_sessions(user_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	return nil
}
