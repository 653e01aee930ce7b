package accountstore

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Account is a registered user, grounded on the root auth.go's User type
// but carrying generation counters instead of Wordle game stats.
type Account struct {
	ID               string
	Username         string
	PasswordHash     string
	CreatedAt        time.Time
	PuzzlesGenerated int
	OptimalCount     int
}

// ErrUsernameTaken is returned by CreateAccount on a duplicate username.
var ErrUsernameTaken = errors.New("username taken")

func normalizeUsername(u string) string { return strings.TrimSpace(u) }

// ValidateSignup enforces the same username/password shape the teacher
// used for game accounts.
func ValidateSignup(username, password string) error {
	if len(username) < 3 || len(username) > 24 {
		return errors.New("username must be 3-24 chars")
	}
	for _, r := range username {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return errors.New("username: letters, numbers, underscore only")
		}
	}
	if len(password) < 8 || len(password) > 100 {
		return errors.New("password must be 8-100 chars")
	}
	return nil
}

// CreateAccount hashes the password and inserts a new account row.
func (s *Store) CreateAccount(id, username, password string) (*Account, error) {
	username = normalizeUsername(username)
	if err := ValidateSignup(username, password); err != nil {
		return nil, err
	}
	var exists int
	_ = s.db.QueryRow(`SELECT 1 FROM users WHERE lower(username)=lower(?)`, username).Scan(&exists)
	if exists == 1 {
		return nil, ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if _, err := s.db.Exec(`INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		id, username, string(hash), now.Format(time.RFC3339)); err != nil {
		return nil, err
	}
	return &Account{ID: id, Username: username, PasswordHash: string(hash), CreatedAt: now}, nil
}

// CheckPassword reports whether password matches the account's stored hash.
func CheckPassword(a *Account, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

// FindByUsername looks up an account case-insensitively.
func (s *Store) FindByUsername(username string) (*Account, error) {
	row := s.db.QueryRow(`SELECT id, username, password_hash, created_at, puzzles_generated, optimal_count
	                      FROM users WHERE lower(username)=lower(?)`, normalizeUsername(username))
	return scanAccount(row)
}

// FindByID looks up an account by primary key.
func (s *Store) FindByID(id string) (*Account, error) {
	row := s.db.QueryRow(`SELECT id, username, password_hash, created_at, puzzles_generated, optimal_count
	                      FROM users WHERE id=?`, id)
	return scanAccount(row)
}

// LastGenerationAt returns the timestamp of the caller's most recent
// generation_log row, or nil if they have never generated a puzzle.
func (s *Store) LastGenerationAt(userID string) (*time.Time, error) {
	var raw sql.NullString
	err := s.db.QueryRow(`SELECT MAX(created_at) FROM generation_log WHERE user_id=?`, userID).Scan(&raw)
	if err != nil {
		return nil, err
	}
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanAccount(row *sql.Row) (*Account, error) {
	var a Account
	var created string
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &created, &a.PuzzlesGenerated, &a.OptimalCount); err != nil {
		return nil, err
	}
	t, _ := time.Parse(time.RFC3339, created)
	a.CreatedAt = t
	return &a, nil
}

// GenerationLogEntry records the aggregate telemetry of one /puzzle/generate
// call, per SPEC_FULL.md's data model — never the answer or guesses.
type GenerationLogEntry struct {
	UserID              string // empty for anonymous callers
	AnonymousID         string
	Status              string // "optimal" | "ambiguous"
	AttemptsUsed        int
	RemainingCandidates int
	DurationMS          int64
}

// LogGeneration inserts a telemetry row and, for authenticated users,
// bumps their running counters in the same transaction.
func (s *Store) LogGeneration(e GenerationLogEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var userID, anonID any
	if e.UserID != "" {
		userID = e.UserID
	}
	if e.AnonymousID != "" {
		anonID = e.AnonymousID
	}
	if _, err := tx.Exec(`INSERT INTO generation_log
		(user_id, anonymous_id, status, attempts_used, remaining_candidates, duration_ms, created_at)
		VALUES (?,?,?,?,?,?,?)`,
		userID, anonID, e.Status, e.AttemptsUsed, e.RemainingCandidates, e.DurationMS,
		time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	if e.UserID != "" {
		optimalDelta := 0
		if e.Status == "optimal" {
			optimalDelta = 1
		}
		if _, err := tx.Exec(`UPDATE users SET puzzles_generated = puzzles_generated + 1,
			optimal_count = optimal_count + ? WHERE id=?`, optimalDelta, e.UserID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
