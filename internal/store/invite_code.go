package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/dukerupert/nannyloop/internal/model"
)

// ErrInviteInvalid is returned when an invite code does not exist, has
// expired, or has already been consumed.
var ErrInviteInvalid = errors.New("invite code invalid")

type InviteCodeStore struct {
	db *sql.DB
}

func NewInviteCodeStore(db *sql.DB) *InviteCodeStore {
	return &InviteCodeStore{db: db}
}

func scanInviteCode(scanner interface{ Scan(...any) error }) (*model.InviteCode, error) {
	var ic model.InviteCode
	var expiresAt, usedAt sql.NullTime
	var usedBy sql.NullInt64

	err := scanner.Scan(
		&ic.ID, &ic.Code, &ic.HouseholdID, &ic.CreatedByUserID,
		&ic.CreatedAt, &expiresAt, &usedBy, &usedAt,
	)
	if err != nil {
		return nil, err
	}

	if expiresAt.Valid {
		ic.ExpiresAt = &expiresAt.Time
	}
	if usedBy.Valid {
		ic.UsedByUserID = &usedBy.Int64
	}
	if usedAt.Valid {
		ic.UsedAt = &usedAt.Time
	}
	return &ic, nil
}

const inviteCodeCols = `id, code, household_id, created_by_user_id, created_at, expires_at, used_by_user_id, used_at`

// generateInviteCode returns an 11-character URL-safe token (8 random bytes).
func generateInviteCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate invite code: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Create issues a new invite code for the household. A nil expiresIn means
// the code never expires on its own; it stays valid until consumed.
func (s *InviteCodeStore) Create(householdID, createdByUserID int64, expiresIn *time.Duration) (*model.InviteCode, error) {
	code, err := generateInviteCode()
	if err != nil {
		return nil, err
	}

	var expiresAt sql.NullTime
	if expiresIn != nil {
		expiresAt = sql.NullTime{Time: time.Now().UTC().Add(*expiresIn), Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO invite_codes (code, household_id, created_by_user_id, expires_at) VALUES (?, ?, ?, ?)`,
		code, householdID, createdByUserID, expiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert invite code: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+inviteCodeCols+` FROM invite_codes WHERE id = ?`, id)
	return scanInviteCode(row)
}

// GetByCode returns the invite matching the code regardless of validity,
// or nil when no such code exists.
func (s *InviteCodeStore) GetByCode(code string) (*model.InviteCode, error) {
	row := s.db.QueryRow(`SELECT `+inviteCodeCols+` FROM invite_codes WHERE code = ?`, code)
	ic, err := scanInviteCode(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get invite code: %w", err)
	}
	return ic, nil
}

// Consume marks the code used by the given user. The conditional UPDATE is
// the at-most-once guard: of two concurrent registrations with the same code,
// exactly one observes a row change and the other gets ErrInviteInvalid.
func (s *InviteCodeStore) Consume(code string, userID int64) (*model.InviteCode, error) {
	result, err := s.db.Exec(
		`UPDATE invite_codes
		 SET used_by_user_id = ?, used_at = datetime('now')
		 WHERE code = ? AND used_at IS NULL AND (expires_at IS NULL OR expires_at > datetime('now'))`,
		userID, code,
	)
	if err != nil {
		return nil, fmt.Errorf("consume invite code: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrInviteInvalid
	}

	return s.GetByCode(code)
}

// ListActive returns the household's unconsumed, unexpired codes, newest first.
func (s *InviteCodeStore) ListActive(householdID int64, limit int) ([]model.InviteCode, error) {
	rows, err := s.db.Query(
		`SELECT `+inviteCodeCols+` FROM invite_codes
		 WHERE household_id = ? AND used_at IS NULL AND (expires_at IS NULL OR expires_at > datetime('now'))
		 ORDER BY created_at DESC LIMIT ?`,
		householdID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list active invite codes: %w", err)
	}
	defer rows.Close()

	var codes []model.InviteCode
	for rows.Next() {
		ic, err := scanInviteCode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invite code: %w", err)
		}
		codes = append(codes, *ic)
	}
	return codes, rows.Err()
}
