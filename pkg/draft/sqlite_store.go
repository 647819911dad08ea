package draft

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/wealthdesk/onboarding/internal/utils"
)

// SQLiteStore keeps drafts in a local SQLite file. saved_at is stored as unix milliseconds.
type SQLiteStore struct {
	db    *sql.DB
	clock utils.Clock
}

func NewSQLiteStore(db *sql.DB, clock utils.Clock) *SQLiteStore {
	return &SQLiteStore{db: db, clock: clock}
}

func (s *SQLiteStore) Save(ctx context.Context, draft Draft) (Draft, error) {
	if draft.ID == uuid.Nil {
		draft.ID = uuid.New()
	}
	draft.SavedAt = s.clock.Now().UTC().Truncate(time.Millisecond)

	query := `INSERT INTO draft (id, session_id, status, step, client_name, data, saved_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT (id) DO UPDATE SET
					status = excluded.status,
					step = excluded.step,
					client_name = excluded.client_name,
					data = excluded.data,
					saved_at = excluded.saved_at`
	_, err := s.db.ExecContext(ctx, query,
		draft.ID.String(),
		draft.SessionID.String(),
		string(draft.Status),
		draft.Step,
		draft.ClientName,
		string(draft.Data),
		draft.SavedAt.UnixMilli(),
	)
	if err != nil {
		err := fmt.Errorf("could not store draft: %w", err)
		log.Error(err)
		return Draft{}, err
	}
	return draft, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id uuid.UUID) (Draft, error) {
	query := `SELECT id, session_id, status, step, client_name, data, saved_at FROM draft WHERE id = ?`
	draft, err := scanSQLiteDraft(s.db.QueryRowContext(ctx, query, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return Draft{}, ErrDraftNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not query draft: %w", err)
		log.Error(err)
		return Draft{}, err
	}
	return draft, nil
}

func (s *SQLiteStore) List(ctx context.Context, status Status) ([]Draft, error) {
	query := `SELECT id, session_id, status, step, client_name, data, saved_at FROM draft
				WHERE (? = '' OR status = ?) ORDER BY saved_at DESC`
	rows, err := s.db.QueryContext(ctx, query, string(status), string(status))
	if err != nil {
		err := fmt.Errorf("could not query drafts: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	drafts := make([]Draft, 0)
	for rows.Next() {
		draft, err := scanSQLiteDraft(rows)
		if err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		drafts = append(drafts, draft)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return drafts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteDraft(row rowScanner) (Draft, error) {
	var (
		id, sessionId, status, data string
		savedAt                     int64
		draft                       Draft
	)
	if err := row.Scan(&id, &sessionId, &status, &draft.Step, &draft.ClientName, &data, &savedAt); err != nil {
		return Draft{}, err
	}
	var err error
	if draft.ID, err = uuid.Parse(id); err != nil {
		return Draft{}, fmt.Errorf("invalid draft id %q: %w", id, err)
	}
	if draft.SessionID, err = uuid.Parse(sessionId); err != nil {
		return Draft{}, fmt.Errorf("invalid session id %q: %w", sessionId, err)
	}
	draft.Status = Status(status)
	draft.Data = []byte(data)
	draft.SavedAt = time.UnixMilli(savedAt).UTC()
	return draft, nil
}
