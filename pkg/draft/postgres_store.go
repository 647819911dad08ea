package draft

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/wealthdesk/onboarding/internal/utils"
)

type PostgresStore struct {
	db    *pgxpool.Pool
	clock utils.Clock
}

func NewPostgresStore(db *pgxpool.Pool, clock utils.Clock) *PostgresStore {
	return &PostgresStore{db: db, clock: clock}
}

func (s *PostgresStore) Save(ctx context.Context, draft Draft) (Draft, error) {
	if draft.ID == uuid.Nil {
		draft.ID = uuid.New()
	}
	draft.SavedAt = s.clock.Now().UTC()

	query := `INSERT INTO draft (id, session_id, status, step, client_name, data, saved_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (id) DO UPDATE SET
					status = EXCLUDED.status,
					step = EXCLUDED.step,
					client_name = EXCLUDED.client_name,
					data = EXCLUDED.data,
					saved_at = EXCLUDED.saved_at`
	_, err := s.db.Exec(ctx, query,
		draft.ID,
		draft.SessionID,
		draft.Status,
		draft.Step,
		draft.ClientName,
		[]byte(draft.Data),
		draft.SavedAt,
	)
	if err != nil {
		err := fmt.Errorf("could not store draft: %w", err)
		log.Error(err)
		return Draft{}, err
	}
	return draft, nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (Draft, error) {
	query := `SELECT id, session_id, status, step, client_name, data, saved_at FROM draft WHERE id = $1`
	draft, err := scanDraft(s.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Draft{}, ErrDraftNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not query draft: %w", err)
		log.Error(err)
		return Draft{}, err
	}
	return draft, nil
}

func (s *PostgresStore) List(ctx context.Context, status Status) ([]Draft, error) {
	query := `SELECT id, session_id, status, step, client_name, data, saved_at FROM draft
				WHERE ($1::text = '' OR status = $1::text) ORDER BY saved_at DESC`
	rows, err := s.db.Query(ctx, query, string(status))
	if err != nil {
		err := fmt.Errorf("could not query drafts: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	drafts := make([]Draft, 0)
	for rows.Next() {
		draft, err := scanDraft(rows)
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

func scanDraft(row pgx.Row) (Draft, error) {
	var draft Draft
	var data []byte
	err := row.Scan(
		&draft.ID,
		&draft.SessionID,
		&draft.Status,
		&draft.Step,
		&draft.ClientName,
		&data,
		&draft.SavedAt,
	)
	if err != nil {
		return Draft{}, err
	}
	draft.Data = data
	return draft, nil
}
