package drafts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/feedclient/internal/client/models"
	"github.com/dmitrijs2005/feedclient/internal/common"
	"github.com/dmitrijs2005/feedclient/internal/dbx"
)

// SQLiteRepository implements Repository on a local SQLite database. Writes
// touching both the draft row and its attachment rows run inside a single
// transaction via dbx.WithTx.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DB.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, draft *models.DraftPost) (int64, error) {
	var id int64

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := `INSERT INTO drafts (server_id, text, thumbnail, state, created_at)
			VALUES (?, ?, ?, ?, ?)`
		res, err := tx.ExecContext(ctx, query,
			draft.ServerID, draft.Text, draft.Thumbnail, string(draft.State), draft.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert draft: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get draft id: %w", err)
		}
		return insertAttachments(ctx, tx, id, draft.Attachments)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, temporaryID int64) (*models.DraftPost, error) {
	query := `SELECT temporary_id, server_id, text, thumbnail, state, created_at
		FROM drafts WHERE temporary_id=?`
	row := r.db.QueryRowContext(ctx, query, temporaryID)

	draft, err := scanDraft(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadAttachments(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (r *SQLiteRepository) GetPending(ctx context.Context) (*models.DraftPost, error) {
	query := `SELECT temporary_id, server_id, text, thumbnail, state, created_at
		FROM drafts WHERE state <> ? ORDER BY temporary_id DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, string(models.DraftStateConfirmed))

	draft, err := scanDraft(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadAttachments(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, draft *models.DraftPost) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := `UPDATE drafts SET server_id=?, text=?, thumbnail=?, state=? WHERE temporary_id=?`
		res, err := tx.ExecContext(ctx, query,
			draft.ServerID, draft.Text, draft.Thumbnail, string(draft.State), draft.TemporaryID)
		if err != nil {
			return fmt.Errorf("failed to update draft: %w", err)
		}
		if err := requireOneRow(res); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM draft_attachments WHERE temporary_id=?`, draft.TemporaryID); err != nil {
			return fmt.Errorf("failed to clear attachments: %w", err)
		}
		return insertAttachments(ctx, tx, draft.TemporaryID, draft.Attachments)
	})
}

func (r *SQLiteRepository) TransitionState(ctx context.Context, temporaryID int64, from, to models.DraftState) (bool, error) {
	query := `UPDATE drafts SET state=? WHERE temporary_id=? AND state=?`
	res, err := r.db.ExecContext(ctx, query, string(to), temporaryID, string(from))
	if err != nil {
		return false, fmt.Errorf("failed to transition draft state: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return ra == 1, nil
}

func (r *SQLiteRepository) SetServerID(ctx context.Context, temporaryID int64, serverID string) error {
	query := `UPDATE drafts SET server_id=? WHERE temporary_id=? AND server_id=''`
	res, err := r.db.ExecContext(ctx, query, serverID, temporaryID)
	if err != nil {
		return fmt.Errorf("failed to set server id: %w", err)
	}
	return requireOneRow(res)
}

func (r *SQLiteRepository) UpdateAttachment(ctx context.Context, temporaryID int64, att models.Attachment) error {
	query := `UPDATE draft_attachments SET local_uri=?, remote_uri=?, progress_bytes=?, total_bytes=?
		WHERE temporary_id=? AND idx=?`
	res, err := r.db.ExecContext(ctx, query,
		att.LocalURI, att.RemoteURI, att.ProgressBytes, att.TotalBytes, temporaryID, att.Index)
	if err != nil {
		return fmt.Errorf("failed to update attachment: %w", err)
	}
	return requireOneRow(res)
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, temporaryID int64) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM draft_attachments WHERE temporary_id=?`, temporaryID); err != nil {
			return fmt.Errorf("failed to delete attachments: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM drafts WHERE temporary_id=?`, temporaryID)
		if err != nil {
			return fmt.Errorf("failed to delete draft: %w", err)
		}
		return requireOneRow(res)
	})
}

func (r *SQLiteRepository) loadAttachments(ctx context.Context, draft *models.DraftPost) error {
	query := `SELECT idx, local_uri, remote_uri, progress_bytes, total_bytes
		FROM draft_attachments WHERE temporary_id=? ORDER BY idx`
	rows, err := r.db.QueryContext(ctx, query, draft.TemporaryID)
	if err != nil {
		return fmt.Errorf("failed to select attachments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a models.Attachment
		if err := rows.Scan(&a.Index, &a.LocalURI, &a.RemoteURI, &a.ProgressBytes, &a.TotalBytes); err != nil {
			return err
		}
		draft.Attachments = append(draft.Attachments, a)
	}
	return rows.Err()
}

func insertAttachments(ctx context.Context, tx dbx.DBTX, temporaryID int64, atts []models.Attachment) error {
	query := `INSERT INTO draft_attachments (temporary_id, idx, local_uri, remote_uri, progress_bytes, total_bytes)
		VALUES (?, ?, ?, ?, ?, ?)`
	for _, a := range atts {
		_, err := tx.ExecContext(ctx, query,
			temporaryID, a.Index, a.LocalURI, a.RemoteURI, a.ProgressBytes, a.TotalBytes)
		if err != nil {
			return fmt.Errorf("failed to insert attachment: %w", err)
		}
	}
	return nil
}

func scanDraft(row *sql.Row) (*models.DraftPost, error) {
	d := &models.DraftPost{}
	var state string
	err := row.Scan(&d.TemporaryID, &d.ServerID, &d.Text, &d.Thumbnail, &state, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select draft: %w", err)
	}
	d.State = models.DraftState(state)
	return d, nil
}

func requireOneRow(res sql.Result) error {
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return common.ErrorNotFound
	}
	return nil
}
