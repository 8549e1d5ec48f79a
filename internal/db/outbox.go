// ABOUTME: Outbox database operations for composed-but-unsent posts
// ABOUTME: Queue, list, and delete drafts awaiting submission

package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/perlover/cldrforum/internal/client"
	"github.com/perlover/cldrforum/internal/models"
)

// QueuedDraft is a draft waiting in the outbox.
type QueuedDraft struct {
	ID       int64
	Draft    client.Draft
	QueuedAt time.Time
}

// QueueDraft stores a draft for later submission.
func QueueDraft(db *sql.DB, d *client.Draft) (int64, error) {
	res, err := db.Exec(`
		INSERT INTO outbox (locale, xpath, parent, subject, body, forum_status, queued_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.Locale, d.Xpath, d.Parent, d.Subject, d.Text, string(d.Status), time.Now())
	if err != nil {
		return 0, fmt.Errorf("queue draft: %w", err)
	}
	return res.LastInsertId()
}

// PendingDrafts returns queued drafts oldest-first.
func PendingDrafts(db *sql.DB) ([]*QueuedDraft, error) {
	rows, err := db.Query(`
		SELECT id, locale, xpath, parent, subject, body, forum_status, queued_at
		FROM outbox ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drafts []*QueuedDraft
	for rows.Next() {
		var q QueuedDraft
		var status string
		if err := rows.Scan(&q.ID, &q.Draft.Locale, &q.Draft.Xpath, &q.Draft.Parent,
			&q.Draft.Subject, &q.Draft.Text, &status, &q.QueuedAt); err != nil {
			return nil, err
		}
		q.Draft.Status = models.ForumStatus(status)
		drafts = append(drafts, &q)
	}
	return drafts, rows.Err()
}

// DeleteDraft removes a draft after successful submission.
func DeleteDraft(db *sql.DB, id int64) error {
	res, err := db.Exec(`DELETE FROM outbox WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("draft not found: %d", id)
	}
	return nil
}
