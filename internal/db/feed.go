// ABOUTME: Feed cache database operations
// ABOUTME: Save/load of the last fetched post batch per locale

package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/perlover/cldrforum/internal/models"
)

// SaveFeed replaces the cached batch for a locale with the given posts, in
// feed order.
func SaveFeed(db *sql.DB, fetchedLocale string, posts []*models.Post) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM feed WHERE fetched_locale = ?`, fetchedLocale); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO feed (fetched_locale, position, id, parent, locale, xpath,
			subject, body, date_millis, poster_json, forum_status, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range posts {
		var poster sql.NullString
		if p.PosterInfo != nil {
			data, err := json.Marshal(p.PosterInfo)
			if err != nil {
				return fmt.Errorf("encode poster for post %d: %w", p.ID, err)
			}
			poster = sql.NullString{String: string(data), Valid: true}
		}
		if _, err := stmt.Exec(fetchedLocale, i, p.ID, p.Parent, p.Locale, p.Xpath,
			p.Subject, p.Text, p.DateMillis, poster, string(p.ForumStatus), p.Version); err != nil {
			return fmt.Errorf("cache post %d: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// LoadFeed returns the cached batch for a locale in feed order, or an empty
// slice when nothing is cached.
func LoadFeed(db *sql.DB, fetchedLocale string) ([]*models.Post, error) {
	rows, err := db.Query(`
		SELECT id, parent, locale, xpath, subject, body, date_millis,
			poster_json, forum_status, version
		FROM feed WHERE fetched_locale = ? ORDER BY position ASC`, fetchedLocale)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		var p models.Post
		var poster sql.NullString
		var status string
		if err := rows.Scan(&p.ID, &p.Parent, &p.Locale, &p.Xpath, &p.Subject,
			&p.Text, &p.DateMillis, &poster, &status, &p.Version); err != nil {
			return nil, err
		}
		p.ForumStatus = models.ForumStatus(status)
		if poster.Valid {
			var info models.PosterInfo
			if err := json.Unmarshal([]byte(poster.String), &info); err != nil {
				return nil, fmt.Errorf("decode poster for post %d: %w", p.ID, err)
			}
			p.PosterInfo = &info
		}
		posts = append(posts, &p)
	}
	return posts, rows.Err()
}

// ClearFeed drops the cached batch for a locale. Called on locale switch so
// a stale cross-locale cache can never feed a rebuild.
func ClearFeed(db *sql.DB, fetchedLocale string) error {
	_, err := db.Exec(`DELETE FROM feed WHERE fetched_locale = ?`, fetchedLocale)
	return err
}
