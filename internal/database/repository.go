package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-gigradar-automation/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// IMPORTANT: Supabase connection pooler (PgBouncer in Transaction mode)
	// does not support prepared statements easily. We MUST disable the statement cache.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Ping to ensure connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// ---------------- GIG OPERATIONS ----------------

// FindGigByExternalID returns the stored gig for an external post ID, or
// nil when no row exists.
func (r *Repository) FindGigByExternalID(ctx context.Context, externalID string) (*models.Gig, error) {
	var gig models.Gig
	query := `
		SELECT external_id, text, author_handle, author_name, verified, followers,
		       source_url, likes, reshares, replies, external_links, score,
		       category, reasons, posted_at, first_seen_at
		FROM gigs WHERE external_id = $1`

	err := r.db.QueryRow(ctx, query, externalID).Scan(
		&gig.ExternalID, &gig.Text, &gig.AuthorHandle, &gig.AuthorName,
		&gig.Verified, &gig.Followers, &gig.SourceURL,
		&gig.Likes, &gig.Reshares, &gig.Replies, &gig.ExternalLinks,
		&gig.Score, &gig.Category, &gig.Reasons, &gig.PostedAt, &gig.FirstSeenAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find gig: %w", err)
	}
	return &gig, nil
}

// InsertGigIfAbsent inserts a gig keyed on external_id. Returns false when
// the row already exists; an existing row is never overwritten, so the
// first score and first_seen_at stay intact across rescans.
func (r *Repository) InsertGigIfAbsent(ctx context.Context, gig *models.Gig) (bool, error) {
	query := `
		INSERT INTO gigs (external_id, text, author_handle, author_name, verified,
		                  followers, source_url, likes, reshares, replies,
		                  external_links, score, category, reasons, posted_at, first_seen_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (external_id) DO NOTHING`

	tag, err := r.db.Exec(ctx, query,
		gig.ExternalID, gig.Text, gig.AuthorHandle, gig.AuthorName, gig.Verified,
		gig.Followers, gig.SourceURL, gig.Likes, gig.Reshares, gig.Replies,
		gig.ExternalLinks, gig.Score, gig.Category, gig.Reasons, gig.PostedAt, gig.FirstSeenAt,
	)
	if err != nil {
		// A conflicting concurrent writer is a duplicate, not a failure
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert gig: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ---------------- SUBSCRIBER OPERATIONS ----------------

// ListEligibleSubscribers returns every premium user with a Telegram chat
// configured. Expiry is re-checked by the notifier at send time.
func (r *Repository) ListEligibleSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, telegram_chat_id, is_premium, premium_until, alert_threshold
		FROM users
		WHERE is_premium = true AND telegram_chat_id IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscribers: %w", err)
	}
	defer rows.Close()

	var subs []models.Subscriber
	for rows.Next() {
		var s models.Subscriber
		if err := rows.Scan(&s.ExternalID, &s.TelegramChatID, &s.Premium, &s.PremiumUntil, &s.AlertThreshold); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
