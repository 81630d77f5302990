package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"directory-backend/internal/domains/directory/model"
)

// =====================================================
// POSTGRES PROFILE SOURCE
// =====================================================

type postgresProfileRepository struct {
	pool  *pgxpool.Pool
	query string
}

// NewPostgresProfileRepository reads verified profiles from table.
// table may be schema-qualified ("public.profiles").
func NewPostgresProfileRepository(pool *pgxpool.Pool, table string) RemoteSource {
	return &postgresProfileRepository{
		pool:  pool,
		query: buildProfilesQuery(table),
	}
}

func buildProfilesQuery(table string) string {
	return fmt.Sprintf(`
		SELECT id, username, avatar_url, email_verified, created_at
		FROM %s
		WHERE email_verified = true
		ORDER BY created_at DESC, id
	`, quoteTable(table))
}

func quoteTable(table string) string {
	if table == "" {
		table = "profiles"
	}
	schema, name, ok := strings.Cut(table, ".")
	if !ok {
		return pq.QuoteIdentifier(table)
	}
	return pq.QuoteIdentifier(schema) + "." + pq.QuoteIdentifier(name)
}

// FetchAllProfiles never returns a partially scanned record: a scan error
// aborts the whole fetch.
func (r *postgresProfileRepository) FetchAllProfiles(ctx context.Context) ([]model.ProfileRecord, error) {
	if r.pool == nil {
		return nil, model.ErrRemoteUnavailable
	}

	rows, err := r.pool.Query(ctx, r.query)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]model.ProfileRecord, 0)
	for rows.Next() {
		var p model.ProfileRecord
		if err := rows.Scan(
			&p.ID,
			&p.Username,
			&p.AvatarURL,
			&p.EmailVerified,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}

	return profiles, nil
}

// =====================================================
// UNAVAILABLE REMOTE
// =====================================================

type unavailableRemote struct{}

// NewUnavailableRemote is used when no database is configured or reachable.
// Every fetch reports ErrRemoteUnavailable so the fallback path is taken.
func NewUnavailableRemote() RemoteSource {
	return unavailableRemote{}
}

func (unavailableRemote) FetchAllProfiles(ctx context.Context) ([]model.ProfileRecord, error) {
	return nil, model.ErrRemoteUnavailable
}
