package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Put inserts or replaces an environment record.
func (s *Store) Put(env *Environment) error {
	tagsJSON, err := json.Marshal(emptyIfNil(env.Tags))
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}
	trackedJSON, err := json.Marshal(emptyIfNil(env.TrackedPackages))
	if err != nil {
		return fmt.Errorf("failed to marshal tracked packages: %w", err)
	}

	var lastUsed sql.NullString
	if env.LastUsedAt != nil {
		lastUsed = sql.NullString{String: env.LastUsedAt.Format(time.RFC3339), Valid: true}
	}

	query := `
		INSERT OR REPLACE INTO environments
		(name, created_at, last_used_at, usage_count, python_version, size_bytes, package_count, tags, description, tracked_packages)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.Exec(query,
		env.Name,
		env.CreatedAt.Format(time.RFC3339),
		lastUsed,
		env.UsageCount,
		env.PythonVersion,
		env.SizeBytes,
		env.PackageCount,
		string(tagsJSON),
		env.Description,
		string(trackedJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to put environment %s: %w", env.Name, err)
	}

	return nil
}

// Get retrieves an environment record by name.
// Returns ErrNotFound if no record exists.
func (s *Store) Get(name string) (*Environment, error) {
	query := `
		SELECT name, created_at, last_used_at, usage_count, python_version, size_bytes, package_count, tags, description, tracked_packages
		FROM environments
		WHERE name = ?
	`

	env, err := scanEnvironment(s.db.QueryRow(query, name))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("environment %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get environment %s: %w", name, err)
	}

	return env, nil
}

// List returns all environment records in unspecified order; callers sort.
func (s *Store) List() ([]*Environment, error) {
	query := `
		SELECT name, created_at, last_used_at, usage_count, python_version, size_bytes, package_count, tags, description, tracked_packages
		FROM environments
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list environments: %w", err)
	}
	defer rows.Close()

	var envs []*Environment
	for rows.Next() {
		env, err := scanEnvironment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan environment row: %w", err)
		}
		envs = append(envs, env)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating environments: %w", err)
	}

	return envs, nil
}

// Delete removes an environment record.
// Returns ErrNotFound if no record exists.
func (s *Store) Delete(name string) error {
	result, err := s.db.Exec(`DELETE FROM environments WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete environment %s: %w", name, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("environment %s: %w", name, ErrNotFound)
	}

	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanEnvironment.
type scanner interface {
	Scan(dest ...any) error
}

func scanEnvironment(row scanner) (*Environment, error) {
	var env Environment
	var createdAt string
	var lastUsed sql.NullString
	var tagsJSON, trackedJSON string

	err := row.Scan(
		&env.Name,
		&createdAt,
		&lastUsed,
		&env.UsageCount,
		&env.PythonVersion,
		&env.SizeBytes,
		&env.PackageCount,
		&tagsJSON,
		&env.Description,
		&trackedJSON,
	)
	if err != nil {
		return nil, err
	}

	env.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for %s: %w", env.Name, err)
	}

	if lastUsed.Valid {
		t, err := time.Parse(time.RFC3339, lastUsed.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse last_used_at for %s: %w", env.Name, err)
		}
		env.LastUsedAt = &t
	}

	if err := json.Unmarshal([]byte(tagsJSON), &env.Tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags for %s: %w", env.Name, err)
	}
	if err := json.Unmarshal([]byte(trackedJSON), &env.TrackedPackages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tracked packages for %s: %w", env.Name, err)
	}

	return &env, nil
}

// emptyIfNil keeps nil slices encoding as "[]" instead of "null".
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
