package store

const schema = `
CREATE TABLE IF NOT EXISTS environments (
    name TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL,
    last_used_at TIMESTAMP,
    usage_count INTEGER NOT NULL DEFAULT 0,
    python_version TEXT NOT NULL DEFAULT '',
    size_bytes INTEGER NOT NULL DEFAULT 0,
    package_count INTEGER NOT NULL DEFAULT 0,
    tags TEXT NOT NULL DEFAULT '[]',
    description TEXT NOT NULL DEFAULT '',
    tracked_packages TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_environments_last_used ON environments(last_used_at);
CREATE INDEX IF NOT EXISTS idx_environments_usage_count ON environments(usage_count);
`
