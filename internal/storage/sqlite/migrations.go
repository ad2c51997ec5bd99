package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// IMPORTANT: homes must be created BEFORE users due to the home_id
// foreign key.
const schema = `
CREATE TABLE IF NOT EXISTS homes (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    description TEXT,
    leader_username TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    full_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    is_active INTEGER NOT NULL DEFAULT 1,
    home_id TEXT,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (home_id) REFERENCES homes(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS ledger_entries (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL,
    home_id TEXT,
    kind TEXT NOT NULL DEFAULT 'purchase'
        CHECK (kind IN ('purchase', 'transfer_out', 'transfer_in')),
    product TEXT NOT NULL,
    amount REAL NOT NULL,
    description TEXT,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (username) REFERENCES users(username) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS transfers (
    id TEXT PRIMARY KEY,
    sender_username TEXT NOT NULL,
    recipient_username TEXT NOT NULL,
    home_id TEXT NOT NULL,
    amount REAL NOT NULL,
    description TEXT,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (sender_username) REFERENCES users(username),
    FOREIGN KEY (recipient_username) REFERENCES users(username)
);

CREATE TABLE IF NOT EXISTS join_requests (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL,
    home_id TEXT NOT NULL,
    home_name TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending'
        CHECK (status IN ('pending', 'approved', 'rejected')),
    created_at INTEGER NOT NULL,
    processed_at INTEGER,
    FOREIGN KEY (username) REFERENCES users(username) ON DELETE CASCADE,
    FOREIGN KEY (home_id) REFERENCES homes(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_users_home_id ON users(home_id);
CREATE INDEX IF NOT EXISTS idx_entries_username ON ledger_entries(username);
CREATE INDEX IF NOT EXISTS idx_entries_home_id ON ledger_entries(home_id);
CREATE INDEX IF NOT EXISTS idx_entries_created_at ON ledger_entries(created_at);
CREATE INDEX IF NOT EXISTS idx_transfers_sender ON transfers(sender_username);
CREATE INDEX IF NOT EXISTS idx_transfers_recipient ON transfers(recipient_username);
CREATE INDEX IF NOT EXISTS idx_join_requests_home_id ON join_requests(home_id);
-- At most one pending request per user.
CREATE UNIQUE INDEX IF NOT EXISTS idx_join_requests_one_pending
    ON join_requests(username) WHERE status = 'pending';
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
