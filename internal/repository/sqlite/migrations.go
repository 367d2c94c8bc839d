package sqlite

import "database/sql"

// Schema for all farm collections. Child tables reference flocks by id but
// deliberately carry no FOREIGN KEY constraints: snapshot restores must
// accept payloads with missing collections, and PruneOrphans is the
// reconciliation path for rows left behind by older tools. rowid keeps
// insertion order for list operations.
const schema = `
CREATE TABLE IF NOT EXISTS flocks (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    start_date TEXT NOT NULL,
    end_date TEXT NOT NULL DEFAULT '',
    total_birds INTEGER NOT NULL,
    status TEXT NOT NULL,
    notes TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS feed (
    id TEXT PRIMARY KEY,
    flock_id TEXT NOT NULL,
    bill_no TEXT NOT NULL UNIQUE,
    date TEXT NOT NULL,
    type TEXT NOT NULL,
    quantity REAL NOT NULL,
    rate REAL NOT NULL,
    total REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS medicine (
    id TEXT PRIMARY KEY,
    flock_id TEXT NOT NULL,
    date TEXT NOT NULL,
    name TEXT NOT NULL,
    quantity REAL NOT NULL,
    rate REAL NOT NULL,
    total REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    flock_id TEXT NOT NULL,
    date TEXT NOT NULL,
    name TEXT NOT NULL,
    quantity REAL NOT NULL,
    rate REAL NOT NULL,
    total REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS mortality (
    id TEXT PRIMARY KEY,
    flock_id TEXT NOT NULL,
    date TEXT NOT NULL,
    count INTEGER NOT NULL,
    remarks TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS sales (
    id TEXT PRIMARY KEY,
    flock_id TEXT NOT NULL,
    date TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    weight_kg REAL NOT NULL,
    rate REAL NOT NULL,
    total REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS gallery (
    id TEXT PRIMARY KEY,
    flock_id TEXT NOT NULL,
    image_data TEXT NOT NULL,
    date TEXT NOT NULL,
    caption TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS vaccines (
    id TEXT PRIMARY KEY,
    flock_id TEXT NOT NULL,
    name TEXT NOT NULL,
    scheduled_date TEXT NOT NULL,
    status TEXT NOT NULL,
    notes TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS settings (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    data TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS session (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    data TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_feed_flock_id ON feed(flock_id);
CREATE INDEX IF NOT EXISTS idx_medicine_flock_id ON medicine(flock_id);
CREATE INDEX IF NOT EXISTS idx_expenses_flock_id ON expenses(flock_id);
CREATE INDEX IF NOT EXISTS idx_mortality_flock_id ON mortality(flock_id);
CREATE INDEX IF NOT EXISTS idx_sales_flock_id ON sales(flock_id);
CREATE INDEX IF NOT EXISTS idx_gallery_flock_id ON gallery(flock_id);
CREATE INDEX IF NOT EXISTS idx_vaccines_flock_id ON vaccines(flock_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
