package database

// schemas maps database names to their embedded schema definitions.
// Statements use IF NOT EXISTS so Migrate can run on every startup.
var schemas = map[string]string{
	"assessments": assessmentsSchema,
	"client_data": clientDataSchema,
}

// assessmentsSchema holds completed risk assessments. Profiles themselves are
// static in-process tables; only the per-user assessment result is persisted.
const assessmentsSchema = `
CREATE TABLE IF NOT EXISTS assessments (
    id                   TEXT PRIMARY KEY,
    first_name           TEXT NOT NULL DEFAULT '',
    last_name            TEXT NOT NULL DEFAULT '',
    score                INTEGER NOT NULL,
    level                TEXT NOT NULL,
    trading_strategy     TEXT NOT NULL DEFAULT 'Conservative',
    automated_trading    INTEGER NOT NULL DEFAULT 0,
    max_daily_trades     INTEGER NOT NULL DEFAULT 3,
    stop_loss_percentage REAL NOT NULL DEFAULT 5.0,
    answers              TEXT NOT NULL,
    created_at           INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_assessments_created ON assessments(created_at);
`

// clientDataSchema caches external API responses as msgpack blobs with
// expiration timestamps for cache-first behavior.
const clientDataSchema = `
CREATE TABLE IF NOT EXISTS quotes (
    symbol     TEXT PRIMARY KEY,
    data       BLOB NOT NULL,
    expires_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS daily_series (
    symbol     TEXT PRIMARY KEY,
    data       BLOB NOT NULL,
    expires_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_quotes_expires ON quotes(expires_at);
CREATE INDEX IF NOT EXISTS idx_daily_series_expires ON daily_series(expires_at);
`
