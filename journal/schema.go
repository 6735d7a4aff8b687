// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS rounds (
	round_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	direction TEXT NOT NULL,
	leverage INTEGER NOT NULL,
	stake REAL NOT NULL,
	take_profit REAL NOT NULL,
	stop_loss REAL NOT NULL,
	entry_price REAL NOT NULL,
	exit_price REAL NOT NULL,
	pnl_fraction REAL NOT NULL,
	pnl_amount REAL NOT NULL,
	outcome TEXT NOT NULL,
	ticks INTEGER NOT NULL,
	open_time DATETIME NOT NULL,
	close_time DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_rounds_close_time ON rounds(close_time);

CREATE TABLE IF NOT EXISTS ticks (
	round_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	price REAL NOT NULL,
	pnl_fraction REAL NOT NULL,
	pnl_amount REAL NOT NULL,
	remaining_seconds INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ticks_round ON ticks(round_id, time);
`
