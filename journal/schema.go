package journal

const Schema = `
CREATE TABLE IF NOT EXISTS ticks (
	month INTEGER NOT NULL,
	cash REAL NOT NULL,
	debt REAL NOT NULL,
	deposit REAL NOT NULL,
	credit_score INTEGER NOT NULL,
	net_worth REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
	message_id TEXT PRIMARY KEY,
	month INTEGER NOT NULL,
	severity TEXT NOT NULL,
	text TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ticks_month ON ticks(month);
CREATE INDEX IF NOT EXISTS idx_messages_month ON messages(month);
`
