package db

// SchemaSQL is the authoritative schema. Tests load it via GetSchemaSQL()
// so test databases cannot drift from production.
const SchemaSQL = `
-- Audit trail for ticket and application lifecycle mutations
CREATE TABLE IF NOT EXISTS audit_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	actor_id TEXT NOT NULL,
	entity_type TEXT NOT NULL CHECK(entity_type IN ('ticket', 'application')),
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL,
	detail TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_audit_log_entity ON audit_log(entity_type, entity_id);
`

// GetSchemaSQL returns the schema DDL.
func GetSchemaSQL() string {
	return SchemaSQL
}
