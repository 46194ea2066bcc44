package report

// Schema DDL for the resolution report store. The store persists across
// builds, so creation is conditional.
const (
	createBuilds = `CREATE TABLE IF NOT EXISTS builds (
    build_id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,
    project_root TEXT NOT NULL,
    client INTEGER NOT NULL
);`

	createDecisions = `CREATE TABLE IF NOT EXISTS decisions (
    build_id TEXT NOT NULL,
    specifier TEXT NOT NULL,
    kind TEXT NOT NULL,
    path TEXT NOT NULL,
    PRIMARY KEY (build_id, specifier),
    FOREIGN KEY (build_id) REFERENCES builds(build_id) ON DELETE CASCADE
);`

	idxDecisionsBuild = `CREATE INDEX IF NOT EXISTS idx_decisions_build ON decisions(build_id);`
)

// schemaDDL lists all statements in dependency order.
var schemaDDL = []string{
	createBuilds,
	createDecisions,
	idxDecisionsBuild,
}
