package database

// schemaFor returns the DDL for a dialect. Deleting a project removes its
// tasks through ON DELETE CASCADE, so the cascade is atomic with the delete.
func schemaFor(d Dialect) string {
	if d == MySQL {
		return mysqlSchema
	}
	return defaultSchema
}

// defaultSchema is shared by postgres and sqlite.
const defaultSchema = `
CREATE TABLE IF NOT EXISTS users (
    username TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL,
    birthday DATE,
    create_time TIMESTAMP NOT NULL,
    last_login TIMESTAMP
);

CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    deadline TIMESTAMP NOT NULL,
    priority TEXT NOT NULL,
    completed BOOLEAN NOT NULL DEFAULT FALSE,
    project_id TEXT NOT NULL REFERENCES projects (id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_tasks_project_id ON tasks (project_id);
`

const mysqlSchema = `
CREATE TABLE IF NOT EXISTS users (
    username VARCHAR(191) PRIMARY KEY,
    password_hash VARCHAR(255) NOT NULL,
    birthday DATE NULL,
    create_time DATETIME NOT NULL,
    last_login DATETIME NULL
);

CREATE TABLE IF NOT EXISTS projects (
    id VARCHAR(64) PRIMARY KEY,
    name VARCHAR(255) NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
    id VARCHAR(64) PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    description TEXT NOT NULL,
    deadline DATETIME NOT NULL,
    priority VARCHAR(16) NOT NULL,
    completed BOOLEAN NOT NULL DEFAULT FALSE,
    project_id VARCHAR(64) NOT NULL,
    INDEX idx_tasks_project_id (project_id),
    CONSTRAINT fk_tasks_project FOREIGN KEY (project_id)
        REFERENCES projects (id) ON DELETE CASCADE
);
`
