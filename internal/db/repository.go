package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"prosescan/internal/corpus"
)

var ErrNoLexicon = errors.New("lexicon version not found")

// VersionInfo describes one stored lexicon version.
type VersionInfo struct {
	Version   string
	CreatedAt time.Time
	Terms     int
}

// SaveLexicon stores lex under its version, replacing any earlier copy of
// the same version.
func SaveLexicon(dbPath string, lex corpus.Lexicon) error {
	if lex.Version() == "" {
		return fmt.Errorf("save lexicon: empty version")
	}
	conn, err := Open(dbPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// created_at is unix nanoseconds, kept strictly increasing so the latest
	// save always sorts first.
	var last int64
	if err := tx.QueryRow(`SELECT COALESCE(MAX(created_at), 0) FROM lexicon_versions`).Scan(&last); err != nil {
		return fmt.Errorf("scan last save: %w", err)
	}
	created := time.Now().UnixNano()
	if created <= last {
		created = last + 1
	}

	if _, err := tx.Exec(`DELETE FROM lexicon_terms WHERE version = ?`, lex.Version()); err != nil {
		return fmt.Errorf("clear lexicon terms: %w", err)
	}
	if _, err := tx.Exec(
		`INSERT INTO lexicon_versions(version, created_at) VALUES(?, ?)
		 ON CONFLICT(version) DO UPDATE SET created_at = excluded.created_at`,
		lex.Version(),
		created,
	); err != nil {
		return fmt.Errorf("insert lexicon version: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO lexicon_terms(version, category, term, position) VALUES(?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare term insert: %w", err)
	}
	defer stmt.Close()
	for _, cat := range lex.CategoryNames() {
		for i, term := range lex.Terms(cat) {
			if _, err := stmt.Exec(lex.Version(), string(cat), term, i); err != nil {
				return fmt.Errorf("insert term: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// LoadLexicon reads a stored lexicon. An empty version loads the most
// recently saved one.
func LoadLexicon(dbPath, version string) (corpus.Lexicon, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return corpus.Lexicon{}, err
	}
	defer conn.Close()

	if version == "" {
		row := conn.QueryRow(`SELECT version FROM lexicon_versions ORDER BY created_at DESC, version DESC LIMIT 1`)
		if err := row.Scan(&version); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return corpus.Lexicon{}, ErrNoLexicon
			}
			return corpus.Lexicon{}, fmt.Errorf("scan latest version: %w", err)
		}
	} else {
		var found int
		if err := conn.QueryRow(`SELECT COUNT(*) FROM lexicon_versions WHERE version = ?`, version).Scan(&found); err != nil {
			return corpus.Lexicon{}, fmt.Errorf("scan version: %w", err)
		}
		if found == 0 {
			return corpus.Lexicon{}, fmt.Errorf("%s: %w", version, ErrNoLexicon)
		}
	}

	rows, err := conn.Query(`SELECT category, term FROM lexicon_terms WHERE version = ? ORDER BY category, position`, version)
	if err != nil {
		return corpus.Lexicon{}, fmt.Errorf("query terms: %w", err)
	}
	defer rows.Close()

	entries := map[corpus.Category][]string{}
	for rows.Next() {
		var cat, term string
		if err := rows.Scan(&cat, &term); err != nil {
			return corpus.Lexicon{}, fmt.Errorf("scan term: %w", err)
		}
		entries[corpus.Category(cat)] = append(entries[corpus.Category(cat)], term)
	}
	if err := rows.Err(); err != nil {
		return corpus.Lexicon{}, fmt.Errorf("iterate terms: %w", err)
	}
	return corpus.New(version, entries), nil
}

func ListVersions(dbPath string) ([]VersionInfo, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.Query(`
SELECT v.version, v.created_at, COUNT(t.id)
FROM lexicon_versions v
LEFT JOIN lexicon_terms t ON t.version = v.version
GROUP BY v.version, v.created_at
ORDER BY v.created_at DESC, v.version DESC`)
	if err != nil {
		return nil, fmt.Errorf("query versions: %w", err)
	}
	defer rows.Close()

	var out []VersionInfo
	for rows.Next() {
		var info VersionInfo
		var created int64
		if err := rows.Scan(&info.Version, &created, &info.Terms); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		info.CreatedAt = time.Unix(0, created).UTC()
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate versions: %w", err)
	}
	return out, nil
}

func CountRows(dbPath, table string) (int, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer conn.Close()
	return countRowsConn(conn, table)
}

func countRowsConn(conn *sql.DB, table string) (int, error) {
	row := conn.QueryRow(`SELECT COUNT(*) FROM ` + table)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan count: %w", err)
	}
	return count, nil
}
