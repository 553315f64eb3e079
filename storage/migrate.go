package storage

import (
	"database/sql"
	"fmt"
)

// migrate runs the queries in wanted that have not been registered yet.
// Registered migrations are never changed, new ones are appended.
func migrate(db *sql.DB, wanted []string, createTable, register string) error {
	if _, err := db.Exec(createTable); err != nil {
		return err
	}

	// find existing
	rows, err := db.Query(`SELECT query FROM migration ORDER BY id`)
	if err != nil {
		return err
	}

	existing := []string{}
	for rows.Next() {
		var query string
		if err := rows.Scan(&query); err != nil {
			rows.Close()
			return err
		}
		existing = append(existing, query)
	}
	rows.Close()

	// compare
	missing, err := compareMigrations(wanted, existing)
	if err != nil {
		return err
	}

	// execute missing
	for _, query := range missing {
		if _, err := db.Exec(query); err != nil {
			return err
		}

		// register
		if _, err := db.Exec(register, query); err != nil {
			return err
		}
	}

	return nil
}

func compareMigrations(wanted, existing []string) ([]string, error) {
	needed := []string{}
	if len(wanted) < len(existing) {
		return []string{}, fmt.Errorf("not enough migrations")
	}

	for i, want := range wanted {
		switch {
		case i >= len(existing):
			needed = append(needed, want)
		case want == existing[i]:
			// do nothing
		case want != existing[i]:
			return []string{}, fmt.Errorf("incompatible migration: %v", want)
		}
	}

	return needed, nil
}
