// Package store persists board layouts to a relational database.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// MySQL and SQLite connections based on the application's configuration, plus a small
// repository for saving and loading board snapshots.
//
// # Connect
//
// The Connect function establishes a connection according to the configured driver.
// SQLite supports in-memory databases, which the tests rely on.
//
// # Persistence Model
//
// A board is stored as one BoardRecord plus one row per section and per item,
// each carrying its position. Saving replaces the previous rows in a single
// transaction; loading rebuilds an ordered snapshot from the positions.
//
// # Usage
//
//	db, err := store.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	repo := store.New(db)
//	err = repo.SaveBoard(ctx, boardID, name, snap)
package store
