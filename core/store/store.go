package store

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"listkit/core/snapshot"
)

// BoardRecord is the persisted head row of a board.
type BoardRecord struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SectionRecord is one persisted section of a board, ordered by Position.
type SectionRecord struct {
	ID         uint   `gorm:"primaryKey"`
	BoardID    string `gorm:"index;size:36"`
	Identifier string `gorm:"size:255"`
	Position   int
}

// ItemRecord is one persisted row of a board, ordered by Position within its section.
type ItemRecord struct {
	ID         uint   `gorm:"primaryKey"`
	BoardID    string `gorm:"index;size:36"`
	Section    string `gorm:"size:255"`
	Identifier string `gorm:"size:255"`
	Position   int
}

func (BoardRecord) TableName() string   { return "boards" }
func (SectionRecord) TableName() string { return "board_sections" }
func (ItemRecord) TableName() string    { return "board_items" }

// Connect establishes a connection according to the configured driver.
// It returns a *gorm.DB connection or an error if the connection fails.
// This is an optional connection, so callers should handle the error gracefully.
func Connect(cfg Config) (*gorm.DB, error) {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	// Suppress GORM logging for cleaner optional warnings in main logger
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.Name)
	case "mysql", "":
		// Special characters in the password must be URL encoded for the DSN.
		userInfo := url.UserPassword(cfg.User, cfg.Password).String()
		dsn := fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
			userInfo, cfg.Host, cfg.Port, cfg.Name, timeout, timeout, timeout)
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Set connection pool settings to avoid typical issues. SQLite keeps a
	// single connection; an in-memory database exists per connection.
	if cfg.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Verify connection with context timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Store is a repository for board snapshots.
type Store struct {
	db *gorm.DB
}

// New creates a Store on top of an established connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the board tables.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&BoardRecord{}, &SectionRecord{}, &ItemRecord{})
}

// SaveBoard persists the snapshot under the given board id, replacing any
// previously saved layout in a single transaction.
func (s *Store) SaveBoard(ctx context.Context, id, name string, snap *snapshot.Snapshot) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		board := BoardRecord{ID: id, Name: name}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&board).Error; err != nil {
			return fmt.Errorf("failed to save board: %w", err)
		}

		if err := tx.Where("board_id = ?", id).Delete(&SectionRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear sections: %w", err)
		}
		if err := tx.Where("board_id = ?", id).Delete(&ItemRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear items: %w", err)
		}

		for si, sec := range snap.SectionIdentifiers() {
			rec := SectionRecord{BoardID: id, Identifier: string(sec), Position: si}
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("failed to save section: %w", err)
			}

			items, err := snap.ItemIdentifiers(sec)
			if err != nil {
				return err
			}
			for ii, it := range items {
				row := ItemRecord{BoardID: id, Section: string(sec), Identifier: string(it), Position: ii}
				if err := tx.Create(&row).Error; err != nil {
					return fmt.Errorf("failed to save item: %w", err)
				}
			}
		}

		return nil
	})
}

// LoadBoard rebuilds the saved snapshot of a board. The returned error wraps
// gorm.ErrRecordNotFound when the board does not exist.
func (s *Store) LoadBoard(ctx context.Context, id string) (string, *snapshot.Snapshot, error) {
	var board BoardRecord
	if err := s.db.WithContext(ctx).First(&board, "id = ?", id).Error; err != nil {
		return "", nil, fmt.Errorf("failed to load board: %w", err)
	}

	var sections []SectionRecord
	if err := s.db.WithContext(ctx).
		Where("board_id = ?", id).
		Order("position asc").
		Find(&sections).Error; err != nil {
		return "", nil, fmt.Errorf("failed to load sections: %w", err)
	}

	var items []ItemRecord
	if err := s.db.WithContext(ctx).
		Where("board_id = ?", id).
		Order("position asc").
		Find(&items).Error; err != nil {
		return "", nil, fmt.Errorf("failed to load items: %w", err)
	}

	snap := snapshot.New()
	for _, sec := range sections {
		if err := snap.AppendSections(snapshot.SectionID(sec.Identifier)); err != nil {
			return "", nil, err
		}
	}
	for _, it := range items {
		if err := snap.AppendItems(snapshot.SectionID(it.Section), snapshot.ItemID(it.Identifier)); err != nil {
			return "", nil, err
		}
	}

	return board.Name, snap, nil
}

// ListBoards returns all saved board head rows, most recently updated first.
func (s *Store) ListBoards(ctx context.Context) ([]BoardRecord, error) {
	var boards []BoardRecord
	if err := s.db.WithContext(ctx).Order("updated_at desc").Find(&boards).Error; err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

// DeleteBoard removes a board and all its rows.
func (s *Store) DeleteBoard(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", id).Delete(&ItemRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete items: %w", err)
		}
		if err := tx.Where("board_id = ?", id).Delete(&SectionRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete sections: %w", err)
		}
		if err := tx.Delete(&BoardRecord{ID: id}).Error; err != nil {
			return fmt.Errorf("failed to delete board: %w", err)
		}
		return nil
	})
}
