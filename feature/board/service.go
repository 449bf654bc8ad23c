package board

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"listkit/core/archive"
	"listkit/core/diff"
	"listkit/core/reorder"
	"listkit/core/snapshot"
	"listkit/core/store"
	"listkit/feature/datasource"
)

var (
	// ErrUnknownBoard is returned when a board id does not exist.
	ErrUnknownBoard = errors.New("unknown board")
	// ErrStoreDisabled is returned when persistence is requested without a database.
	ErrStoreDisabled = errors.New("database persistence is not configured")
	// ErrArchiveDisabled is returned when an export is requested without object storage.
	ErrArchiveDisabled = errors.New("object storage archive is not configured")
)

// managed pairs a board's display name with its data source. The name is
// guarded by the service mutex; the source serializes itself.
type managed struct {
	name   string
	source *datasource.Source
}

// Service owns the in-memory boards and their backing stores.
type Service struct {
	logger *zap.Logger
	repo   *store.Store
	arc    *archive.Archive
	policy reorder.Policy

	mu     sync.RWMutex
	boards map[string]*managed
}

// NewService creates a board service. repo and arc are optional; passing nil
// disables database persistence and object storage exports respectively.
func NewService(logger *zap.Logger, repo *store.Store, arc *archive.Archive, policy reorder.Policy) *Service {
	return &Service{
		logger: logger,
		repo:   repo,
		arc:    arc,
		policy: policy,
		boards: make(map[string]*managed),
	}
}

// CreateBoard registers an empty board and returns its summary.
func (s *Service) CreateBoard(name string) BoardInfo {
	id := uuid.NewString()
	b := &managed{
		name: name,
		source: datasource.New(datasource.Config{
			Logger:  s.logger,
			Reorder: s.policy,
		}),
	}

	s.mu.Lock()
	s.boards[id] = b
	s.mu.Unlock()

	s.logger.Info("Board created", zap.String("board", id), zap.String("name", name))
	return s.info(id, name, b.source)
}

// ListBoards returns summaries of all boards, ordered by name.
func (s *Service) ListBoards() []BoardInfo {
	s.mu.RLock()
	infos := make([]BoardInfo, 0, len(s.boards))
	for id, b := range s.boards {
		infos = append(infos, s.info(id, b.name, b.source))
	}
	s.mu.RUnlock()

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Name != infos[j].Name {
			return infos[i].Name < infos[j].Name
		}
		return infos[i].ID < infos[j].ID
	})
	return infos
}

// DeleteBoard drops the board from memory along with its saved rows and its
// export, where those backends are configured.
func (s *Service) DeleteBoard(ctx context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.boards[id]
	delete(s.boards, id)
	s.mu.Unlock()
	if !ok {
		return ErrUnknownBoard
	}

	if s.repo != nil {
		if err := s.repo.DeleteBoard(ctx, id); err != nil {
			return err
		}
	}
	if s.arc != nil {
		if err := s.arc.Remove(ctx, id); err != nil {
			return err
		}
	}
	s.logger.Info("Board deleted", zap.String("board", id))
	return nil
}

// SavedBoards lists the board rows persisted in the database.
func (s *Service) SavedBoards(ctx context.Context) ([]SavedBoard, error) {
	if s.repo == nil {
		return nil, ErrStoreDisabled
	}
	records, err := s.repo.ListBoards(ctx)
	if err != nil {
		return nil, err
	}
	saved := make([]SavedBoard, 0, len(records))
	for _, rec := range records {
		saved = append(saved, SavedBoard{
			ID:        rec.ID,
			Name:      rec.Name,
			UpdatedAt: rec.UpdatedAt,
		})
	}
	return saved, nil
}

// Exports lists the board ids present in the archive bucket.
func (s *Service) Exports(ctx context.Context) ([]string, error) {
	if s.arc == nil {
		return nil, ErrArchiveDisabled
	}
	return s.arc.List(ctx)
}

// Layout returns the current layout of a board.
func (s *Service) Layout(id string) (*diff.Layout, error) {
	b, _, err := s.board(id)
	if err != nil {
		return nil, err
	}
	return b.source.Layout(), nil
}

// ApplyTarget diffs the board against a full target layout and adopts it.
func (s *Service) ApplyTarget(id string, target TargetLayout, animated bool) (*diff.Plan, error) {
	b, _, err := s.board(id)
	if err != nil {
		return nil, err
	}
	sections, items := targetToState(target)
	return b.source.ApplyInitial(sections, items, animated)
}

// Append adds rows at the end of a section.
func (s *Service) Append(id, section string, animated bool, items ...string) (*diff.Plan, error) {
	b, _, err := s.board(id)
	if err != nil {
		return nil, err
	}
	return b.source.Append(snapshot.SectionID(section), animated, itemIDs(items)...)
}

// Delete removes rows. Absent identifiers are ignored.
func (s *Service) Delete(id string, animated bool, items ...string) (*diff.Plan, error) {
	b, _, err := s.board(id)
	if err != nil {
		return nil, err
	}
	return b.source.Delete(animated, itemIDs(items)...)
}

// Move relocates a row to the end of another section.
func (s *Service) Move(id, item, section string, animated bool) (*diff.Plan, error) {
	b, _, err := s.board(id)
	if err != nil {
		return nil, err
	}
	return b.source.Move(snapshot.ItemID(item), snapshot.SectionID(section), animated)
}

// Shuffle randomizes the order of a section's rows.
func (s *Service) Shuffle(id, section string, animated bool) (*diff.Plan, error) {
	b, _, err := s.board(id)
	if err != nil {
		return nil, err
	}
	return b.source.Shuffle(snapshot.SectionID(section), animated)
}

// Reconfigure refreshes rows in place.
func (s *Service) Reconfigure(id string, animated bool, items ...string) (*diff.Plan, error) {
	b, _, err := s.board(id)
	if err != nil {
		return nil, err
	}
	return b.source.Reconfigure(animated, itemIDs(items)...)
}

// Reload recreates rows in place.
func (s *Service) Reload(id string, animated bool, items ...string) (*diff.Plan, error) {
	b, _, err := s.board(id)
	if err != nil {
		return nil, err
	}
	return b.source.Reload(animated, itemIDs(items)...)
}

// ProposeMove runs an interactive reorder proposal through the board's policy.
func (s *Service) ProposeMove(id string, from, to diff.Position) (bool, error) {
	b, _, err := s.board(id)
	if err != nil {
		return false, err
	}
	return b.source.ProposeMove(from, to)
}

// SaveBoard persists the board's current layout to the database.
func (s *Service) SaveBoard(ctx context.Context, id string) error {
	if s.repo == nil {
		return ErrStoreDisabled
	}
	b, name, err := s.board(id)
	if err != nil {
		return err
	}
	return s.repo.SaveBoard(ctx, id, name, b.source.Snapshot())
}

// LoadBoard restores a board's layout from the database, creating the board
// if it is not held in memory. It returns the plan for the restored layout.
func (s *Service) LoadBoard(ctx context.Context, id string) (*diff.Plan, error) {
	if s.repo == nil {
		return nil, ErrStoreDisabled
	}
	name, snap, err := s.repo.LoadBoard(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.adopt(id, name, snap)
}

// ExportBoard uploads the board's layout to object storage.
func (s *Service) ExportBoard(ctx context.Context, id string) error {
	if s.arc == nil {
		return ErrArchiveDisabled
	}
	b, name, err := s.board(id)
	if err != nil {
		return err
	}
	return s.arc.Export(ctx, id, name, b.source.Snapshot())
}

// ImportBoard restores a board's layout from object storage.
func (s *Service) ImportBoard(ctx context.Context, id string) (*diff.Plan, error) {
	if s.arc == nil {
		return nil, ErrArchiveDisabled
	}
	name, snap, err := s.arc.Import(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.adopt(id, name, snap)
}

// board resolves an id and snapshots the name while the lock is held; the
// name may be rewritten concurrently by adopt and must not be read after the
// lock is released.
func (s *Service) board(id string) (*managed, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.boards[id]
	if !ok {
		return nil, "", ErrUnknownBoard
	}
	return b, b.name, nil
}

// adopt applies a restored snapshot to the board, registering it first when
// it is not held in memory.
func (s *Service) adopt(id, name string, snap *snapshot.Snapshot) (*diff.Plan, error) {
	s.mu.Lock()
	b, ok := s.boards[id]
	if !ok {
		b = &managed{
			source: datasource.New(datasource.Config{
				Logger:  s.logger,
				Reorder: s.policy,
			}),
		}
		s.boards[id] = b
	}
	b.name = name
	s.mu.Unlock()

	return b.source.Apply(snap, false)
}

func (s *Service) info(id, name string, src *datasource.Source) BoardInfo {
	snap := src.Snapshot()
	return BoardInfo{
		ID:       id,
		Name:     name,
		Sections: snap.NumberOfSections(),
		Items:    snap.NumberOfItems(),
	}
}

func targetToState(target TargetLayout) ([]snapshot.SectionID, map[snapshot.SectionID][]snapshot.ItemID) {
	sections := make([]snapshot.SectionID, 0, len(target.Sections))
	items := make(map[snapshot.SectionID][]snapshot.ItemID, len(target.Sections))
	for _, sec := range target.Sections {
		sid := snapshot.SectionID(sec.ID)
		sections = append(sections, sid)
		items[sid] = itemIDs(sec.Items)
	}
	return sections, items
}

func itemIDs(items []string) []snapshot.ItemID {
	ids := make([]snapshot.ItemID, 0, len(items))
	for _, it := range items {
		ids = append(ids, snapshot.ItemID(it))
	}
	return ids
}
