// Package app is the edge between the roster pipeline and the outside: it
// reads import files, runs normalization and keeps the stored roster in step.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/MarshallMM/GrimDarkRoster/internal/bsdata"
	"github.com/MarshallMM/GrimDarkRoster/internal/parser"
	"github.com/MarshallMM/GrimDarkRoster/internal/store"
)

// ErrNoRoster is returned when nothing has been imported yet.
var ErrNoRoster = errors.New("no roster imported")

// RosterStore is the persistence the service needs.
type RosterStore interface {
	SaveRoster(ctx context.Context, r *parser.Roster) error
	LoadRoster(ctx context.Context) (*parser.Roster, error)
	ClearRoster(ctx context.Context) error
}

// Service serializes imports and clears so a save never interleaves with
// another mutation of the stored roster.
type Service struct {
	mu       sync.Mutex
	norm     *parser.Normalizer
	store    RosterStore
	maxBytes int64
	log      *zap.Logger
}

func NewService(norm *parser.Normalizer, st RosterStore, maxBytes int64, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{norm: norm, store: st, maxBytes: maxBytes, log: log}
}

// Import reads the export at path, normalizes it and replaces the stored
// roster. On any failure the stored roster is left as it was.
func (s *Service) Import(ctx context.Context, path string) (*parser.Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	defer f.Close()

	return s.ImportReader(ctx, f)
}

// ImportReader is Import for an already open source. The whole input is read,
// up to the size cap, before decoding starts.
func (s *Service) ImportReader(ctx context.Context, r io.Reader) (*parser.Roster, error) {
	doc, err := bsdata.Decode(r, s.maxBytes)
	if err != nil {
		if errors.Is(err, bsdata.ErrTooLarge) {
			return nil, fmt.Errorf("import: %w", err)
		}
		return nil, fmt.Errorf("import: %w: %v", parser.ErrMalformedInput, err)
	}

	roster, err := s.norm.Normalize(doc)
	if err != nil {
		s.log.Warn("import rejected", zap.Error(err))
		return nil, fmt.Errorf("import: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.store.SaveRoster(ctx, roster); err != nil {
		return nil, fmt.Errorf("import: save: %w", err)
	}

	s.log.Info("roster imported",
		zap.String("name", roster.Meta.Name),
		zap.String("faction", roster.Meta.Faction),
		zap.Int("units", len(roster.Units)),
		zap.Int("points", roster.Meta.PointsUsed),
	)
	return roster, nil
}

// Current returns the stored roster, or ErrNoRoster.
func (s *Service) Current(ctx context.Context) (*parser.Roster, error) {
	r, err := s.store.LoadRoster(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoRoster
	}
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	return r, nil
}

// Clear deletes the stored roster.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ClearRoster(ctx); err != nil {
		return fmt.Errorf("clear roster: %w", err)
	}
	s.log.Info("roster cleared")
	return nil
}
