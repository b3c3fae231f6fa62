package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/MarshallMM/GrimDarkRoster/internal/config"
	"github.com/MarshallMM/GrimDarkRoster/internal/parser"
	"github.com/MarshallMM/GrimDarkRoster/internal/reference"
	"github.com/MarshallMM/GrimDarkRoster/internal/store"
)

// LoadReference builds the lookup from the configured YAML tables and
// catalogue directory, in that order. Neither is required.
func LoadReference(cfg config.ReferenceConfig, log *zap.Logger) (*reference.Lookup, error) {
	var parts []*reference.Lookup

	if cfg.Dir != "" {
		l, err := reference.LoadDir(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("reference tables: %w", err)
		}
		parts = append(parts, l)
	}
	if cfg.Catalogues != "" {
		paths, err := reference.FindCatalogueFiles(cfg.Catalogues)
		if err != nil {
			return nil, fmt.Errorf("reference catalogues: %w", err)
		}
		l, err := reference.FromCatalogues(paths)
		if err != nil {
			return nil, fmt.Errorf("reference catalogues: %w", err)
		}
		parts = append(parts, l)
	}

	ref := reference.Merge(parts...)
	log.Info("reference loaded", zap.Int("records", ref.Len()))
	return ref, nil
}

// NewNormalizer wires the reference lookup, vocabulary and limits into a
// Normalizer.
func NewNormalizer(cfg *config.Config, ref *reference.Lookup, log *zap.Logger) (*parser.Normalizer, error) {
	opts := []parser.Option{
		parser.WithReference(ref),
		parser.WithDepthLimit(cfg.Limits.MaxDepth),
		parser.WithLogger(log.Named("parser")),
	}
	if cfg.Reference.VocabularyFile != "" {
		v, err := parser.LoadVocabulary(cfg.Reference.VocabularyFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, parser.WithVocabulary(v))
	}
	return parser.New(opts...), nil
}

// Open builds the full service from configuration. The returned store must
// be closed by the caller.
func Open(cfg *config.Config, log *zap.Logger) (*Service, *store.Store, error) {
	ref, err := LoadReference(cfg.Reference, log)
	if err != nil {
		return nil, nil, err
	}
	norm, err := NewNormalizer(cfg, ref, log)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(cfg.Store.Path, log.Named("store"))
	if err != nil {
		return nil, nil, err
	}
	return NewService(norm, st, cfg.Limits.MaxInputBytes, log), st, nil
}
