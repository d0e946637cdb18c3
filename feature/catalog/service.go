package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"catalog-reconciler/core/ingest"
	"catalog-reconciler/core/logger"
	"catalog-reconciler/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Opener resolves source locations to byte streams.
type Opener interface {
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

// SourceSpec names one input of a run.
type SourceSpec struct {
	// Location is passed to the Opener.
	Location string
	// Profile names a registered profile.
	Profile string
}

// Run is the explicit configuration of one reconciliation.
type Run struct {
	Master     SourceSpec
	Supplement SourceSpec
}

// Result is the outcome of a run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// Records is the deduplicated list: merged pairs, master-only, supplement-only.
	Records []reconcile.MergedRecord

	Summary reconcile.Summary

	// Fingerprint is the xxhash of the JSON export of Records.
	Fingerprint string

	Duration time.Duration
}

// Service runs the reconciliation pipeline: open, load, map, match, merge.
type Service struct {
	opener   Opener
	profiles *Registry
	matcher  *reconcile.Matcher
	logger   *zap.Logger
}

// NewService creates a new catalog service.
func NewService(opener Opener, profiles *Registry, logger *zap.Logger) *Service {
	return &Service{
		opener:   opener,
		profiles: profiles,
		matcher:  NewMatcher(),
		logger:   logger,
	}
}

// Reconcile loads both sources concurrently and reconciles them. Any load,
// format or mapping error aborts the run and no records are returned.
func (s *Service) Reconcile(ctx context.Context, run Run) (*Result, error) {
	started := time.Now()
	runID := uuid.NewString()
	log := logger.WithRun(s.logger, runID)

	masterProfile, err := s.profiles.Get(run.Master.Profile)
	if err != nil {
		return nil, fmt.Errorf("master: %w", err)
	}
	supplementProfile, err := s.profiles.Get(run.Supplement.Profile)
	if err != nil {
		return nil, fmt.Errorf("supplement: %w", err)
	}

	log.Info("Starting reconciliation",
		zap.String("master", run.Master.Location),
		zap.String("master_profile", masterProfile.Name),
		zap.String("supplement", run.Supplement.Location),
		zap.String("supplement_profile", supplementProfile.Name),
	)

	var masterRecs, supplementRecs []*reconcile.Record
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := s.loadSource(gctx, run.Master.Location, masterProfile)
		if err != nil {
			return fmt.Errorf("master: %w", err)
		}
		masterRecs = recs
		return nil
	})
	g.Go(func() error {
		recs, err := s.loadSource(gctx, run.Supplement.Location, supplementProfile)
		if err != nil {
			return fmt.Errorf("supplement: %w", err)
		}
		supplementRecs = recs
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error("Reconciliation failed", zap.Error(err))
		return nil, err
	}

	log.Info("Sources loaded",
		zap.Int("master_records", len(masterRecs)),
		zap.Int("supplement_records", len(supplementRecs)),
	)

	outcome, err := reconcile.Reconcile(
		reconcile.Input{
			Tag:     reconcile.SourceTag{Format: masterProfile.Format, Role: reconcile.RoleMaster},
			Records: masterRecs,
		},
		reconcile.Input{
			Tag:     reconcile.SourceTag{Format: supplementProfile.Format, Role: reconcile.RoleSupplement},
			Records: supplementRecs,
		},
		s.matcher,
	)
	if err != nil {
		return nil, err
	}

	fingerprint, err := Fingerprint(RecordsOf(outcome.Records))
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:       runID,
		Records:     outcome.Records,
		Summary:     outcome.Summary,
		Fingerprint: fingerprint,
		Duration:    time.Since(started),
	}

	log.Info("Reconciliation finished",
		zap.Int("records", len(result.Records)),
		zap.Int("matched", result.Summary.Matched),
		zap.Int("master_only", result.Summary.MasterOnly),
		zap.Int("supplement_only", result.Summary.SupplementOnly),
		zap.Any("matched_by", result.Summary.MatchedBy),
		zap.String("fingerprint", fingerprint),
		zap.Duration("duration", result.Duration),
	)

	return result, nil
}

// loadSource reads and maps every record of one source.
func (s *Service) loadSource(ctx context.Context, location string, profile Profile) ([]*reconcile.Record, error) {
	if location == "" {
		return nil, errors.New("no location given")
	}

	mapper, err := NewMapper(profile)
	if err != nil {
		return nil, err
	}

	rc, err := s.opener.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	reader, err := ingest.Load(rc, profile.LoaderOptions())
	if err != nil {
		return nil, err
	}

	var records []*reconcile.Record
	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := reader.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}

		rec, err := mapper.Map(raw, i)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// Load reads and maps a single source.
func (s *Service) Load(ctx context.Context, spec SourceSpec) ([]*reconcile.Record, error) {
	profile, err := s.profiles.Get(spec.Profile)
	if err != nil {
		return nil, err
	}
	return s.loadSource(ctx, spec.Location, profile)
}
