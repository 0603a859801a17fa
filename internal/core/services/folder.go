package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
	"github.com/custodia-labs/reqdiff/internal/core/ports/driven"
	"github.com/custodia-labs/reqdiff/internal/core/ports/driving"
	"github.com/custodia-labs/reqdiff/internal/logger"
)

// Ensure FolderService implements the interface.
var _ driving.FolderService = (*FolderService)(nil)

// FolderService compares two directory trees of documents.
type FolderService struct {
	connectors driven.ConnectorFactory
	documents  driving.DocumentService
	matching   domain.MatchingSettings
}

// NewFolderService creates a new folder service.
func NewFolderService(
	connectors driven.ConnectorFactory,
	documents driving.DocumentService,
	matching domain.MatchingSettings,
) *FolderService {
	return &FolderService{
		connectors: connectors,
		documents:  documents,
		matching:   matching,
	}
}

// MatchFiles discovers documents under both roots and pairs them without
// parsing. A nil threshold uses the configured one.
func (s *FolderService) MatchFiles(ctx context.Context, rootA, rootB string, threshold *float64) (*domain.FolderComparisonResult, error) {
	result, err := s.match(ctx, rootA, rootB, threshold)
	if err != nil {
		return nil, err
	}
	aggregate(result)
	result.FinishedAt = time.Now()
	return result, nil
}

// CompareFolders matches the two trees, then parses and compares every
// pair on the pool. Added and deleted files are parsed for their
// requirement counts. Cancellation is checked between submissions; a
// cancelled run returns what finished, with Cancelled set, and ctx.Err().
// A task that fails while the run is still live (its own deadline, a
// panic) is recorded as an error on its pair or file.
func (s *FolderService) CompareFolders(ctx context.Context, rootA, rootB string, opts driving.FolderOptions) (*domain.FolderComparisonResult, error) {
	if s.documents == nil {
		return nil, domain.ErrNotImplemented
	}

	result, err := s.match(ctx, rootA, rootB, opts.Threshold)
	if err != nil {
		return nil, err
	}

	logger.Section("folder comparison " + result.RunID)

	pool := opts.Pool
	if pool == nil {
		pool = inlinePool{}
	}

	type job struct {
		label string
		task  driven.Task
		fail  func(error)
	}

	pairs := make([]*domain.PairResult, len(result.Matches))
	jobs := make([]job, 0, len(result.Matches)+len(result.Added)+len(result.Deleted))
	for i, m := range result.Matches {
		jobs = append(jobs, job{
			label: m.File1.RelativePath + " <-> " + m.File2.RelativePath,
			task: func(ctx context.Context) error {
				pr, err := s.comparePair(ctx, m)
				pairs[i] = pr
				return err
			},
			fail: func(err error) {
				pairs[i] = failedPair(m, err)
			},
		})
	}
	for _, files := range [][]domain.FileSummary{result.Deleted, result.Added} {
		for i := range files {
			summary := &files[i]
			jobs = append(jobs, job{
				label: summary.File.RelativePath,
				task: func(ctx context.Context) error {
					return s.countRequirements(ctx, summary)
				},
				fail: func(err error) {
					logger.Warn("count requirements in %s: %v", summary.File.RelativePath, err)
					summary.Requirements = 0
					summary.Err = err.Error()
				},
			})
		}
	}

	futures := make([]driven.Future, 0, len(jobs))
	for _, j := range jobs {
		if ctx.Err() != nil {
			break
		}
		futures = append(futures, pool.Submit(ctx, j.task))
	}

	finished := 0
	for i, f := range futures {
		if err := f.Wait(); err != nil {
			if ctx.Err() != nil {
				logger.Debug("%s: %v", jobs[i].label, err)
				continue
			}
			jobs[i].fail(err)
		}
		finished++
		if opts.Progress != nil {
			opts.Progress(finished, len(jobs), jobs[i].label)
		}
	}

	for _, pr := range pairs {
		if pr == nil {
			continue
		}
		result.Pairs = append(result.Pairs, *pr)
		if pr.Err != nil {
			result.Errors = append(result.Errors, *pr.Err)
		}
	}

	aggregate(result)
	result.FinishedAt = time.Now()

	if finished < len(jobs) {
		if err := ctx.Err(); err != nil {
			result.Cancelled = true
			logger.Info("folder comparison %s cancelled after %d of %d tasks", result.RunID, finished, len(jobs))
			return result, err
		}
	}
	logger.Debug("folder comparison %s took %s", result.RunID, result.Duration())
	return result, nil
}

// match discovers both trees and pairs their files.
func (s *FolderService) match(ctx context.Context, rootA, rootB string, override *float64) (*domain.FolderComparisonResult, error) {
	if s.connectors == nil {
		return nil, domain.ErrNotImplemented
	}
	threshold := s.matching.Threshold
	if override != nil {
		threshold = *override
	}
	started := time.Now()

	filesA, err := s.discover(ctx, rootA)
	if err != nil {
		return nil, err
	}
	filesB, err := s.discover(ctx, rootB)
	if err != nil {
		return nil, err
	}

	if limit := s.matching.MaxFiles; limit > 0 && len(filesA)+len(filesB) > limit {
		return nil, fmt.Errorf("%w: found %d, limit is %d", domain.ErrTooManyFiles, len(filesA)+len(filesB), limit)
	}

	matches, deleted, added := MatchEntries(filesA, filesB, threshold)
	logger.Debug("matched %d pairs, %d deleted, %d added files", len(matches), len(deleted), len(added))

	return &domain.FolderComparisonResult{
		RunID:     uuid.NewString(),
		RootA:     rootA,
		RootB:     rootB,
		Threshold: threshold,
		StartedAt: started,
		Matches:   matches,
		Pairs:     []domain.PairResult{},
		Added:     toSummaries(added),
		Deleted:   toSummaries(deleted),
	}, nil
}

func (s *FolderService) discover(ctx context.Context, root string) ([]domain.FileEntry, error) {
	conn := s.connectors(root)
	defer conn.Close()

	if err := conn.Validate(ctx); err != nil {
		return nil, fmt.Errorf("root %s: %w", root, err)
	}
	files, err := conn.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", root, err)
	}
	return files, nil
}

// comparePair parses and compares one matched pair. A parse failure is
// recorded on the pair; only a context error is returned, and the caller
// decides whether it cancels the run or fails the pair.
func (s *FolderService) comparePair(ctx context.Context, m domain.FileMatch) (*domain.PairResult, error) {
	pr := &domain.PairResult{Match: m}

	before, _, err := s.documents.ParseDocument(ctx, m.File1.FullPath)
	var after []domain.Requirement
	if err == nil {
		after, _, err = s.documents.ParseDocument(ctx, m.File2.FullPath)
	}
	if err != nil {
		if isContextError(err) {
			return nil, err
		}
		return failedPair(m, err), nil
	}

	pr.Result = CompareRequirements(before, after)
	if pr.Result.Stats.HasChanges() {
		pr.Status = domain.FileChanged
	} else {
		pr.Status = domain.FileUnchanged
	}
	return pr, nil
}

// failedPair records err against a matched pair.
func failedPair(m domain.FileMatch, err error) *domain.PairResult {
	pe := &domain.PairError{File1: m.File1.RelativePath, File2: m.File2.RelativePath, Err: err.Error()}
	logger.Warn("%v", pe)
	return &domain.PairResult{Match: m, Status: domain.FileError, Err: pe}
}

// countRequirements parses an unpaired file for its requirement count.
func (s *FolderService) countRequirements(ctx context.Context, summary *domain.FileSummary) error {
	reqs, _, err := s.documents.ParseDocument(ctx, summary.File.FullPath)
	if err != nil {
		if isContextError(err) {
			return err
		}
		logger.Warn("count requirements in %s: %v", summary.File.RelativePath, err)
		summary.Err = err.Error()
		return nil
	}
	summary.Requirements = len(reqs)
	return nil
}

// aggregate fills the file and requirement totals. Errored pairs are
// excluded; added and deleted files contribute all their requirements.
func aggregate(r *domain.FolderComparisonResult) {
	st := domain.FolderStats{
		FilesAdded:   len(r.Added),
		FilesDeleted: len(r.Deleted),
		ExactMatches: lo.CountBy(r.Matches, func(m domain.FileMatch) bool { return m.MatchType == domain.MatchExact }),
		FuzzyMatches: lo.CountBy(r.Matches, func(m domain.FileMatch) bool { return m.MatchType == domain.MatchFuzzy }),
	}

	for _, p := range r.Pairs {
		switch p.Status {
		case domain.FileError:
			st.FilesErrored++
			continue
		case domain.FileChanged:
			st.FilesChanged++
		default:
			st.FilesUnchanged++
		}
		cs := p.Result.Stats
		st.RequirementsBefore += cs.TotalBefore
		st.RequirementsAfter += cs.TotalAfter
		st.RequirementsAdded += cs.Added
		st.RequirementsDeleted += cs.Deleted
		st.RequirementsModified += cs.Modified
		st.RequirementsUnchanged += cs.Unchanged
	}

	addedReqs := lo.SumBy(r.Added, func(f domain.FileSummary) int { return f.Requirements })
	deletedReqs := lo.SumBy(r.Deleted, func(f domain.FileSummary) int { return f.Requirements })
	st.RequirementsAdded += addedReqs
	st.RequirementsAfter += addedReqs
	st.RequirementsDeleted += deletedReqs
	st.RequirementsBefore += deletedReqs

	st.ChangePercentage = domain.ChangePercentage(
		st.RequirementsAdded+st.RequirementsDeleted+st.RequirementsModified,
		st.RequirementsBefore+st.RequirementsAdded,
	)
	r.Stats = st
}

func toSummaries(files []domain.FileEntry) []domain.FileSummary {
	return lo.Map(files, func(f domain.FileEntry, _ int) domain.FileSummary {
		return domain.FileSummary{File: f}
	})
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
