package resumestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abraxas-365/aikyuu/pkg/apix"
	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/pkg/logx"
	"github.com/Abraxas-365/aikyuu/pkg/storex"
	"github.com/Abraxas-365/aikyuu/recruitment/resume"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	// Concurrency caps simultaneous uploads; 0 uploads every file at once
	Concurrency int
	Checker     resume.Checker
}

type Store struct {
	api      *apix.Client
	notifier storex.Notifier
	cfg      Config
	state    *storex.State[resume.Resume]
}

var _ resume.Store = (*Store)(nil)

func New(api *apix.Client, notifier storex.Notifier, cfg Config) *Store {
	if cfg.Checker == nil {
		cfg.Checker = PDFChecker{}
	}
	return &Store{
		api:      api,
		notifier: notifier,
		cfg:      cfg,
		state:    storex.NewState[resume.Resume](),
	}
}

func listPath(positionID kernel.PositionID) string {
	return fmt.Sprintf("/v1/positions/%s/resumes", positionID)
}

func (s *Store) List(ctx context.Context, positionID kernel.PositionID, opts kernel.PaginationOptions) (*kernel.Paginated[resume.Resume], error) {
	opts = opts.Normalize()

	return storex.Run(ctx, s.state, s.notifier, storex.Op[resume.Resume, *kernel.Paginated[resume.Resume]]{
		Name:     "list",
		Fallback: "Failed to fetch resumes",
		Call: func(ctx context.Context) (*kernel.Paginated[resume.Resume], error) {
			var page kernel.Paginated[resume.Resume]
			if err := s.api.Get(ctx, listPath(positionID), opts.Query(), &page); err != nil {
				return nil, err
			}
			return &page, nil
		},
		Apply: func(d *storex.Data[resume.Resume], page *kernel.Paginated[resume.Resume]) {
			d.Items = page.Items
			d.Page = page.Page(opts)
		},
	})
}

func (s *Store) Upload(ctx context.Context, positionID kernel.PositionID, file resume.File) (*resume.Resume, error) {
	return storex.Run(ctx, s.state, s.notifier, storex.Op[resume.Resume, *resume.Resume]{
		Name:     "upload",
		Fallback: "Failed to upload resume",
		Success:  "Resume uploaded",
		Call: func(ctx context.Context) (*resume.Resume, error) {
			return s.upload(ctx, positionID, file)
		},
	})
}

func (s *Store) upload(ctx context.Context, positionID kernel.PositionID, file resume.File) (*resume.Resume, error) {
	if err := s.cfg.Checker.Check(file); err != nil {
		return nil, err
	}

	var created resume.Resume
	err := s.api.Upload(ctx, listPath(positionID), apix.File{
		Name:        file.Name,
		ContentType: file.DetectContentType(),
		Data:        file.Data,
	}, nil, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UploadMany sends every file concurrently. One failing file never stops the
// others; the report lists each outcome and a single summary is notified.
func (s *Store) UploadMany(ctx context.Context, positionID kernel.PositionID, files []resume.File) (*resume.UploadReport, error) {
	if len(files) == 0 {
		return &resume.UploadReport{}, resume.ErrNoFiles()
	}

	report, err := storex.Run(ctx, s.state, nil, storex.Op[resume.Resume, *resume.UploadReport]{
		Name: "upload-many",
		Call: func(ctx context.Context) (*resume.UploadReport, error) {
			return s.fanOut(ctx, positionID, files)
		},
	})

	if ctx.Err() == nil && s.notifier != nil {
		if err != nil {
			s.notifier.Notify(storex.LevelError, summary(report))
		} else {
			s.notifier.Notify(storex.LevelSuccess, summary(report))
		}
	}
	return report, err
}

func (s *Store) fanOut(ctx context.Context, positionID kernel.PositionID, files []resume.File) (*resume.UploadReport, error) {
	report := &resume.UploadReport{Results: make([]resume.UploadResult, len(files))}

	var g errgroup.Group
	if s.cfg.Concurrency > 0 {
		g.SetLimit(s.cfg.Concurrency)
	}
	for i, f := range files {
		g.Go(func() error {
			created, err := s.upload(ctx, positionID, f)
			report.Results[i] = resume.UploadResult{File: f.Name, Resume: created, Err: err}
			if err != nil {
				logx.Warnf("upload %s to position %s: %v", f.Name, positionID, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	failed := report.Failed()
	if len(failed) == 0 {
		return report, nil
	}
	errs := make([]error, 0, len(failed))
	for _, f := range failed {
		errs = append(errs, fmt.Errorf("%s: %w", f.File, f.Err))
	}
	return report, resume.ErrUploadFailed(len(failed), len(files), errors.Join(errs...)).
		WithMessage(fmt.Sprintf("%d of %d resumes could not be uploaded", len(failed), len(files)))
}

func summary(r *resume.UploadReport) string {
	if r == nil {
		return "Failed to upload resumes"
	}
	total := len(r.Results)
	failed := total - r.Succeeded()
	if failed == 0 {
		if total == 1 {
			return "1 resume uploaded"
		}
		return fmt.Sprintf("%d resumes uploaded", total)
	}
	return fmt.Sprintf("%d of %d resumes could not be uploaded", failed, total)
}

func (s *Store) Delete(ctx context.Context, id kernel.ResumeID) error {
	_, err := storex.Run(ctx, s.state, s.notifier, storex.Op[resume.Resume, struct{}]{
		Name:     "delete",
		Fallback: "Failed to delete resume",
		Success:  "Resume deleted",
		Call: func(ctx context.Context) (struct{}, error) {
			if id.IsEmpty() {
				return struct{}{}, resume.ErrResumeNotFound()
			}
			return struct{}{}, s.api.Delete(ctx, "/v1/resumes/"+id.String())
		},
	})
	return err
}

func (s *Store) FetchFile(ctx context.Context, id kernel.ResumeID) (*apix.File, error) {
	return storex.Run(ctx, s.state, s.notifier, storex.Op[resume.Resume, *apix.File]{
		Name:     "file",
		Fallback: "Failed to fetch resume file",
		Call: func(ctx context.Context) (*apix.File, error) {
			if id.IsEmpty() {
				return nil, resume.ErrResumeNotFound()
			}
			return s.api.Download(ctx, fmt.Sprintf("/v1/resumes/%s/file", id))
		},
	})
}

func (s *Store) Snapshot() storex.Snapshot[resume.Resume] {
	return s.state.Snapshot()
}
