package sandboxsrv

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/Abraxas-365/aikyuu/internal/pdf"
	"github.com/Abraxas-365/aikyuu/pkg/formx"
	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/pkg/logx"
	"github.com/Abraxas-365/aikyuu/recruitment/criteria"
	"github.com/Abraxas-365/aikyuu/recruitment/position"
	"github.com/Abraxas-365/aikyuu/recruitment/resume"
	"github.com/Abraxas-365/aikyuu/sandbox"
)

// ============================================================================
// Positions
// ============================================================================

// compose attaches criteria and resumes to a stored position
func (s *Service) compose(ctx context.Context, rec *sandbox.PositionRecord) (*position.Position, error) {
	crits, err := s.repo.ListCriteria(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.ListResumes(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	resumes := make([]resume.Resume, len(records))
	for i, r := range records {
		resumes[i] = r.Resume
	}
	return &position.Position{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		Status:      rec.Status,
		Criterias:   crits,
		Resumes:     resumes,
		CreatedAt:   rec.CreatedAt,
	}, nil
}

func (s *Service) ListPositions(ctx context.Context, owner kernel.UserID, opts kernel.PaginationOptions) (*kernel.Paginated[position.Position], error) {
	records, err := s.repo.ListPositions(ctx, owner)
	if err != nil {
		return nil, err
	}
	page := kernel.NewPaginated(records, opts)

	out := kernel.Paginated[position.Position]{
		Items:      make([]position.Position, 0, len(page.Items)),
		Count:      page.Count,
		TotalPages: page.TotalPages,
	}
	for i := range page.Items {
		p, err := s.compose(ctx, &page.Items[i])
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, *p)
	}
	return &out, nil
}

func (s *Service) GetPosition(ctx context.Context, owner kernel.UserID, id kernel.PositionID) (*position.Position, error) {
	rec, err := s.ownedPosition(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	return s.compose(ctx, rec)
}

func (s *Service) CreatePosition(ctx context.Context, owner kernel.UserID, req position.CreatePositionRequest) (*position.Position, error) {
	if err := formx.Validate(req).Err(); err != nil {
		return nil, err
	}
	rec := &sandbox.PositionRecord{
		Owner:       owner,
		ID:          kernel.NewPositionID(newID()),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Status:      position.StatusCreated,
		CreatedAt:   s.now(),
	}
	if err := s.repo.SavePosition(ctx, rec); err != nil {
		return nil, err
	}
	return s.compose(ctx, rec)
}

// UpdatePosition changes title and description in any status
func (s *Service) UpdatePosition(ctx context.Context, owner kernel.UserID, id kernel.PositionID, req position.UpdatePositionRequest) (*position.Position, error) {
	if err := formx.Validate(req).Err(); err != nil {
		return nil, err
	}
	rec, err := s.ownedPosition(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	rec.Title = strings.TrimSpace(req.Title)
	rec.Description = strings.TrimSpace(req.Description)
	if err := s.repo.SavePosition(ctx, rec); err != nil {
		return nil, err
	}
	return s.compose(ctx, rec)
}

// DeletePosition removes the position, its criteria, its resumes and their
// files. A running analysis blocks deletion.
func (s *Service) DeletePosition(ctx context.Context, owner kernel.UserID, id kernel.PositionID) error {
	rec, err := s.ownedPosition(ctx, owner, id)
	if err != nil {
		return err
	}
	if rec.Status == position.StatusInProgress {
		return sandbox.ErrAlreadyProcessing()
	}

	resumes, err := s.repo.ListResumes(ctx, id)
	if err != nil {
		return err
	}
	for _, r := range resumes {
		if err := s.files.DeleteFile(ctx, r.FilePath); err != nil {
			logx.Warnf("Failed to delete resume file %s: %v", r.FilePath, err)
		}
	}
	return s.repo.DeletePosition(ctx, id)
}

// DuplicatePosition copies title, description and criteria into a new
// position. Resumes and results are not copied.
func (s *Service) DuplicatePosition(ctx context.Context, owner kernel.UserID, id kernel.PositionID) (*position.Position, error) {
	src, err := s.ownedPosition(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	crits, err := s.repo.ListCriteria(ctx, id)
	if err != nil {
		return nil, err
	}

	dup := &sandbox.PositionRecord{
		Owner:       owner,
		ID:          kernel.NewPositionID(newID()),
		Title:       src.Title + " (copy)",
		Description: src.Description,
		Status:      position.StatusCreated,
		CreatedAt:   s.now(),
	}
	if err := s.repo.SavePosition(ctx, dup); err != nil {
		return nil, err
	}
	for _, c := range crits {
		c.ID = kernel.NewCriteriaID(newID())
		c.PositionID = dup.ID
		if err := s.repo.AddCriteria(ctx, &c); err != nil {
			return nil, err
		}
	}
	return s.compose(ctx, dup)
}

// editablePosition loads a position that still accepts criteria and resumes
func (s *Service) editablePosition(ctx context.Context, owner kernel.UserID, id kernel.PositionID) (*sandbox.PositionRecord, error) {
	rec, err := s.ownedPosition(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if rec.Status != position.StatusCreated {
		return nil, sandbox.ErrNotEditable().WithDetail("status", rec.Status)
	}
	return rec, nil
}

// ============================================================================
// Criteria
// ============================================================================

func (s *Service) ListCriteria(ctx context.Context, owner kernel.UserID, positionID kernel.PositionID) ([]criteria.Criteria, error) {
	if _, err := s.ownedPosition(ctx, owner, positionID); err != nil {
		return nil, err
	}
	return s.repo.ListCriteria(ctx, positionID)
}

func (s *Service) AddCriteria(ctx context.Context, owner kernel.UserID, positionID kernel.PositionID, req criteria.CreateCriteriaRequest) (*criteria.Criteria, error) {
	if err := formx.Validate(req).Err(); err != nil {
		return nil, err
	}
	if _, err := s.editablePosition(ctx, owner, positionID); err != nil {
		return nil, err
	}
	c := &criteria.Criteria{
		ID:          kernel.NewCriteriaID(newID()),
		PositionID:  positionID,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   s.now(),
	}
	if err := s.repo.AddCriteria(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) DeleteCriteria(ctx context.Context, owner kernel.UserID, id kernel.CriteriaID) error {
	c, err := s.repo.GetCriteria(ctx, id)
	if err != nil {
		return err
	}
	rec, err := s.ownedPosition(ctx, owner, c.PositionID)
	if err != nil {
		return sandbox.ErrCriteriaNotFound()
	}
	if rec.Status != position.StatusCreated {
		return sandbox.ErrNotEditable().WithDetail("status", rec.Status)
	}
	return s.repo.DeleteCriteria(ctx, id)
}

// ============================================================================
// Resumes
// ============================================================================

func (s *Service) ListResumes(ctx context.Context, owner kernel.UserID, positionID kernel.PositionID, opts kernel.PaginationOptions) (*kernel.Paginated[resume.Resume], error) {
	if _, err := s.ownedPosition(ctx, owner, positionID); err != nil {
		return nil, err
	}
	records, err := s.repo.ListResumes(ctx, positionID)
	if err != nil {
		return nil, err
	}
	all := make([]resume.Resume, len(records))
	for i, r := range records {
		all[i] = r.Resume
	}
	page := kernel.NewPaginated(all, opts)
	return &page, nil
}

// UploadResume stores the file and keeps its text for scoring. PDFs must
// open and have at least one page.
func (s *Service) UploadResume(ctx context.Context, owner kernel.UserID, positionID kernel.PositionID, file resume.File) (*resume.Resume, error) {
	if _, err := s.editablePosition(ctx, owner, positionID); err != nil {
		return nil, err
	}
	if len(file.Data) == 0 {
		return nil, sandbox.ErrInvalidInput("File is empty").WithDetail("file", file.Name)
	}

	var text string
	switch {
	case strings.EqualFold(filepath.Ext(file.Name), ".txt"), strings.HasPrefix(file.DetectContentType(), "text/plain"):
		text = string(file.Data)
	case file.IsPDF():
		if _, err := pdf.Inspect(file.Data); err != nil {
			return nil, sandbox.ErrInvalidInput("File is not a readable PDF").WithDetail("file", file.Name)
		}
		extracted, err := pdf.ExtractText(file.Data)
		if err != nil {
			logx.Warnf("No text extracted from %s: %v", file.Name, err)
		}
		text = extracted
	}

	id := kernel.NewResumeID(newID())
	ext := strings.ToLower(filepath.Ext(file.Name))
	p := s.files.Join("resumes", positionID.String(), id.String()+ext)
	if err := s.files.WriteFile(ctx, p, file.Data); err != nil {
		return nil, err
	}

	rec := &sandbox.ResumeRecord{
		Resume: resume.Resume{
			ID:         id,
			PositionID: positionID,
			Title:      strings.TrimSuffix(filepath.Base(file.Name), filepath.Ext(file.Name)),
			CreatedAt:  s.now(),
		},
		Owner:       owner,
		FilePath:    p,
		FileName:    filepath.Base(file.Name),
		ContentType: file.DetectContentType(),
		Text:        text,
	}
	if err := s.repo.SaveResume(ctx, rec); err != nil {
		return nil, err
	}
	return &rec.Resume, nil
}

func (s *Service) ownedResume(ctx context.Context, owner kernel.UserID, id kernel.ResumeID) (*sandbox.ResumeRecord, error) {
	rec, err := s.repo.GetResume(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Owner != owner {
		return nil, sandbox.ErrResumeNotFound()
	}
	return rec, nil
}

func (s *Service) DeleteResume(ctx context.Context, owner kernel.UserID, id kernel.ResumeID) error {
	rec, err := s.ownedResume(ctx, owner, id)
	if err != nil {
		return err
	}
	if _, err := s.editablePosition(ctx, owner, rec.PositionID); err != nil {
		return err
	}
	if err := s.repo.DeleteResume(ctx, id); err != nil {
		return err
	}
	if err := s.files.DeleteFile(ctx, rec.FilePath); err != nil {
		logx.Warnf("Failed to delete resume file %s: %v", rec.FilePath, err)
	}
	return nil
}

// ResumeFile returns the uploaded file as it was sent
func (s *Service) ResumeFile(ctx context.Context, owner kernel.UserID, id kernel.ResumeID) (*resume.File, error) {
	rec, err := s.ownedResume(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	data, err := s.files.ReadFile(ctx, rec.FilePath)
	if err != nil {
		return nil, err
	}
	return &resume.File{Name: rec.FileName, ContentType: rec.ContentType, Data: data}, nil
}
