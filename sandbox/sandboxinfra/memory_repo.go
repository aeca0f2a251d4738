package sandboxinfra

import (
	"context"
	"sort"
	"sync"

	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/recruitment/criteria"
	"github.com/Abraxas-365/aikyuu/sandbox"
)

// MemoryRepository keeps every sandbox record in maps
type MemoryRepository struct {
	mu            sync.RWMutex
	accounts      map[kernel.UserID]sandbox.Account
	emails        map[kernel.Email]kernel.UserID
	verifications map[kernel.VerificationID]sandbox.Verification
	positions     map[kernel.PositionID]sandbox.PositionRecord
	criteria      map[kernel.CriteriaID]criteria.Criteria
	resumes       map[kernel.ResumeID]sandbox.ResumeRecord
	bills         []sandbox.BillRecord
	feedback      []sandbox.Feedback
}

var _ sandbox.Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		accounts:      make(map[kernel.UserID]sandbox.Account),
		emails:        make(map[kernel.Email]kernel.UserID),
		verifications: make(map[kernel.VerificationID]sandbox.Verification),
		positions:     make(map[kernel.PositionID]sandbox.PositionRecord),
		criteria:      make(map[kernel.CriteriaID]criteria.Criteria),
		resumes:       make(map[kernel.ResumeID]sandbox.ResumeRecord),
	}
}

// ============================================================================
// Accounts
// ============================================================================

func (r *MemoryRepository) CreateAccount(_ context.Context, a *sandbox.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.emails[a.Email]; taken {
		return sandbox.ErrEmailTaken()
	}
	r.accounts[a.ID] = *a
	r.emails[a.Email] = a.ID
	return nil
}

func (r *MemoryRepository) GetAccount(_ context.Context, id kernel.UserID) (*sandbox.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, sandbox.ErrUnauthorized()
	}
	return &a, nil
}

func (r *MemoryRepository) GetAccountByEmail(_ context.Context, email kernel.Email) (*sandbox.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.emails[email]
	if !ok {
		return nil, sandbox.ErrEmailNotFound()
	}
	a := r.accounts[id]
	return &a, nil
}

func (r *MemoryRepository) UpdateAccount(_ context.Context, a *sandbox.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[a.ID]; !ok {
		return sandbox.ErrUnauthorized()
	}
	r.accounts[a.ID] = *a
	return nil
}

// ============================================================================
// Verifications
// ============================================================================

func (r *MemoryRepository) SaveVerification(_ context.Context, v *sandbox.Verification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verifications[v.ID] = *v
	return nil
}

func (r *MemoryRepository) GetVerification(_ context.Context, id kernel.VerificationID) (*sandbox.Verification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.verifications[id]
	if !ok {
		return nil, sandbox.ErrInvalidCode()
	}
	return &v, nil
}

func (r *MemoryRepository) DeleteVerification(_ context.Context, id kernel.VerificationID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.verifications, id)
	return nil
}

// ============================================================================
// Positions
// ============================================================================

func (r *MemoryRepository) SavePosition(_ context.Context, p *sandbox.PositionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.positions[p.ID] = *p
	return nil
}

func (r *MemoryRepository) GetPosition(_ context.Context, id kernel.PositionID) (*sandbox.PositionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.positions[id]
	if !ok {
		return nil, sandbox.ErrPositionNotFound()
	}
	return &p, nil
}

// ListPositions returns the owner's positions, newest first
func (r *MemoryRepository) ListPositions(_ context.Context, owner kernel.UserID) ([]sandbox.PositionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []sandbox.PositionRecord
	for _, p := range r.positions {
		if p.Owner == owner {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// DeletePosition removes the position with its criteria and resumes
func (r *MemoryRepository) DeletePosition(_ context.Context, id kernel.PositionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.positions[id]; !ok {
		return sandbox.ErrPositionNotFound()
	}
	delete(r.positions, id)
	for cid, c := range r.criteria {
		if c.PositionID == id {
			delete(r.criteria, cid)
		}
	}
	for rid, res := range r.resumes {
		if res.PositionID == id {
			delete(r.resumes, rid)
		}
	}
	return nil
}

// ============================================================================
// Criteria
// ============================================================================

func (r *MemoryRepository) AddCriteria(_ context.Context, c *criteria.Criteria) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.criteria[c.ID] = *c
	return nil
}

func (r *MemoryRepository) GetCriteria(_ context.Context, id kernel.CriteriaID) (*criteria.Criteria, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.criteria[id]
	if !ok {
		return nil, sandbox.ErrCriteriaNotFound()
	}
	return &c, nil
}

// ListCriteria returns the position's criteria in creation order
func (r *MemoryRepository) ListCriteria(_ context.Context, positionID kernel.PositionID) ([]criteria.Criteria, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []criteria.Criteria{}
	for _, c := range r.criteria {
		if c.PositionID == positionID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepository) DeleteCriteria(_ context.Context, id kernel.CriteriaID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.criteria[id]; !ok {
		return sandbox.ErrCriteriaNotFound()
	}
	delete(r.criteria, id)
	return nil
}

// ============================================================================
// Resumes
// ============================================================================

func (r *MemoryRepository) SaveResume(_ context.Context, res *sandbox.ResumeRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resumes[res.ID] = *res
	return nil
}

func (r *MemoryRepository) GetResume(_ context.Context, id kernel.ResumeID) (*sandbox.ResumeRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.resumes[id]
	if !ok {
		return nil, sandbox.ErrResumeNotFound()
	}
	return &res, nil
}

// ListResumes returns the position's resumes in upload order
func (r *MemoryRepository) ListResumes(_ context.Context, positionID kernel.PositionID) ([]sandbox.ResumeRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []sandbox.ResumeRecord{}
	for _, res := range r.resumes {
		if res.PositionID == positionID {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepository) DeleteResume(_ context.Context, id kernel.ResumeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resumes[id]; !ok {
		return sandbox.ErrResumeNotFound()
	}
	delete(r.resumes, id)
	return nil
}

// ============================================================================
// Billing & feedback
// ============================================================================

func (r *MemoryRepository) AddBill(_ context.Context, b *sandbox.BillRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bills = append(r.bills, *b)
	return nil
}

// ListBills returns the owner's charges, newest first
func (r *MemoryRepository) ListBills(_ context.Context, owner kernel.UserID) ([]sandbox.BillRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []sandbox.BillRecord
	for i := len(r.bills) - 1; i >= 0; i-- {
		if r.bills[i].Owner == owner {
			out = append(out, r.bills[i])
		}
	}
	return out, nil
}

func (r *MemoryRepository) AddFeedback(_ context.Context, f *sandbox.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feedback = append(r.feedback, *f)
	return nil
}
