package sandboxinfra

import (
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/aikyuu/pkg/errx"
	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/recruitment/criteria"
	"github.com/Abraxas-365/aikyuu/recruitment/resume"
	"github.com/Abraxas-365/aikyuu/sandbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryAccounts(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	a := &sandbox.Account{ID: "u-1", Email: "ana@example.com", Name: "Ana"}
	require.NoError(t, repo.CreateAccount(ctx, a))
	err := repo.CreateAccount(ctx, &sandbox.Account{ID: "u-2", Email: "ana@example.com"})
	assert.True(t, errx.IsCode(err, sandbox.CodeEmailTaken))

	got, err := repo.GetAccountByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	got.Name = "changed"

	again, err := repo.GetAccount(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", again.Name, "returned records are copies")

	_, err = repo.GetAccountByEmail(ctx, "bob@example.com")
	assert.True(t, errx.IsCode(err, sandbox.CodeEmailNotFound))
}

func TestRepositoryPositionsNewestFirstAndCascade(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []kernel.PositionID{"p-1", "p-2", "p-3"} {
		require.NoError(t, repo.SavePosition(ctx, &sandbox.PositionRecord{
			Owner: "u-1", ID: id, CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, repo.SavePosition(ctx, &sandbox.PositionRecord{Owner: "u-2", ID: "p-x", CreatedAt: base}))

	list, err := repo.ListPositions(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, kernel.PositionID("p-3"), list[0].ID)
	assert.Equal(t, kernel.PositionID("p-1"), list[2].ID)

	require.NoError(t, repo.AddCriteria(ctx, &criteria.Criteria{ID: "c-1", PositionID: "p-1"}))
	require.NoError(t, repo.SaveResume(ctx, &sandbox.ResumeRecord{Resume: resume.Resume{ID: "r-1", PositionID: "p-1"}}))
	require.NoError(t, repo.DeletePosition(ctx, "p-1"))

	_, err = repo.GetCriteria(ctx, "c-1")
	assert.True(t, errx.IsCode(err, sandbox.CodeCriteriaNotFound))
	_, err = repo.GetResume(ctx, "r-1")
	assert.True(t, errx.IsCode(err, sandbox.CodeResumeNotFound))
	assert.True(t, errx.IsCode(repo.DeletePosition(ctx, "p-1"), sandbox.CodePositionNotFound))
}

func TestRepositoryBillsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	for _, id := range []kernel.BillID{"b-1", "b-2"} {
		bill := &sandbox.BillRecord{Owner: "u-1"}
		bill.ID = id
		require.NoError(t, repo.AddBill(ctx, bill))
	}

	bills, err := repo.ListBills(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, bills, 2)
	assert.Equal(t, kernel.BillID("b-2"), bills[0].ID)
}

func TestMemoryQueue(t *testing.T) {
	ctx := context.Background()
	q := NewMemoryQueue(4)

	job, err := q.Dequeue(ctx, 5*time.Millisecond)
	require.NoError(t, err)
	assert.Nil(t, job, "timeout yields no job")

	require.NoError(t, q.Enqueue(ctx, sandbox.Job{ID: "j-1"}))
	size, _ := q.Size(ctx)
	assert.Equal(t, int64(1), size)

	job, err = q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, "j-1", job.ID)
}

func TestMemoryQueueDelayed(t *testing.T) {
	ctx := context.Background()
	q := NewMemoryQueue(4)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	q.now = func() time.Time { return now }

	require.NoError(t, q.EnqueueDelayed(ctx, sandbox.Job{ID: "later"}, time.Minute))
	require.NoError(t, q.EnqueueDelayed(ctx, sandbox.Job{ID: "soon"}, time.Second))

	moved, err := q.MoveDelayedToReady(ctx)
	require.NoError(t, err)
	assert.Zero(t, moved)

	now = now.Add(2 * time.Second)
	moved, err = q.MoveDelayedToReady(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	job, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, "soon", job.ID)
}

func TestMemoryQueueDequeueCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryQueue(1).Dequeue(ctx, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}
