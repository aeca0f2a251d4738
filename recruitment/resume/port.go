package resume

import (
	"context"

	"github.com/Abraxas-365/aikyuu/pkg/apix"
	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/pkg/storex"
)

// Store holds one page of a position's resumes.
//
// Upload, UploadMany and Delete never patch the held page; callers re-list.
type Store interface {
	// List fetches one page of the position's resumes
	List(ctx context.Context, positionID kernel.PositionID, opts kernel.PaginationOptions) (*kernel.Paginated[Resume], error)

	// Upload checks and uploads a single file
	Upload(ctx context.Context, positionID kernel.PositionID, file File) (*Resume, error)

	// UploadMany uploads every file concurrently and waits for all of them.
	// The report always lists every file; the error is non-nil when any failed.
	UploadMany(ctx context.Context, positionID kernel.PositionID, files []File) (*UploadReport, error)

	// Delete removes a resume
	Delete(ctx context.Context, id kernel.ResumeID) error

	// FetchFile downloads the original document
	FetchFile(ctx context.Context, id kernel.ResumeID) (*apix.File, error)

	Snapshot() storex.Snapshot[Resume]
}

// Checker validates a file before it is sent
type Checker interface {
	Check(file File) error
}
