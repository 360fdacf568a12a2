package uploads

import (
	"context"
	"sync"

	"github.com/JaimeStill/web-quickstart/pkg/pagination"
)

// Ledger records saved uploads.
type Ledger interface {
	Record(ctx context.Context, u Upload) (*Upload, error)
	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Upload], error)
}

type memoryLedger struct {
	mu      sync.RWMutex
	uploads []Upload
}

// NewMemoryLedger creates a Ledger held in process memory. It is used when
// the database is disabled; records do not survive a restart.
func NewMemoryLedger() Ledger {
	return &memoryLedger{}
}

func (l *memoryLedger) Record(ctx context.Context, u Upload) (*Upload, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, existing := range l.uploads {
		if existing.ID == u.ID {
			return nil, ErrDuplicate
		}
	}
	l.uploads = append(l.uploads, u)
	return &u, nil
}

func (l *memoryLedger) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Upload], error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := len(l.uploads)
	start := min(page.Offset(), total)
	end := min(start+page.PageSize, total)

	data := make([]Upload, 0, end-start)
	for i := start; i < end; i++ {
		data = append(data, l.uploads[total-1-i])
	}

	result := pagination.NewPageResult(data, total, page.Page, page.PageSize)
	return &result, nil
}
