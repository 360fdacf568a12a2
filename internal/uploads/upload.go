package uploads

import (
	"time"

	"github.com/google/uuid"
)

// Upload records one saved file.
type Upload struct {
	ID        uuid.UUID `json:"id"`
	Key       string    `json:"key"`
	Filename  string    `json:"filename"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}
