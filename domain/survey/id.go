package survey

import (
	"github.com/google/uuid"
)

// DatasetID identifies one loaded survey dataset for the session
type DatasetID string

// NewDatasetID creates a new unique identifier using UUID v7 for
// time-ordered generation, falling back to v4 if v7 is unavailable
func NewDatasetID() DatasetID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return DatasetID(id.String())
}

// String returns the string representation
func (id DatasetID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id DatasetID) IsEmpty() bool {
	return id == ""
}
