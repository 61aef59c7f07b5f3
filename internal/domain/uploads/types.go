package uploads

import (
	"time"

	"github.com/google/uuid"
)

type RowCounts struct {
	Inserted  int `json:"inserted"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Skipped   int `json:"skipped"`
}

func (c *RowCounts) Apply(d MergeDecision) {
	switch d {
	case DecisionInsert:
		c.Inserted++
	case DecisionUpdate:
		c.Updated++
	default:
		c.Unchanged++
	}
}

type Summary struct {
	DatasetID       uuid.UUID `json:"datasetId"`
	Rows            RowCounts `json:"rows"`
	ServerTimestamp time.Time `json:"serverTimestamp"`
}
