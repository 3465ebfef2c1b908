package model

import "fmt"

// StagedRun tracks the SQL fragments staged by one download-mode run until they are
// downloaded as a single dump.
type StagedRun struct {
	Key      string   `json:"key"`
	Table    string   `json:"table"`
	ItemType ItemType `json:"item_type"`
	Fields   []string `json:"fields"`
	// Files are staging object names in chunk order.
	Files []string `json:"files"`
	// LastCommentID is the highest comment ID issued so far. Nothing reaches the database
	// in download mode, so later chunks continue from here instead of MAX(comment_ID).
	LastCommentID int64 `json:"last_comment_id,omitempty"`
}

// StagedRunKey identifies the run of principalID. An empty runID selects the principal's
// default run.
func StagedRunKey(principalID int64, runID string) string {
	if runID == "" {
		runID = "default"
	}
	return fmt.Sprintf("%d:%s", principalID, runID)
}
