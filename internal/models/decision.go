package models

import "time"

// SyncAction is the chosen bulk direction for bringing a local and a remote
// collection into agreement.
type SyncAction string

const (
	ActionPull      SyncAction = "pull"
	ActionPush      SyncAction = "push"
	ActionReconcile SyncAction = "reconcile"
	ActionSkip      SyncAction = "skip"
)

// SyncDecision is the pure output of comparing local metadata against a
// server metadata payload. It carries no side effects; timestamps are the
// zero time when the corresponding side reported none.
type SyncDecision struct {
	LocalTimestamp  time.Time  `json:"localTimestamp"`
	ServerTimestamp time.Time  `json:"serverTimestamp"`
	Action          SyncAction `json:"action"`
	Reason          string     `json:"reason"`
	LocalCount      int        `json:"localCount"`
	ServerCount     int        `json:"serverCount"`
}
