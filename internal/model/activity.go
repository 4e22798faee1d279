package model

// ActivityKind is the advisory set of activity types. Unknown kinds are
// stored verbatim rather than rejected, so callers see exactly what was
// recorded.
type ActivityKind string

const (
	ActivityCreate  ActivityKind = "create"
	ActivityUpdate  ActivityKind = "update"
	ActivityDelete  ActivityKind = "delete"
	ActivityRestore ActivityKind = "restore"
	ActivityLogin   ActivityKind = "login"
	ActivityLogout  ActivityKind = "logout"
	ActivityOther   ActivityKind = "other"
)

// ActivityEntry is an immutable audit record. Entries are append-only and
// never mutated or deleted by the application.
type ActivityEntry struct {
	ID          string         `json:"id"`
	Actor       Actor          `json:"actor"`
	Kind        ActivityKind   `json:"kind"`
	Description string         `json:"description"`
	TargetKind  EntityKind     `json:"target_kind,omitempty"`
	TargetID    string         `json:"target_id,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   string         `json:"created_at"`
}

type ActivityListData struct {
	Items []ActivityEntry `json:"items"`
}

type RecordActivityRequest struct {
	Kind        string         `json:"kind"`
	Description string         `json:"description"`
	TargetKind  string         `json:"target_kind,omitempty"`
	TargetID    string         `json:"target_id,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}
