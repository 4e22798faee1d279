package model

// EntityKind names the closed set of entity types the trash bin tracks.
type EntityKind string

const (
	KindStudent  EntityKind = "student"
	KindEmployee EntityKind = "employee"
	KindActivity EntityKind = "activity"
	KindOther    EntityKind = "other"
)

// TrashEntry represents one deleted entity awaiting possible restoration.
// The snapshot holds the entity's allowed-field projection taken at deletion
// time; it is the only copy left once the underlying row is hard-deleted.
type TrashEntry struct {
	ID         string         `json:"id"`
	Owner      Actor          `json:"owner"`
	EntityKind EntityKind     `json:"entity_kind"`
	OriginalID string         `json:"original_id"`
	Snapshot   map[string]any `json:"snapshot"`
	DeletedAt  string         `json:"deleted_at"`
	Restorable bool           `json:"restorable"`
}

type TrashListData struct {
	Items []TrashEntry `json:"items"`
}
