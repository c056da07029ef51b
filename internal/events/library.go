package events

// Event types.
const (
	EventItemStaged             = "item.staged"
	EventItemStatusChanged      = "item.status_changed"
	EventItemRenamed            = "item.renamed"
	EventItemRemoved            = "item.removed"
	EventItemBlocked            = "item.blocked"
	EventLibraryAddRequested    = "library.add_requested"
	EventLibraryRemoveRequested = "library.remove_requested"
	EventBatchCompleted         = "batch.completed"
	EventScanCompleted          = "scan.completed"
)

// Entity types.
const (
	EntityMovie   = "movie"
	EntityTVShow  = "tvshow"
	EntityBlocked = "blocked"
	EntityBatch   = "batch"
	EntityScan    = "scan"
)

// ItemStaged is emitted when a new content item row is created.
type ItemStaged struct {
	BaseEvent
	Title     string `json:"title"`
	Year      int    `json:"year,omitempty"`
	ShowTitle string `json:"show_title,omitempty"`
	Season    string `json:"season,omitempty"`
	Episode   string `json:"episode,omitempty"`
}

// ItemStatusChanged is emitted when an item moves between staged and managed.
type ItemStatusChanged struct {
	BaseEvent
	Title     string `json:"title"`
	NewStatus string `json:"new_status"`
	Auto      bool   `json:"auto,omitempty"` // promoted by the auto-add policy
}

// ItemRenamed is emitted when an item's title is edited.
type ItemRenamed struct {
	BaseEvent
	Title string `json:"title"`
}

// ItemRemoved is emitted when rows are deleted. Key is the directory for
// single-row deletes and empty for bulk deletes.
type ItemRemoved struct {
	BaseEvent
	Mode      string `json:"mode"`
	Status    string `json:"status,omitempty"`
	ShowTitle string `json:"show_title,omitempty"`
	Season    *int   `json:"season,omitempty"`
	Rows      int64  `json:"rows"`
}

// ItemBlocked is emitted when a value is added to the blocked set.
type ItemBlocked struct {
	BaseEvent
	BlockType string `json:"block_type"`
}

// LibraryRequest asks the host to add or remove an item from its
// playable library.
type LibraryRequest struct {
	BaseEvent
	Title     string `json:"title"`
	Year      int    `json:"year,omitempty"`
	ShowTitle string `json:"show_title,omitempty"`
	Season    string `json:"season,omitempty"`
	Episode   string `json:"episode,omitempty"`
}

// BatchCompleted summarizes a bulk state transition.
type BatchCompleted struct {
	BaseEvent
	Operation string `json:"operation"`
	Total     int    `json:"total"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Aborted   bool   `json:"aborted,omitempty"`
}

// ScanCompleted summarizes a pass over the synced directories.
type ScanCompleted struct {
	BaseEvent
	Directories int `json:"directories"`
	Found       int `json:"found"`
	Added       int `json:"added"`
	Existing    int `json:"existing"`
	Blocked     int `json:"blocked"`
	Skipped     int `json:"skipped"`
	Failed      int `json:"failed"`
}
