package models

// Bucket holds completion counts for one day or one ISO week.
// Total counts every completion in the bucket, including ones whose list
// matched neither owner.
type Bucket struct {
	Eve   int `json:"eve"`
	Dima  int `json:"dima"`
	Total int `json:"total"`
}

// Series maps a bucket key (YYYY-MM-DD or YYYY-Www) to its counts
type Series map[string]Bucket

// OwnerCounts represents the instantaneous task counts for one owner
type OwnerCounts struct {
	Done    int `json:"done"`
	Total   int `json:"total"`
	Pending int `json:"pending"`
}

// TotalCounts represents board-wide done and pending counts
type TotalCounts struct {
	Done    int `json:"done"`
	Pending int `json:"pending"`
}

// TaskSummary is the response shape of the done-tasks endpoint
type TaskSummary struct {
	Eve   OwnerCounts `json:"eve"`
	Dima  OwnerCounts `json:"dima"`
	Total TotalCounts `json:"total"`
}

// Statistics is the consolidated daily and weekly report
type Statistics struct {
	Daily  Series `json:"daily"`
	Weekly Series `json:"weekly"`
}
