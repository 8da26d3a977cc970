package models

type LogLevel string

const (
	LevelInfo    LogLevel = "info"
	LevelSuccess LogLevel = "success"
	LevelError   LogLevel = "error"
	LevelWarning LogLevel = "warning"
)

type LogEntry struct {
	Timestamp string   `json:"timestamp"`
	Level     LogLevel `json:"level"`
	Message   string   `json:"message"`
}

type StatusRecord struct {
	IsDownloading bool       `json:"is_downloading"`
	CurrentItem   string     `json:"current_item"`
	Progress      float64    `json:"progress"`
	Total         int        `json:"total"`
	Completed     int        `json:"completed"`
	Failed        int        `json:"failed"`
	Logs          []LogEntry `json:"logs"`
	OutputItems   []string   `json:"output_items"`
}

type FetchResult struct {
	Reference string `json:"reference"`
	Title     string `json:"title"`
	Succeeded bool   `json:"succeeded"`
	Error     string `json:"error,omitempty"`
}

type BatchSummary struct {
	Succeeded   int           `json:"succeeded"`
	Failed      int           `json:"failed"`
	Total       int           `json:"total"`
	Destination string        `json:"destination"`
	Results     []FetchResult `json:"results"`
}

type DownloadRequest struct {
	Type string `json:"type"`
	URL  string `json:"url"`
	URLs string `json:"urls"`
}

type DownloadStarted struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ClearResponse struct {
	Success bool `json:"success"`
}
