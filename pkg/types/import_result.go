package types

// ImportResult holds the outcome of an install attempt for a single script
type ImportResult struct {
	SourcePath      string `json:"source_path"`
	DestinationPath string `json:"destination_path"`
	Copied          bool   `json:"copied"`
	Skipped         bool   `json:"skipped"`
}
