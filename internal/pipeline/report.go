package pipeline

// Report summarizes a completed run for structured CLI output.
type Report struct {
	RunID  string `json:"run_id" yaml:"run_id"`
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`

	Engine string `json:"engine" yaml:"engine"`
	Model  string `json:"model" yaml:"model"`
	Prompt string `json:"prompt" yaml:"prompt"`

	TotalPages int    `json:"total_pages" yaml:"total_pages"`
	Pages      string `json:"pages" yaml:"pages"` // Resolved window, "first-last"
	Processed  int    `json:"processed" yaml:"processed"`
	Failed     int    `json:"failed" yaml:"failed"`

	ElapsedSeconds float64 `json:"elapsed_seconds" yaml:"elapsed_seconds"`
	AvgPageSeconds float64 `json:"avg_page_seconds" yaml:"avg_page_seconds"`
}
