package dto

// ProcessFileResult reports the outcome for one uploaded file. Failures are
// per-file; a failed file never aborts the rest of the batch.
type ProcessFileResult struct {
	FileName     string `json:"file_name"`
	MetricGroups int    `json:"metric_groups"`
	Note         string `json:"note,omitempty"`
	Error        string `json:"error,omitempty"`
}

type ProcessResponse struct {
	Files     []ProcessFileResult `json:"files"`
	Processed int                 `json:"processed"`
	Failed    int                 `json:"failed"`
}
