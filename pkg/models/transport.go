package models

// Severity grades a validation finding
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is one structured finding about an analysis result.
type Issue struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Value    float64  `json:"value,omitempty"`
}

// AnalysisResponse is the API envelope around one analysis result.
type AnalysisResponse struct {
	Source            string              `json:"source"`
	Timestamp         string              `json:"timestamp"`
	ProcessingTimeSec float64             `json:"processing_time_sec"`
	Result            ImageAnalysisResult `json:"result"`
	Issues            []Issue             `json:"issues,omitempty"`
}
