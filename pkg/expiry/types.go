package expiry

import "time"

// Confidence qualifies how the extracted date was obtained. High means the
// date was anchored to an expiry keyword; anything else is low.
const (
	ConfidenceHigh = "high"
	ConfidenceLow  = "low"
)

// ExtractionResult is the outcome of scanning recognized label text for an
// expiry date. RawText carries the recognized text truncated for reporting.
type ExtractionResult struct {
	Success    bool       `json:"success"`
	Date       *time.Time `json:"expiry_date,omitempty"`
	Confidence string     `json:"confidence"`
	RawText    string     `json:"detected_text"`
}
