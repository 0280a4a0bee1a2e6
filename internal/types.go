package internal

import "time"

// TranslationRequest is one completed call to the translation model, as
// recorded in the request log.
type TranslationRequest struct {
	ID          string    `json:"id"`
	SourceText  string    `json:"source_text"`
	SourceLang  string    `json:"source_lang"`
	TargetLang  string    `json:"target_lang"`
	Translation string    `json:"translation"`
	ServiceUsed string    `json:"service_used"`
	LatencyMs   int       `json:"latency_ms"`
	Timestamp   time.Time `json:"timestamp"`
}
