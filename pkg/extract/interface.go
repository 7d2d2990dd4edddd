package extract

import "missioncontrol-backend/internal/task/domain"

// CallContext carries the call metadata that accompanies a transcript.
type CallContext struct {
	Title        string
	Date         string
	RecordingURL string
	Participants []string
}

// Extractor turns a call transcript into task drafts. Implement this
// interface to add new extraction providers; the heuristic keyword matcher
// is the only provider today, and a model-backed one can replace it without
// touching ingestion or persistence.
type Extractor interface {
	Extract(transcript string, call CallContext) []domain.Task
}
