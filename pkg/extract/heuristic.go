package extract

import (
	"fmt"
	"iter"
	"strings"

	"missioncontrol-backend/internal/task/domain"
)

// Keyword tables for the heuristic matcher. A segment becomes a task
// candidate only when it contains an action word AND an intent marker.
var (
	actionWords = []string{
		"follow up", "create", "update", "review", "implement", "schedule",
		"send", "call", "email", "document", "setup", "configure",
	}
	intentMarkers = []string{"need to", "should", "will", "action"}

	highPriorityWords = []string{"urgent", "asap", "immediately", "critical"}
	lowPriorityWords  = []string{"later", "eventually", "when time"}

	tagVocabulary = []string{"budget", "dog", "ghl", "training", "review", "onboarding", "sales"}
)

const (
	maxTasksPerCall = 3
	maxTitleLength  = 80
	minSegmentChars = 10
)

// Segments splits a transcript into trimmed sentence candidates, ending on
// '.', '!' or '?'. Segments of minSegmentChars or fewer characters after
// trimming are dropped. The sequence is lazy and can be ranged repeatedly.
func Segments(transcript string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := transcript
		for len(rest) > 0 {
			end := strings.IndexAny(rest, ".!?")
			var segment string
			if end < 0 {
				segment, rest = rest, ""
			} else {
				segment, rest = rest[:end], rest[end+1:]
			}
			segment = strings.TrimSpace(segment)
			if len(segment) <= minSegmentChars {
				continue
			}
			if !yield(segment) {
				return
			}
		}
	}
}

// HeuristicExtractor is the keyword-based stand-in for a real model-backed
// extractor.
type HeuristicExtractor struct{}

func NewHeuristicExtractor() *HeuristicExtractor {
	return &HeuristicExtractor{}
}

// Extract scans the transcript sentence by sentence and builds at most
// maxTasksPerCall drafts. Drafts carry no ID or timestamps; the repository
// assigns those on create.
func (e *HeuristicExtractor) Extract(transcript string, call CallContext) []domain.Task {
	var drafts []domain.Task

	requester := InferRequester(call.Participants)

	for segment := range Segments(transcript) {
		lower := strings.ToLower(segment)

		if !containsAny(lower, actionWords) || !containsAny(lower, intentMarkers) {
			continue
		}

		title := segment
		if runes := []rune(title); len(runes) > maxTitleLength {
			title = string(runes[:maxTitleLength]) + "..."
		}

		description := "Extracted from call: " + segment

		drafts = append(drafts, domain.Task{
			Title:       title,
			Description: description,
			Status:      domain.StatusFromCalls,
			Priority:    inferPriority(lower),
			Assignee:    nil,
			Tags:        inferTags(call.Title, lower),
			Source:      domain.SourceFathomCall,
			SourceData: &domain.SourceData{
				CallTitle:         call.Title,
				CallDate:          call.Date,
				CallURL:           call.RecordingURL,
				TranscriptExcerpt: description,
				Participants:      call.Participants,
				RequestedBy:       requester,
			},
		})

		// Limit drafts per call to avoid spamming the board
		if len(drafts) >= maxTasksPerCall {
			break
		}
	}

	return drafts
}

// inferPriority checks the high-priority keywords first; low-priority
// keywords only apply when no high-priority keyword matched.
func inferPriority(lowerSegment string) domain.Priority {
	if containsAny(lowerSegment, highPriorityWords) {
		return domain.PriorityHigh
	}
	if containsAny(lowerSegment, lowPriorityWords) {
		return domain.PriorityLow
	}
	return domain.PriorityMedium
}

// inferTags intersects the tag vocabulary against the call title words and
// the segment text. Each tag appears at most once, in vocabulary order.
func inferTags(callTitle, lowerSegment string) domain.StringArray {
	callWords := strings.Fields(strings.ToLower(callTitle))

	tags := domain.StringArray{}
	for _, tag := range tagVocabulary {
		inTitle := false
		for _, word := range callWords {
			if strings.Contains(word, tag) {
				inTitle = true
				break
			}
		}
		if inTitle || strings.Contains(lowerSegment, tag) {
			tags = append(tags, tag)
		}
	}
	return tags
}

// InferRequester resolves who asked for the work from the call participant
// list: any participant matching dylan or rich resolves to "Dylan",
// everything else (including an empty list) to "Team".
func InferRequester(participants []string) string {
	for _, p := range participants {
		lower := strings.ToLower(p)
		if strings.Contains(lower, "dylan") || strings.Contains(lower, "rich") {
			return "Dylan"
		}
	}
	return "Team"
}

// CoerceParticipants flattens a raw participant list from a webhook payload
// into plain strings. Entries may be strings or objects carrying a name or
// email; anything else is stringified best-effort, never rejected.
func CoerceParticipants(raw []interface{}) []string {
	participants := make([]string, 0, len(raw))
	for _, entry := range raw {
		switch v := entry.(type) {
		case string:
			participants = append(participants, v)
		case map[string]interface{}:
			if name, ok := v["name"].(string); ok && name != "" {
				participants = append(participants, name)
			} else if email, ok := v["email"].(string); ok && email != "" {
				participants = append(participants, email)
			} else {
				participants = append(participants, fmt.Sprintf("%v", v))
			}
		default:
			participants = append(participants, fmt.Sprintf("%v", v))
		}
	}
	return participants
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
