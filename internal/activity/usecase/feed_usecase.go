package usecase

import (
	"fmt"
	"log"
	"sort"
	"time"

	activitydomain "missioncontrol-backend/internal/activity/domain"
	taskdomain "missioncontrol-backend/internal/task/domain"
	taskrepo "missioncontrol-backend/internal/task/repository"
	usagerepo "missioncontrol-backend/internal/usage/repository"
)

const (
	// taskWindow bounds how many recently-updated tasks feed the derivation
	taskWindow = 50
	// snapshotWindow bounds how many usage snapshots contribute report events
	snapshotWindow = 5
	// feedCap is the maximum number of events returned to the client
	feedCap = 30
)

// FeedUsecase reconstructs the activity stream from current task state.
// There is no event log: only creation and completion survive in the
// records, so intermediate transitions are invisible by design of the data
// model (see DESIGN.md).
type FeedUsecase interface {
	// BuildFeed returns the ranked, time-descending event list. It never
	// returns an error to the caller: a store outage degrades to an empty
	// or partial feed so the dashboard keeps rendering.
	BuildFeed() []*activitydomain.Event
}

// feedUsecase implements FeedUsecase
type feedUsecase struct {
	taskRepo     taskrepo.TaskRepository
	snapshotRepo usagerepo.UsageSnapshotRepository
	now          func() time.Time
}

// NewFeedUsecase creates a new instance of feedUsecase. snapshotRepo may be
// nil when usage reporting is not deployed.
func NewFeedUsecase(taskRepo taskrepo.TaskRepository, snapshotRepo usagerepo.UsageSnapshotRepository) FeedUsecase {
	return &feedUsecase{
		taskRepo:     taskRepo,
		snapshotRepo: snapshotRepo,
		now:          time.Now,
	}
}

func (u *feedUsecase) BuildFeed() []*activitydomain.Event {
	events := []*activitydomain.Event{}

	tasks, err := u.taskRepo.FindRecent(taskWindow)
	if err != nil {
		log.Printf("[ActivityFeed] Error reading tasks, returning empty feed: %v", err)
		return events
	}

	for _, task := range tasks {
		events = append(events, taskEvents(task)...)
	}

	if u.snapshotRepo != nil {
		snapshots, err := u.snapshotRepo.FindRecent(snapshotWindow)
		if err != nil {
			// Usage reporting is a secondary source; its outage never
			// blanks the feed
			log.Printf("[ActivityFeed] Error reading usage snapshots, continuing without: %v", err)
		} else {
			for _, snap := range snapshots {
				description := snap.Summary
				if description == "" {
					description = "Weekly usage report generated"
				}
				events = append(events, &activitydomain.Event{
					ID:          "usage-" + snap.ID,
					Icon:        "📊",
					Description: description,
					Type:        activitydomain.TypeReport,
					Color:       "bg-purple-500/20 text-purple-400",
					At:          snap.CreatedAt,
				})
			}
		}
	}

	// Stable keeps insertion order for equal timestamps
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].At.After(events[j].At)
	})

	if len(events) > feedCap {
		events = events[:feedCap]
	}

	now := u.now()
	for _, e := range events {
		e.Time = e.At.Format(time.RFC3339)
		e.TimeRel = RelativeTime(e.At, now)
	}

	return events
}

// taskEvents synthesizes the zero-to-two feed entries a task record can
// still testify to: its completion (when timestamped) and its creation.
func taskEvents(task *taskdomain.Task) []*activitydomain.Event {
	var events []*activitydomain.Event

	if task.CompletedAt != nil {
		e := &activitydomain.Event{
			ID:          "completed-" + task.ID,
			TaskID:      task.ID,
			Icon:        "✅",
			Description: "Completed: " + task.Title,
			Type:        activitydomain.TypeCompleted,
			Color:       "bg-green-500/20 text-green-400",
			At:          *task.CompletedAt,
		}
		enrich(e, task)
		events = append(events, e)
	}

	creation := &activitydomain.Event{
		ID:     "created-" + task.ID,
		TaskID: task.ID,
		At:     task.CreatedAt,
	}
	switch task.Source {
	case taskdomain.SourceFathomCall:
		creation.Icon = "📞"
		creation.Description = "Extracted from Fathom call: " + task.Title
		creation.Type = activitydomain.TypeFromCall
		creation.Color = "bg-cyan-500/20 text-cyan-400"
	case taskdomain.SourceManual:
		creation.Icon = "📝"
		creation.Description = "Task created: " + task.Title
		creation.Type = activitydomain.TypeTask
		creation.Color = "bg-blue-500/20 text-blue-400"
	default:
		creation.Icon = "🔁"
		creation.Description = "Recurring task: " + task.Title
		creation.Type = activitydomain.TypeRecurring
		creation.Color = "bg-amber-500/20 text-amber-400"
	}
	enrich(creation, task)
	events = append(events, creation)

	return events
}

// enrich copies display fields from the task's provenance payload onto the
// event. Requester falls back from the recorded requester to the dylan
// assignee to "Team".
func enrich(e *activitydomain.Event, task *taskdomain.Task) {
	if task.Assignee != nil {
		e.Assignee = *task.Assignee
	}

	switch {
	case task.SourceData != nil && task.SourceData.RequestedBy != "":
		e.Requester = task.SourceData.RequestedBy
	case task.Assignee != nil && *task.Assignee == taskdomain.AssigneeDylan:
		e.Requester = "Dylan"
	default:
		e.Requester = "Team"
	}

	if task.SourceData == nil {
		return
	}
	e.CallTitle = task.SourceData.CallTitle
	e.CallURL = task.SourceData.CallURL
	e.SlackURL = task.SourceData.SlackURL
	e.DocURL = task.SourceData.DocURL
	e.Participants = task.SourceData.Participants
}

// RelativeTime renders a timestamp relative to now, switching to a calendar
// date once the delta reaches a week.
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)

	minutes := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))

	switch {
	case minutes < 1:
		return "just now"
	case minutes < 60:
		return fmt.Sprintf("%dm ago", minutes)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	default:
		return t.Format("Jan 2, 2006")
	}
}
