package usecase

import (
	"errors"
	"fmt"
	"testing"
	"time"

	activitydomain "missioncontrol-backend/internal/activity/domain"
	taskdomain "missioncontrol-backend/internal/task/domain"
	usagedomain "missioncontrol-backend/internal/usage/domain"
)

type stubTaskRepo struct {
	tasks []*taskdomain.Task
	err   error
}

func (r *stubTaskRepo) FindAll() ([]*taskdomain.Task, error) { return r.tasks, r.err }
func (r *stubTaskRepo) FindRecent(limit int) ([]*taskdomain.Task, error) {
	if r.err != nil {
		return nil, r.err
	}
	if len(r.tasks) > limit {
		return r.tasks[:limit], nil
	}
	return r.tasks, nil
}
func (r *stubTaskRepo) FindByID(id string) (*taskdomain.Task, error) { return nil, nil }
func (r *stubTaskRepo) Create(task *taskdomain.Task) error           { return nil }
func (r *stubTaskRepo) Update(task *taskdomain.Task) error           { return nil }
func (r *stubTaskRepo) Delete(id string) error                       { return nil }

type stubSnapshotRepo struct {
	snapshots []*usagedomain.UsageSnapshot
	err       error
}

func (r *stubSnapshotRepo) FindRecent(limit int) ([]*usagedomain.UsageSnapshot, error) {
	if r.err != nil {
		return nil, r.err
	}
	if len(r.snapshots) > limit {
		return r.snapshots[:limit], nil
	}
	return r.snapshots, nil
}
func (r *stubSnapshotRepo) Create(snapshot *usagedomain.UsageSnapshot) error { return nil }

func newFeed(tasks *stubTaskRepo, snaps *stubSnapshotRepo) *feedUsecase {
	var u FeedUsecase
	if snaps == nil {
		u = NewFeedUsecase(tasks, nil)
	} else {
		u = NewFeedUsecase(tasks, snaps)
	}
	return u.(*feedUsecase)
}

func taskAt(id string, source taskdomain.Source, created time.Time, completed *time.Time) *taskdomain.Task {
	return &taskdomain.Task{
		ID:          id,
		Title:       "Task " + id,
		Status:      taskdomain.StatusTodo,
		Source:      source,
		CreatedAt:   created,
		UpdatedAt:   created,
		CompletedAt: completed,
	}
}

func TestBuildFeedOrdering(t *testing.T) {
	base := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	done := base.Add(3 * time.Hour)

	tasks := &stubTaskRepo{tasks: []*taskdomain.Task{
		taskAt("a", taskdomain.SourceManual, base.Add(1*time.Hour), nil),
		taskAt("b", taskdomain.SourceFathomCall, base, &done),
		taskAt("c", taskdomain.SourceManual, base.Add(2*time.Hour), nil),
	}}

	u := newFeed(tasks, nil)
	events := u.BuildFeed()

	if len(events) != 4 {
		t.Fatalf("Expected 4 events (3 creations + 1 completion), got %d", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].At.After(events[i-1].At) {
			t.Errorf("Events out of order at %d: %v before %v", i, events[i-1].At, events[i].At)
		}
	}
	// The completion at base+3h outranks every creation
	if events[0].ID != "completed-b" {
		t.Errorf("Expected completion event first, got %s", events[0].ID)
	}
}

func TestBuildFeedEventShapes(t *testing.T) {
	created := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	completed := created.Add(time.Hour)

	tasks := &stubTaskRepo{tasks: []*taskdomain.Task{
		taskAt("call", taskdomain.SourceFathomCall, created, &completed),
		taskAt("manual", taskdomain.SourceManual, created, nil),
		taskAt("recurring", taskdomain.SourceRecurring, created, nil),
	}}

	events := newFeed(tasks, nil).BuildFeed()

	byID := map[string]*activitydomain.Event{}
	for _, e := range events {
		byID[e.ID] = e
	}

	if e := byID["completed-call"]; e == nil || e.Type != activitydomain.TypeCompleted || e.Icon != "✅" {
		t.Errorf("Unexpected completion event: %+v", e)
	}
	if e := byID["created-call"]; e == nil || e.Type != activitydomain.TypeFromCall || e.Icon != "📞" {
		t.Errorf("Unexpected call creation event: %+v", e)
	}
	if e := byID["created-manual"]; e == nil || e.Type != activitydomain.TypeTask || e.Icon != "📝" {
		t.Errorf("Unexpected manual creation event: %+v", e)
	}
	if e := byID["created-recurring"]; e == nil || e.Type != activitydomain.TypeRecurring {
		t.Errorf("Unexpected recurring creation event: %+v", e)
	}
}

func TestBuildFeedCap(t *testing.T) {
	base := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	var list []*taskdomain.Task
	for i := 0; i < 25; i++ {
		created := base.Add(time.Duration(i) * time.Minute)
		done := created.Add(30 * time.Second)
		list = append(list, taskAt(fmt.Sprintf("t%d", i), taskdomain.SourceManual, created, &done))
	}

	// 25 tasks, two events each: the cap trims 50 candidates to 30
	events := newFeed(&stubTaskRepo{tasks: list}, nil).BuildFeed()
	if len(events) != feedCap {
		t.Fatalf("Expected feed capped at %d, got %d", feedCap, len(events))
	}
}

func TestBuildFeedDegradesOnTaskError(t *testing.T) {
	u := newFeed(&stubTaskRepo{err: errors.New("store unreachable")}, nil)

	events := u.BuildFeed()
	if events == nil {
		t.Fatal("Expected empty slice, not nil")
	}
	if len(events) != 0 {
		t.Errorf("Expected empty feed on store error, got %d events", len(events))
	}
}

func TestBuildFeedIgnoresSnapshotError(t *testing.T) {
	created := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	tasks := &stubTaskRepo{tasks: []*taskdomain.Task{
		taskAt("a", taskdomain.SourceManual, created, nil),
	}}
	snaps := &stubSnapshotRepo{err: errors.New("table missing")}

	events := newFeed(tasks, snaps).BuildFeed()
	if len(events) != 1 {
		t.Errorf("Expected task events to survive snapshot outage, got %d", len(events))
	}
}

func TestBuildFeedIncludesSnapshotEvents(t *testing.T) {
	created := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	tasks := &stubTaskRepo{tasks: []*taskdomain.Task{
		taskAt("a", taskdomain.SourceManual, created, nil),
	}}
	snaps := &stubSnapshotRepo{snapshots: []*usagedomain.UsageSnapshot{
		{ID: "s1", Summary: "Weekly report: 1.2M tokens", CreatedAt: created.Add(time.Hour)},
		{ID: "s2", CreatedAt: created.Add(2 * time.Hour)},
	}}

	events := newFeed(tasks, snaps).BuildFeed()
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	if events[0].ID != "usage-s2" || events[0].Description != "Weekly usage report generated" {
		t.Errorf("Unexpected first event: %+v", events[0])
	}
	if events[1].ID != "usage-s1" || events[1].Description != "Weekly report: 1.2M tokens" {
		t.Errorf("Unexpected second event: %+v", events[1])
	}
	if events[0].Type != activitydomain.TypeReport {
		t.Errorf("Expected Report type, got %s", events[0].Type)
	}
}

func TestBuildFeedRequesterFallback(t *testing.T) {
	created := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	dylan := taskdomain.AssigneeDylan
	charlie := taskdomain.AssigneeCharlie

	explicit := taskAt("explicit", taskdomain.SourceFathomCall, created, nil)
	explicit.SourceData = &taskdomain.SourceData{RequestedBy: "Sarah"}

	viaAssignee := taskAt("assignee", taskdomain.SourceManual, created, nil)
	viaAssignee.Assignee = &dylan

	fallback := taskAt("fallback", taskdomain.SourceManual, created, nil)
	fallback.Assignee = &charlie

	events := newFeed(&stubTaskRepo{tasks: []*taskdomain.Task{explicit, viaAssignee, fallback}}, nil).BuildFeed()

	byID := map[string]*activitydomain.Event{}
	for _, e := range events {
		byID[e.ID] = e
	}

	if got := byID["created-explicit"].Requester; got != "Sarah" {
		t.Errorf("Expected explicit requester Sarah, got %q", got)
	}
	if got := byID["created-assignee"].Requester; got != "Dylan" {
		t.Errorf("Expected dylan assignee to imply requester Dylan, got %q", got)
	}
	if got := byID["created-fallback"].Requester; got != "Team" {
		t.Errorf("Expected Team fallback, got %q", got)
	}
}

func TestBuildFeedCopiesEnrichment(t *testing.T) {
	created := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

	task := taskAt("rich", taskdomain.SourceFathomCall, created, nil)
	task.SourceData = &taskdomain.SourceData{
		CallTitle:    "Budget Review",
		CallURL:      "https://app.fathom.video/calls/abc123",
		SlackURL:     "https://slack.example.com/archives/C1/p1",
		DocURL:       "https://docs.example.com/sop",
		Participants: []string{"Dylan Rich", "Sarah Johnson"},
	}

	events := newFeed(&stubTaskRepo{tasks: []*taskdomain.Task{task}}, nil).BuildFeed()
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}

	e := events[0]
	if e.CallTitle != "Budget Review" || e.CallURL != "https://app.fathom.video/calls/abc123" {
		t.Errorf("Call enrichment missing: %+v", e)
	}
	if e.SlackURL == "" || e.DocURL == "" || len(e.Participants) != 2 {
		t.Errorf("Link/participant enrichment missing: %+v", e)
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		delta time.Duration
		want  string
	}{
		{"30 seconds", 30 * time.Second, "just now"},
		{"90 seconds", 90 * time.Second, "1m ago"},
		{"30 minutes", 30 * time.Minute, "30m ago"},
		{"59 minutes", 59 * time.Minute, "59m ago"},
		{"2 hours", 2 * time.Hour, "2h ago"},
		{"25 hours", 25 * time.Hour, "1d ago"},
		{"6 days", 6 * 24 * time.Hour, "6d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelativeTime(now.Add(-tt.delta), now); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}

	// Past a week the label switches to a calendar date
	got := RelativeTime(now.Add(-8*24*time.Hour), now)
	if got != "Feb 2, 2026" {
		t.Errorf("Expected calendar date Feb 2, 2026, got %q", got)
	}
}
