package usecase

import (
	"log"
	"time"

	"missioncontrol-backend/internal/task/domain"
	"missioncontrol-backend/internal/task/repository"
	"missioncontrol-backend/pkg/extract"
)

// taskUsecase implements TaskUsecase
type taskUsecase struct {
	taskRepo  repository.TaskRepository
	extractor extract.Extractor
	now       func() time.Time
}

// NewTaskUsecase creates a new instance of taskUsecase
func NewTaskUsecase(taskRepo repository.TaskRepository, extractor extract.Extractor) TaskUsecase {
	return &taskUsecase{
		taskRepo:  taskRepo,
		extractor: extractor,
		now:       time.Now,
	}
}

func (u *taskUsecase) GetTasks() ([]*domain.Task, error) {
	return u.taskRepo.FindAll()
}

func (u *taskUsecase) CreateTask(req CreateTaskRequest) (*domain.Task, error) {
	status := domain.Status(req.Status)
	if req.Status == "" {
		status = domain.StatusTodo
	}
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	source := domain.Source(req.Source)
	if req.Source == "" {
		source = domain.SourceManual
	}

	tags := domain.StringArray{}
	if req.Tags != nil {
		tags = domain.StringArray(req.Tags)
	}

	task := &domain.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    parsePriority(req.Priority),
		Assignee:    req.Assignee,
		DueDate:     parseDate(req.DueDate),
		Tags:        tags,
		Source:      source,
	}

	if status.IsCompletion() {
		now := u.now()
		task.CompletedAt = &now
	}

	if err := u.taskRepo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) UpdateTask(id string, updates TaskUpdateRequest) (*domain.Task, error) {
	task, err := u.taskRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}

	if updates.Title != nil {
		task.Title = *updates.Title
	}
	if updates.Description != nil {
		task.Description = *updates.Description
	}
	if updates.Priority != nil {
		task.Priority = parsePriority(*updates.Priority)
	}
	if updates.Assignee != nil {
		if *updates.Assignee == "" {
			task.Assignee = nil
		} else {
			task.Assignee = updates.Assignee
		}
	}
	if updates.DueDate != nil {
		if *updates.DueDate == "" {
			task.DueDate = nil
		} else {
			task.DueDate = parseDate(updates.DueDate)
		}
	}
	if updates.Tags != nil {
		task.Tags = domain.StringArray(updates.Tags)
	}
	if updates.Status != nil {
		target := domain.Status(*updates.Status)
		if !domain.ValidStatus(target) {
			return nil, domain.ErrInvalidStatus
		}
		applyTransition(task, target, u.now())
	}

	if err := u.taskRepo.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) TransitionStatus(id string, target domain.Status) (*domain.Task, error) {
	if !domain.ValidStatus(target) {
		return nil, domain.ErrInvalidStatus
	}

	task, err := u.taskRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}

	// Same-state drop: skip the write entirely
	if task.Status == target {
		return task, nil
	}

	applyTransition(task, target, u.now())

	if err := u.taskRepo.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) DeleteTask(id string) error {
	return u.taskRepo.Delete(id)
}

func (u *taskUsecase) IngestCall(payload CallPayload) (*IngestResult, error) {
	callTitle := payload.Title
	if callTitle == "" {
		callTitle = payload.Name
	}
	if callTitle == "" {
		callTitle = "Untitled Call"
	}

	callDate := payload.Date
	if callDate == "" {
		callDate = payload.CreatedAt
	}
	if callDate == "" {
		callDate = u.now().Format(time.RFC3339)
	}

	participants := extract.CoerceParticipants(payload.Participants)

	drafts := u.extractor.Extract(payload.Transcript, extract.CallContext{
		Title:        callTitle,
		Date:         callDate,
		RecordingURL: payload.RecordingURL,
		Participants: participants,
	})

	result := &IngestResult{
		CallTitle:    callTitle,
		CallDate:     callDate,
		Participants: participants,
		Extracted:    len(drafts),
	}

	// Each draft is persisted independently: one failed insert must not
	// abort the rest of the batch.
	for i := range drafts {
		draft := drafts[i]
		if err := u.taskRepo.Create(&draft); err != nil {
			log.Printf("[Ingest] Failed to save task %q: %v", draft.Title, err)
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Saved = append(result.Saved, &draft)
	}

	return result, nil
}

// applyTransition sets the target status and its mandated side effects on
// the task in memory; the caller persists everything in one write.
func applyTransition(task *domain.Task, target domain.Status, now time.Time) {
	task.Status = target

	switch {
	case target == domain.StatusCharlieQueue:
		assignee := domain.AssigneeCharlie
		task.Assignee = &assignee
	case target == domain.StatusDylanQueue:
		assignee := domain.AssigneeDylan
		task.Assignee = &assignee
	case target.IsCompletion():
		if task.CompletedAt == nil {
			task.CompletedAt = &now
		}
	}
}

func parsePriority(p string) domain.Priority {
	switch domain.Priority(p) {
	case domain.PriorityHigh:
		return domain.PriorityHigh
	case domain.PriorityLow:
		return domain.PriorityLow
	default:
		return domain.PriorityMedium
	}
}

// parseDate accepts RFC3339 timestamps or plain dates; anything else is
// treated as absent, matching the store's tolerance for sloppy webhooks.
func parseDate(raw *string) *time.Time {
	if raw == nil || *raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, *raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", *raw); err == nil {
		return &t
	}
	return nil
}
