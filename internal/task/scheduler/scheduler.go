package scheduler

import (
	"log"
	"time"

	"missioncontrol-backend/internal/task/domain"
	"missioncontrol-backend/internal/task/repository"
)

// RecurringTaskScheduler materializes tasks from due recurring templates
type RecurringTaskScheduler struct {
	taskRepo      repository.TaskRepository
	recurringRepo repository.RecurringTaskRepository
	interval      time.Duration
	stopChan      chan struct{}
}

// NewRecurringTaskScheduler creates a new scheduler
func NewRecurringTaskScheduler(
	taskRepo repository.TaskRepository,
	recurringRepo repository.RecurringTaskRepository,
	interval time.Duration,
) *RecurringTaskScheduler {
	return &RecurringTaskScheduler{
		taskRepo:      taskRepo,
		recurringRepo: recurringRepo,
		interval:      interval,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (s *RecurringTaskScheduler) Start() {
	log.Printf("[Scheduler] Starting recurring task scheduler (interval: %s)", s.interval)

	go func() {
		// Run immediately on start
		s.runDueTemplates()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runDueTemplates()
			case <-s.stopChan:
				log.Println("[Scheduler] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler
func (s *RecurringTaskScheduler) Stop() {
	close(s.stopChan)
}

// runDueTemplates finds active templates whose slot has passed and turns
// each into a concrete task on the board
func (s *RecurringTaskScheduler) runDueTemplates() {
	now := time.Now()

	templates, err := s.recurringRepo.FindDue(now)
	if err != nil {
		log.Printf("[Scheduler] Error finding due templates: %v", err)
		return
	}

	if len(templates) == 0 {
		return
	}

	log.Printf("[Scheduler] Found %d due recurring templates", len(templates))

	for _, template := range templates {
		task := Materialize(template, now)

		if err := s.taskRepo.Create(task); err != nil {
			log.Printf("[Scheduler] Error materializing template %s: %v", template.ID, err)
			continue
		}

		lastRun := now
		nextRun := template.NextRunAfter(now)
		template.LastRun = &lastRun
		template.NextRun = &nextRun
		if err := s.recurringRepo.Update(template); err != nil {
			log.Printf("[Scheduler] Error advancing template %s: %v", template.ID, err)
			continue
		}

		log.Printf("[Scheduler] Materialized task %q from template %s (next run %s)",
			task.Title, template.ID, nextRun.Format(time.RFC3339))
	}
}

// Materialize builds the concrete task a template produces on one run.
// The task lands directly in its assignee's queue.
func Materialize(template *domain.RecurringTask, now time.Time) *domain.Task {
	status := domain.StatusTodo
	var assignee *string
	switch template.Assignee {
	case domain.AssigneeCharlie:
		status = domain.StatusCharlieQueue
		a := domain.AssigneeCharlie
		assignee = &a
	case domain.AssigneeDylan:
		status = domain.StatusDylanQueue
		a := domain.AssigneeDylan
		assignee = &a
	}

	description := template.Description
	if template.Instructions != "" {
		if description != "" {
			description += "\n\n"
		}
		description += template.Instructions
	}

	return &domain.Task{
		Title:       template.Title,
		Description: description,
		Status:      status,
		Priority:    domain.PriorityMedium,
		Assignee:    assignee,
		Tags:        domain.StringArray{},
		Source:      domain.SourceRecurring,
		SourceData: &domain.SourceData{
			RecurringTaskID: template.ID,
			RequestedBy:     "Team",
		},
	}
}
