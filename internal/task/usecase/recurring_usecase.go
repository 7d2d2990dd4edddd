package usecase

import (
	"time"

	"missioncontrol-backend/internal/task/domain"
	"missioncontrol-backend/internal/task/repository"
)

// recurringTaskUsecase implements RecurringTaskUsecase
type recurringTaskUsecase struct {
	recurringRepo repository.RecurringTaskRepository
	now           func() time.Time
}

// NewRecurringTaskUsecase creates a new instance of recurringTaskUsecase
func NewRecurringTaskUsecase(recurringRepo repository.RecurringTaskRepository) RecurringTaskUsecase {
	return &recurringTaskUsecase{
		recurringRepo: recurringRepo,
		now:           time.Now,
	}
}

func (u *recurringTaskUsecase) GetRecurringTasks() ([]*domain.RecurringTask, error) {
	return u.recurringRepo.FindAll()
}

func (u *recurringTaskUsecase) CreateRecurringTask(req RecurringTaskRequest) (*domain.RecurringTask, error) {
	template := &domain.RecurringTask{
		Title:        req.Title,
		Description:  req.Description,
		Instructions: req.Instructions,
		Frequency:    parseFrequency(req.Frequency),
		Assignee:     req.Assignee,
		IsActive:     true,
	}
	if req.Schedule != nil {
		template.Schedule = *req.Schedule
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}

	if template.IsActive {
		next := template.NextRunAfter(u.now())
		template.NextRun = &next
	}

	if err := u.recurringRepo.Create(template); err != nil {
		return nil, err
	}
	return template, nil
}

func (u *recurringTaskUsecase) UpdateRecurringTask(id string, req RecurringTaskRequest) (*domain.RecurringTask, error) {
	template, err := u.recurringRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, domain.ErrRecurringNotFound
	}

	template.Title = req.Title
	template.Description = req.Description
	template.Instructions = req.Instructions
	template.Frequency = parseFrequency(req.Frequency)
	template.Assignee = req.Assignee
	if req.Schedule != nil {
		template.Schedule = *req.Schedule
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}

	// Schedule edits invalidate the previously computed slot
	if template.IsActive {
		next := template.NextRunAfter(u.now())
		template.NextRun = &next
	} else {
		template.NextRun = nil
	}

	if err := u.recurringRepo.Update(template); err != nil {
		return nil, err
	}
	return template, nil
}

func (u *recurringTaskUsecase) DeleteRecurringTask(id string) error {
	return u.recurringRepo.Delete(id)
}

func parseFrequency(f string) domain.Frequency {
	switch domain.Frequency(f) {
	case domain.FrequencyDaily:
		return domain.FrequencyDaily
	case domain.FrequencyMonthly:
		return domain.FrequencyMonthly
	default:
		return domain.FrequencyWeekly
	}
}
