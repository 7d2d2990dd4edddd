package usecase

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"missioncontrol-backend/internal/task/domain"
)

// fakeTaskRepo is an in-memory TaskRepository for usecase tests
type fakeTaskRepo struct {
	tasks      map[string]*domain.Task
	nextID     int
	updates    int
	failCreate func(task *domain.Task) error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[string]*domain.Task{}}
}

func (r *fakeTaskRepo) FindAll() ([]*domain.Task, error) {
	var tasks []*domain.Task
	for _, t := range r.tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (r *fakeTaskRepo) FindRecent(limit int) ([]*domain.Task, error) {
	tasks, _ := r.FindAll()
	if len(tasks) > limit {
		tasks = tasks[:limit]
	}
	return tasks, nil
}

func (r *fakeTaskRepo) FindByID(id string) (*domain.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	copied := *task
	return &copied, nil
}

func (r *fakeTaskRepo) Create(task *domain.Task) error {
	if r.failCreate != nil {
		if err := r.failCreate(task); err != nil {
			return err
		}
	}
	if task.ID == "" {
		r.nextID++
		task.ID = fmt.Sprintf("task-%d", r.nextID)
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	copied := *task
	r.tasks[task.ID] = &copied
	return nil
}

func (r *fakeTaskRepo) Update(task *domain.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return errors.New("row vanished")
	}
	r.updates++
	task.UpdatedAt = time.Now()
	copied := *task
	r.tasks[task.ID] = &copied
	return nil
}

func (r *fakeTaskRepo) Delete(id string) error {
	delete(r.tasks, id)
	return nil
}

// fakeRecurringRepo is an in-memory RecurringTaskRepository
type fakeRecurringRepo struct {
	templates map[string]*domain.RecurringTask
	nextID    int
}

func newFakeRecurringRepo() *fakeRecurringRepo {
	return &fakeRecurringRepo{templates: map[string]*domain.RecurringTask{}}
}

func (r *fakeRecurringRepo) FindAll() ([]*domain.RecurringTask, error) {
	var templates []*domain.RecurringTask
	for _, t := range r.templates {
		templates = append(templates, t)
	}
	return templates, nil
}

func (r *fakeRecurringRepo) FindByID(id string) (*domain.RecurringTask, error) {
	template, ok := r.templates[id]
	if !ok {
		return nil, nil
	}
	copied := *template
	return &copied, nil
}

func (r *fakeRecurringRepo) FindDue(now time.Time) ([]*domain.RecurringTask, error) {
	var due []*domain.RecurringTask
	for _, t := range r.templates {
		if t.IsActive && t.NextRun != nil && !t.NextRun.After(now) {
			due = append(due, t)
		}
	}
	return due, nil
}

func (r *fakeRecurringRepo) Create(template *domain.RecurringTask) error {
	if template.ID == "" {
		r.nextID++
		template.ID = fmt.Sprintf("recurring-%d", r.nextID)
	}
	now := time.Now()
	template.CreatedAt = now
	template.UpdatedAt = now
	copied := *template
	r.templates[template.ID] = &copied
	return nil
}

func (r *fakeRecurringRepo) Update(template *domain.RecurringTask) error {
	template.UpdatedAt = time.Now()
	copied := *template
	r.templates[template.ID] = &copied
	return nil
}

func (r *fakeRecurringRepo) Delete(id string) error {
	delete(r.templates, id)
	return nil
}
