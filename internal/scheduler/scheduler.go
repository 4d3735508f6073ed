package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Task is a named background job with a fixed interval.
type Task struct {
	Name        string
	Description string
	Interval    time.Duration
	Handler     func() error
}

// Service owns the process's background sweeps. Jobs run in singleton
// mode so an interval shorter than a sweep's worst case never stacks a
// second run on top of a still-running one. Start and Stop are tied to
// the application lifecycle.
type Service struct {
	scheduler *gocron.Scheduler
	tasks     map[string]Task
}

func New() *Service {
	return &Service{
		scheduler: gocron.NewScheduler(time.UTC),
		tasks:     make(map[string]Task),
	}
}

// Register schedules a task. Duplicate names are rejected.
func (s *Service) Register(task Task) error {
	if _, exists := s.tasks[task.Name]; exists {
		return fmt.Errorf("task %q already registered", task.Name)
	}
	s.tasks[task.Name] = task

	job, err := s.scheduler.Every(task.Interval).SingletonMode().Do(func() {
		err := task.Handler()
		if err != nil {
			slog.Error("scheduled task failed", "task", task.Name, "error", err)
			return
		}
		slog.Debug("scheduled task completed", "task", task.Name)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule task %q: %w", task.Name, err)
	}
	job.Tag(task.Name)

	slog.Info("registered scheduled task", "task", task.Name, "interval", task.Interval)
	return nil
}

// RunNow executes a registered task immediately, outside its schedule.
func (s *Service) RunNow(name string) error {
	task, exists := s.tasks[name]
	if !exists {
		return fmt.Errorf("task %q not found", name)
	}
	return task.Handler()
}

// Start begins running all registered tasks asynchronously.
func (s *Service) Start() {
	slog.Info("starting scheduler", "tasks", len(s.tasks))
	s.scheduler.StartAsync()
}

// Stop halts all scheduled jobs. Running jobs finish their current sweep.
func (s *Service) Stop() {
	slog.Info("stopping scheduler")
	s.scheduler.Stop()
}
