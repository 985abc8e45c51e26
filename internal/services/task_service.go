package services

import (
	"errors"
	"fmt"

	"github.com/clientdesk/assignment-api/internal/models"
	"github.com/clientdesk/assignment-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

var validTaskStatuses = map[models.TaskStatus]struct{}{
	models.TaskStatusPending:    {},
	models.TaskStatusInProgress: {},
	models.TaskStatusCompleted:  {},
	models.TaskStatusCancelled:  {},
	models.TaskStatusQCApproved: {},
}

// TaskService handles task reads and the minimal status/assignee updates the
// dashboard needs. Task creation belongs to onboarding and template syncs.
type TaskService struct {
	taskRepo       repository.TaskRepository
	assignmentRepo repository.AssignmentRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, assignmentRepo repository.AssignmentRepository) *TaskService {
	return &TaskService{
		taskRepo:       taskRepo,
		assignmentRepo: assignmentRepo,
	}
}

// ListTasks lists an assignment's tasks newest first, optionally by status
func (s *TaskService) ListTasks(assignmentID uint64, status *models.TaskStatus) ([]models.Task, error) {
	if _, err := s.assignmentRepo.FindByID(assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}

	if status != nil {
		if _, ok := validTaskStatuses[*status]; !ok {
			return nil, ErrInvalidTaskStatus
		}
	}

	tasks, err := s.taskRepo.ListByAssignment(assignmentID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	AssigneeID *uint64
}

// UpdateTask updates a task's status, priority or assignee
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Status != nil {
		if _, ok := validTaskStatuses[*input.Status]; !ok {
			return nil, ErrInvalidTaskStatus
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.AssigneeID != nil {
		task.AssigneeID = input.AssigneeID
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Assignee", "Category", "SiteAsset")
}
