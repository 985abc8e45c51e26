package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/clientdesk/assignment-api/internal/dto"
	apierrors "github.com/clientdesk/assignment-api/internal/errors"
	"github.com/clientdesk/assignment-api/internal/models"
	"github.com/clientdesk/assignment-api/internal/services"
	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks returns an assignment's tasks newest first
func (h *TaskHandler) ListTasks(c *gin.Context) {
	assignmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid assignment id")
		return
	}

	var status *models.TaskStatus
	if raw := c.Query("status"); raw != "" {
		s := models.TaskStatus(raw)
		status = &s
	}

	tasks, err := h.taskService.ListTasks(assignmentID, status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAssignmentNotFound):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrInvalidTaskStatus):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to fetch tasks")
		}
		return
	}

	taskDTOs := make([]dto.TaskDTO, 0, len(tasks))
	for _, task := range tasks {
		taskDTOs = append(taskDTOs, dto.ToTaskDTO(task))
	}

	c.JSON(http.StatusOK, gin.H{"tasks": taskDTOs})
}

// UpdateTask updates a task's status, priority or assignee
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task id")
		return
	}

	type UpdateTaskRequest struct {
		Status     *models.TaskStatus   `json:"status"`
		Priority   *models.TaskPriority `json:"priority"`
		AssigneeID *uint64              `json:"assignee_id"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	task, err := h.taskService.UpdateTask(id, services.UpdateTaskInput{
		Status:     req.Status,
		Priority:   req.Priority,
		AssigneeID: req.AssigneeID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrInvalidTaskStatus):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to update task")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}
