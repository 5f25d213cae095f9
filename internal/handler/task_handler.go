package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pomodoroclock/backend/internal/model"
	"pomodoroclock/backend/internal/service"
)

type TaskHandler struct {
	taskService *service.TaskService
}

type createTaskRequest struct {
	Title             *string `json:"title" binding:"required,min=1,max=100"`
	ExpectedPomodoros *int    `json:"expectedPomodoros" binding:"omitempty,min=1"`
	CompletedCycles   *int    `json:"completedCycles" binding:"omitempty,min=0"`
	CompletedStatus   *bool   `json:"completedStatus"`
}

type updateTaskRequest struct {
	Title             *string `json:"title" binding:"omitempty,min=1,max=100"`
	ListID            *int    `json:"listId" binding:"omitempty,min=1"`
	ExpectedPomodoros *int    `json:"expectedPomodoros" binding:"omitempty,min=1"`
	CompletedCycles   *int    `json:"completedCycles" binding:"omitempty,min=0"`
	CompletedStatus   *bool   `json:"completedStatus"`
}

type removeTasksRequest struct {
	IDs []int `json:"ids" binding:"required"`
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) Create(c *gin.Context) {
	listID, ok := intParam(c, "listId")
	if !ok {
		return
	}

	var req createTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, apiErr := h.taskService.Add(c.Request.Context(), listID, model.NewTask{
		Title:             req.Title,
		ExpectedPomodoros: req.ExpectedPomodoros,
		CompletedCycles:   req.CompletedCycles,
		CompletedStatus:   req.CompletedStatus,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": task})
}

func (h *TaskHandler) List(c *gin.Context) {
	listID, ok := intParam(c, "listId")
	if !ok {
		return
	}

	tasks, apiErr := h.taskService.GetByList(c.Request.Context(), listID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := intParam(c, "taskId")
	if !ok {
		return
	}

	task, apiErr := h.taskService.Get(c.Request.Context(), id)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := intParam(c, "taskId")
	if !ok {
		return
	}

	var req updateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, apiErr := h.taskService.Update(c.Request.Context(), id, model.TaskPatch{
		Title:             req.Title,
		ListID:            req.ListID,
		ExpectedPomodoros: req.ExpectedPomodoros,
		CompletedCycles:   req.CompletedCycles,
		CompletedStatus:   req.CompletedStatus,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (h *TaskHandler) IncrementCycles(c *gin.Context) {
	id, ok := intParam(c, "taskId")
	if !ok {
		return
	}

	task, apiErr := h.taskService.IncrementCycles(c.Request.Context(), id)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := intParam(c, "taskId")
	if !ok {
		return
	}

	if apiErr := h.taskService.Remove(c.Request.Context(), id); apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// RemoveGroup deletes the tasks listed in {ids}: {deleted: count}.
func (h *TaskHandler) RemoveGroup(c *gin.Context) {
	var req removeTasksRequest
	if !bindJSON(c, &req) {
		return
	}

	removed, apiErr := h.taskService.RemoveGroup(c.Request.Context(), req.IDs)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": removed})
}
