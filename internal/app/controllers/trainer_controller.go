package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/trainerapi/internal/app/models"
	"github.com/yigit/trainerapi/internal/app/models/dto"
	"github.com/yigit/trainerapi/internal/app/services"
	"github.com/yigit/trainerapi/internal/middleware"
)

// TrainerController handles trainer related operations
type TrainerController struct {
	trainerService services.TrainerService
}

// NewTrainerController creates a new TrainerController
func NewTrainerController(trainerService services.TrainerService) *TrainerController {
	return &TrainerController{
		trainerService: trainerService,
	}
}

// GetAllTrainers lists trainers
// @Summary List trainers
// @Tags trainers
// @Produce json
// @Param name query string false "Name substring, case-insensitive"
// @Param gender query string false "Gender substring, case-insensitive"
// @Success 200 {object} dto.APIResponse{data=[]dto.TrainerResponse}
// @Router /trainer [get]
func (c *TrainerController) GetAllTrainers(ctx *gin.Context) {
	filter := models.TrainerFilter{
		Name:   ctx.Query("name"),
		Gender: ctx.Query("gender"),
	}

	trainers, err := c.trainerService.ListTrainers(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(trainers))
}

// GetTrainerByID retrieves a trainer with its pokemon count
// @Summary Get trainer by ID
// @Tags trainers
// @Produce json
// @Param id path int true "Trainer ID"
// @Success 200 {object} dto.APIResponse{data=dto.TrainerResponse}
// @Failure 404 {object} dto.ErrorResponse "Trainer not found"
// @Router /trainer/{id} [get]
func (c *TrainerController) GetTrainerByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	trainer, err := c.trainerService.GetTrainer(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(trainer))
}

// CreateTrainer handles trainer creation
// @Summary Create a trainer
// @Tags trainers
// @Accept json
// @Produce json
// @Param request body dto.TrainerRequest true "Trainer"
// @Success 201 {object} dto.APIResponse{data=dto.TrainerResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /trainer [post]
func (c *TrainerController) CreateTrainer(ctx *gin.Context) {
	var req dto.TrainerRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	trainer, err := c.trainerService.CreateTrainer(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(trainer))
}

// UpdateTrainer updates a trainer's scalar fields
// @Summary Update a trainer
// @Tags trainers
// @Accept json
// @Param id path int true "Trainer ID"
// @Param request body dto.TrainerRequest true "Trainer, trainerId must equal the path ID"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse "ID mismatch or invalid data"
// @Failure 404 {object} dto.ErrorResponse "Trainer not found"
// @Router /trainer/{id} [put]
func (c *TrainerController) UpdateTrainer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.TrainerRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.trainerService.UpdateTrainer(ctx.Request.Context(), id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// DeleteTrainer removes a trainer and its pokemon
// @Summary Delete a trainer
// @Tags trainers
// @Param id path int true "Trainer ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Trainer not found"
// @Router /trainer/{id} [delete]
func (c *TrainerController) DeleteTrainer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.trainerService.DeleteTrainer(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
