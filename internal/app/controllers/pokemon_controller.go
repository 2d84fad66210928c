package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/trainerapi/internal/app/models"
	"github.com/yigit/trainerapi/internal/app/models/dto"
	"github.com/yigit/trainerapi/internal/app/services"
	"github.com/yigit/trainerapi/internal/middleware"
	"github.com/yigit/trainerapi/internal/pkg/apperrors"
)

// PokemonController handles pokemon related operations
type PokemonController struct {
	pokemonService services.PokemonService
}

// NewPokemonController creates a new PokemonController
func NewPokemonController(pokemonService services.PokemonService) *PokemonController {
	return &PokemonController{
		pokemonService: pokemonService,
	}
}

// GetAllPokemon lists pokemon
// @Summary List pokemon
// @Tags pokemon
// @Produce json
// @Param type query string false "Exact type, any casing (e.g. fire)"
// @Param name query string false "Species substring, case-insensitive"
// @Success 200 {object} dto.APIResponse{data=[]dto.PokemonResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown type"
// @Failure 404 {object} dto.ErrorResponse "No pokemon matched"
// @Router /pokemon [get]
func (c *PokemonController) GetAllPokemon(ctx *gin.Context) {
	filter := models.PokemonFilter{Species: ctx.Query("name")}

	if raw := ctx.Query("type"); raw != "" {
		pokemonType, ok := models.ParsePokemonType(raw)
		if !ok {
			middleware.HandleAPIError(ctx, apperrors.NewInvalidEnumValueError("type", raw))
			return
		}
		filter.Type = &pokemonType
	}

	pokemon, err := c.pokemonService.ListPokemon(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if len(pokemon) == 0 {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrNotFound, "no pokemon found"))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(pokemon))
}

// GetPokemonByID retrieves a pokemon
// @Summary Get pokemon by ID
// @Tags pokemon
// @Produce json
// @Param id path int true "Pokemon ID"
// @Success 200 {object} dto.APIResponse{data=dto.PokemonResponse}
// @Failure 404 {object} dto.ErrorResponse "Pokemon not found"
// @Router /pokemon/{id} [get]
func (c *PokemonController) GetPokemonByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	pokemon, err := c.pokemonService.GetPokemon(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(pokemon))
}

// CreatePokemon handles pokemon creation
// @Summary Create a pokemon
// @Tags pokemon
// @Accept json
// @Produce json
// @Param request body dto.PokemonRequest true "Pokemon"
// @Success 201 {object} dto.APIResponse{data=dto.PokemonResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown trainer or type"
// @Router /pokemon [post]
func (c *PokemonController) CreatePokemon(ctx *gin.Context) {
	var req dto.PokemonRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	pokemon, err := c.pokemonService.CreatePokemon(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(pokemon))
}

// UpdatePokemon replaces a pokemon
// @Summary Update a pokemon
// @Tags pokemon
// @Accept json
// @Param id path int true "Pokemon ID"
// @Param request body dto.PokemonRequest true "Pokemon, pokemonId must equal the path ID"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse "ID mismatch, unknown trainer or type"
// @Failure 404 {object} dto.ErrorResponse "Pokemon not found"
// @Router /pokemon/{id} [put]
func (c *PokemonController) UpdatePokemon(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.PokemonRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.pokemonService.UpdatePokemon(ctx.Request.Context(), id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// DeletePokemon removes a pokemon
// @Summary Delete a pokemon
// @Tags pokemon
// @Param id path int true "Pokemon ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Pokemon not found"
// @Router /pokemon/{id} [delete]
func (c *PokemonController) DeletePokemon(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.pokemonService.DeletePokemon(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
