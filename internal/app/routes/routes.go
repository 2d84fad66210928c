package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/trainerapi/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	pokemonController *controllers.PokemonController,
	trainerController *controllers.TrainerController,
	schoolController *controllers.SchoolController,
	healthController *controllers.HealthController,
) {
	router.GET("/ping", healthController.Ping)

	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", healthController.Health)

	pokemon := v1.Group("/pokemon")
	{
		pokemon.GET("", pokemonController.GetAllPokemon)
		pokemon.GET("/:id", pokemonController.GetPokemonByID)
		pokemon.POST("", pokemonController.CreatePokemon)
		pokemon.PUT("/:id", pokemonController.UpdatePokemon)
		pokemon.DELETE("/:id", pokemonController.DeletePokemon)
	}

	trainers := v1.Group("/trainer")
	{
		trainers.GET("", trainerController.GetAllTrainers)
		trainers.GET("/:id", trainerController.GetTrainerByID)
		trainers.POST("", trainerController.CreateTrainer)
		trainers.PUT("/:id", trainerController.UpdateTrainer)
		trainers.DELETE("/:id", trainerController.DeleteTrainer)
	}

	school := v1.Group("/school")
	{
		school.GET("/students", schoolController.GetStudents)
		school.POST("/students", schoolController.CreateStudent)

		school.GET("/courses", schoolController.GetCourses)
		school.POST("/courses", schoolController.CreateCourse)
		school.GET("/courses/:id", schoolController.GetCourseByID)
		school.PUT("/courses/:id", schoolController.UpdateCourse)
		school.DELETE("/courses/:id", schoolController.DeleteCourse)

		school.GET("/enroll", schoolController.GetEnrollments)
		school.POST("/enroll", schoolController.Enroll)
		school.DELETE("/enroll", schoolController.Unenroll)
	}
}
