package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/trainerapi/internal/app/controllers"
	"github.com/yigit/trainerapi/internal/app/models/dto"
	"github.com/yigit/trainerapi/internal/app/repositories/memory"
	"github.com/yigit/trainerapi/internal/app/routes"
	"github.com/yigit/trainerapi/internal/app/services"
	"github.com/yigit/trainerapi/internal/middleware"
	"github.com/yigit/trainerapi/internal/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Configure(logger.Config{Level: logger.ErrorLevel, Output: &bytes.Buffer{}})
	middleware.UseJSONFieldNames()
}

type envelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

func newRouter(t *testing.T, ping controllers.PingFunc) *gin.Engine {
	t.Helper()
	store := memory.NewStore()
	lgr := zerolog.Nop()

	router := gin.New()
	router.Use(middleware.Recovery())
	routes.SetupRouter(router,
		controllers.NewPokemonController(services.NewPokemonService(store, lgr)),
		controllers.NewTrainerController(services.NewTrainerService(store, lgr)),
		controllers.NewSchoolController(services.NewSchoolService(store, lgr)),
		controllers.NewHealthController("memory", ping),
	)
	return router
}

func do(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestPokemonEndpoints(t *testing.T) {
	router := newRouter(t, nil)

	w, env := do(t, router, http.MethodPost, "/api/v1/trainer", `{"name":"Ash","surname":"Ketchum","age":10,"gender":"M"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	ash := decodeData[dto.TrainerResponse](t, env)

	w, _ = do(t, router, http.MethodGet, "/api/v1/pokemon", "")
	assert.Equal(t, http.StatusNotFound, w.Code, "empty listing")

	w, env = do(t, router, http.MethodPost, "/api/v1/pokemon", `{"name":"Pikachu","species":"Mouse","type":"electric","trainerId":1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	pikachu := decodeData[dto.PokemonResponse](t, env)
	assert.Equal(t, "Electric", pikachu.Type)
	assert.Equal(t, "Ash", pikachu.TrainerName)
	assert.Equal(t, ash.ID, pikachu.TrainerID)

	t.Run("create failures", func(t *testing.T) {
		w, env := do(t, router, http.MethodPost, "/api/v1/pokemon", `{"name":"Pikachu","type":"Thunder","trainerId":1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)

		w, env = do(t, router, http.MethodPost, "/api/v1/pokemon", `{"name":"Eevee","type":"Normal","trainerId":42}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrorCodeResourceInvalid, env.Error.Code)

		w, _ = do(t, router, http.MethodPost, "/api/v1/pokemon", `{"trainerId":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list filters", func(t *testing.T) {
		w, env := do(t, router, http.MethodGet, "/api/v1/pokemon?type=ELECTRIC&name=mou", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeData[[]dto.PokemonResponse](t, env), 1)

		w, _ = do(t, router, http.MethodGet, "/api/v1/pokemon?type=fire", "")
		assert.Equal(t, http.StatusNotFound, w.Code)

		w, _ = do(t, router, http.MethodGet, "/api/v1/pokemon?type=bogus", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get", func(t *testing.T) {
		w, env := do(t, router, http.MethodGet, "/api/v1/pokemon/1", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Pikachu", decodeData[dto.PokemonResponse](t, env).Name)

		w, _ = do(t, router, http.MethodGet, "/api/v1/pokemon/99", "")
		assert.Equal(t, http.StatusNotFound, w.Code)

		w, _ = do(t, router, http.MethodGet, "/api/v1/pokemon/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("update", func(t *testing.T) {
		w, _ := do(t, router, http.MethodPut, "/api/v1/pokemon/1", `{"pokemonId":2,"name":"Raichu","type":"Electric","trainerId":1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w, _ = do(t, router, http.MethodPut, "/api/v1/pokemon/99", `{"pokemonId":99,"name":"Raichu","type":"Electric","trainerId":1}`)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w, _ = do(t, router, http.MethodPut, "/api/v1/pokemon/1", `{"pokemonId":1,"name":"Raichu","species":"Mouse","type":"Electric","trainerId":1}`)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("delete", func(t *testing.T) {
		w, _ := do(t, router, http.MethodDelete, "/api/v1/pokemon/1", "")
		assert.Equal(t, http.StatusNoContent, w.Code)

		w, _ = do(t, router, http.MethodDelete, "/api/v1/pokemon/1", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTrainerEndpoints(t *testing.T) {
	router := newRouter(t, nil)

	w, env := do(t, router, http.MethodPost, "/api/v1/trainer", `{"name":"Ash"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)

	w, _ = do(t, router, http.MethodPost, "/api/v1/trainer", `{"name":"`+strings.Repeat("a", 101)+`","gender":"M"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, body := range []string{
		`{"name":"Ash","surname":"Ketchum","age":10,"gender":"M"}`,
		`{"name":"Misty","gender":"F"}`,
	} {
		w, _ := do(t, router, http.MethodPost, "/api/v1/trainer", body)
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w, _ = do(t, router, http.MethodPost, "/api/v1/pokemon", `{"name":"Pikachu","type":"Electric","trainerId":1}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env = do(t, router, http.MethodGet, "/api/v1/trainer?gender=f", "")
	require.Equal(t, http.StatusOK, w.Code)
	listed := decodeData[[]dto.TrainerResponse](t, env)
	require.Len(t, listed, 1)
	assert.Equal(t, "Misty", listed[0].Name)

	w, env = do(t, router, http.MethodGet, "/api/v1/trainer/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decodeData[dto.TrainerResponse](t, env).NumberOfPokemons)
	assert.Contains(t, w.Body.String(), `"numberOfPokemons":1`)

	w, _ = do(t, router, http.MethodPut, "/api/v1/trainer/1", `{"name":"Red","gender":"M"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing trainerId is a mismatch")

	w, _ = do(t, router, http.MethodPut, "/api/v1/trainer/1", `{"trainerId":1,"name":"Red","gender":"M"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = do(t, router, http.MethodDelete, "/api/v1/trainer/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = do(t, router, http.MethodGet, "/api/v1/pokemon/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code, "pokemon removed with trainer")

	w, _ = do(t, router, http.MethodGet, "/api/v1/trainer/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSchoolEndpoints(t *testing.T) {
	router := newRouter(t, nil)

	w, env := do(t, router, http.MethodPost, "/api/v1/school/courses", `{"title":"Battling 101"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	course := decodeData[dto.CourseResponse](t, env)

	w, env = do(t, router, http.MethodPost, "/api/v1/school/students", `{"name":"Misty"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	misty := decodeData[dto.StudentResponse](t, env)
	assert.Contains(t, w.Body.String(), `"studentId":1`)

	enrollBody := `{"studentId":1,"courseId":1}`

	w, _ = do(t, router, http.MethodPost, "/api/v1/school/enroll", enrollBody)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, env = do(t, router, http.MethodPost, "/api/v1/school/enroll", enrollBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeResourceAlreadyExists, env.Error.Code)

	w, _ = do(t, router, http.MethodPost, "/api/v1/school/enroll", `{"studentId":9,"courseId":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = do(t, router, http.MethodGet, "/api/v1/school/enroll?studentId=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []dto.EnrollmentResponse{{StudentID: misty.ID, CourseID: course.ID}},
		decodeData[[]dto.EnrollmentResponse](t, env))

	w, _ = do(t, router, http.MethodGet, "/api/v1/school/enroll?courseId=x", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, router, http.MethodDelete, "/api/v1/school/enroll", enrollBody)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = do(t, router, http.MethodDelete, "/api/v1/school/enroll", enrollBody)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, router, http.MethodPut, "/api/v1/school/courses/1", `{"courseId":1,"title":"Advanced Battling"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, env = do(t, router, http.MethodGet, "/api/v1/school/courses/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Advanced Battling", decodeData[dto.CourseResponse](t, env).Title)

	w, _ = do(t, router, http.MethodDelete, "/api/v1/school/courses/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = do(t, router, http.MethodGet, "/api/v1/school/courses/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = do(t, router, http.MethodGet, "/api/v1/school/students", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeData[[]dto.StudentResponse](t, env), 1)
}

func TestHealthEndpoints(t *testing.T) {
	w, env := do(t, newRouter(t, nil), http.MethodGet, "/api/v1/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.HealthResponse{Status: "ok", Database: "memory"}, decodeData[dto.HealthResponse](t, env))

	down := func(context.Context) error { return errors.New("connection refused") }
	w, _ = do(t, newRouter(t, down), http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")

	w, _ = do(t, newRouter(t, nil), http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
