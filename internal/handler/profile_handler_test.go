package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/service"
	"github.com/centavo/centavo-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newProfileHandler(userRepo *testutil.MockUserRepository) *ProfileHandler {
	imageService := service.NewImageService(testutil.NewMockImageRepository())
	return NewProfileHandler(service.NewProfileService(userRepo, imageService, nil))
}

func TestGetProfile_Success(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	handler := newProfileHandler(userRepo)

	auth0ID := "auth0|profile123"
	name := "Test User"
	userRepo.AddUser(&domain.User{
		ID:      uuid.New(),
		Auth0ID: auth0ID,
		Email:   "test@example.com",
		Name:    &name,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, auth0ID, "test@example.com", name, "")

	err := handler.GetProfile(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Email != "test@example.com" {
		t.Errorf("Expected email 'test@example.com', got %s", response.Email)
	}
	if response.Name == nil || *response.Name != name {
		t.Errorf("Expected name '%s', got %v", name, response.Name)
	}
}

func TestGetProfile_MissingAuthContext(t *testing.T) {
	e := echo.New()
	handler := newProfileHandler(testutil.NewMockUserRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.GetProfile(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestUpdateProfile_Success(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	handler := newProfileHandler(userRepo)

	auth0ID := "auth0|update123"
	userRepo.AddUser(&domain.User{
		ID:      uuid.New(),
		Auth0ID: auth0ID,
		Email:   "update@example.com",
	})

	body := `{"name": "  Nuevo Nombre  "}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, auth0ID, "update@example.com", "", "")

	err := handler.UpdateProfile(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Name == nil || *response.Name != "Nuevo Nombre" {
		t.Errorf("Expected trimmed name 'Nuevo Nombre', got %v", response.Name)
	}
}

func TestUpdateProfile_EmptyName(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	handler := newProfileHandler(userRepo)

	auth0ID := "auth0|empty123"
	userRepo.AddUser(&domain.User{
		ID:      uuid.New(),
		Auth0ID: auth0ID,
		Email:   "empty@example.com",
	})

	body := `{"name": "   "}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, auth0ID, "empty@example.com", "", "")

	err := handler.UpdateProfile(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal problem details: %v", err)
	}
	if len(problem.Errors) == 0 || problem.Errors[0].Field != "name" {
		t.Errorf("Expected a validation error on field 'name', got %+v", problem.Errors)
	}
}

func TestUpdateProfile_NameTooLong(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	handler := newProfileHandler(userRepo)

	auth0ID := "auth0|long123"
	userRepo.AddUser(&domain.User{
		ID:      uuid.New(),
		Auth0ID: auth0ID,
		Email:   "long@example.com",
	})

	body := `{"name": "` + strings.Repeat("a", domain.MaxProfileNameLength+1) + `"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, auth0ID, "long@example.com", "", "")

	err := handler.UpdateProfile(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestUploadAvatar_MissingFile(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	handler := newProfileHandler(userRepo)

	auth0ID := "auth0|avatar123"
	userRepo.AddUser(&domain.User{
		ID:      uuid.New(),
		Auth0ID: auth0ID,
		Email:   "avatar@example.com",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/profile/avatar", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, auth0ID, "avatar@example.com", "", "")

	err := handler.UploadAvatar(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
