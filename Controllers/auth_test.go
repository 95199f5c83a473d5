package Controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/samer29/vascare-sub001/Models"
	"github.com/samer29/vascare-sub001/Utils/Token"

	"github.com/gin-gonic/gin"
)

func authRouter(api *API) *gin.Engine {
	router := gin.New()
	router.POST("/login", api.Login)
	router.POST("/register", api.Register)
	router.GET("/user", api.CurrentUser)
	router.GET("/users", api.FetchUsers)
	router.PUT("/users/:id", api.UpdateUser)
	router.DELETE("/users/:id", api.DeleteUser)
	return router
}

func setupAuth(t *testing.T) {
	t.Setenv("API_SECRET", "controllers-test-secret")
	t.Setenv("TOKEN_HOUR_LIFESPAN", "6")
	if err := Token.Setup(); err != nil {
		t.Fatalf("token setup: %v", err)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	setupAuth(t)
	api := setupAPI(t)
	router := authRouter(api)

	w := perform(router, "POST", "/register",
		jsonBody(t, gin.H{"username": "dr.benali", "password": "s3cret-pass", "grade": "clinician"}))
	if w.Code != http.StatusOK {
		t.Fatalf("register status = %d (body %s)", w.Code, w.Body.String())
	}

	// Stored password is hashed, never the clear text.
	var user Models.User
	if err := api.DB.Where("username = ?", "dr.benali").First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.Password == "s3cret-pass" || user.Password == "" {
		t.Error("password stored in clear")
	}
	if user.LastLogin != nil {
		t.Error("last_login set before first login")
	}

	w = perform(router, "POST", "/login",
		jsonBody(t, gin.H{"username": "dr.benali", "password": "s3cret-pass"}))
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d (body %s)", w.Code, w.Body.String())
	}

	var body struct {
		Jwt   string `json:"jwt"`
		Grade string `json:"grade"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Jwt == "" {
		t.Fatal("no token returned")
	}
	if body.Grade != "clinician" {
		t.Errorf("grade = %q, want clinician", body.Grade)
	}

	// The issued token carries the subject and grade.
	grade, err := Token.DecodeGradeIgnoringExpiry(body.Jwt)
	if err != nil {
		t.Fatalf("decode token: %v", err)
	}
	if grade != "clinician" {
		t.Errorf("token grade = %q, want clinician", grade)
	}

	if err := api.DB.Where("username = ?", "dr.benali").First(&user).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if user.LastLogin == nil {
		t.Error("last_login not stamped on login")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	setupAuth(t)
	api := setupAPI(t)
	router := authRouter(api)

	perform(router, "POST", "/register", jsonBody(t, gin.H{"username": "front.desk", "password": "correct"}))
	w := perform(router, "POST", "/login", jsonBody(t, gin.H{"username": "front.desk", "password": "wrong"}))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestUpdateUserGrade(t *testing.T) {
	setupAuth(t)
	api := setupAPI(t)
	router := authRouter(api)

	perform(router, "POST", "/register", jsonBody(t, gin.H{"username": "assistant", "password": "pass-123"}))
	var user Models.User
	if err := api.DB.Where("username = ?", "assistant").First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.Grade != Models.GradeUser {
		t.Fatalf("default grade = %q, want user", user.Grade)
	}

	w := perform(router, "PUT", "/users/"+itoa(user.ID), jsonBody(t, gin.H{"grade": "clinician"}))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
	}

	if err := api.DB.First(&user, user.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if user.Grade != Models.GradeClinician {
		t.Errorf("grade = %q, want clinician", user.Grade)
	}
}

func TestDeleteUser(t *testing.T) {
	setupAuth(t)
	api := setupAPI(t)
	router := authRouter(api)

	perform(router, "POST", "/register", jsonBody(t, gin.H{"username": "leaver", "password": "pass-123"}))
	var user Models.User
	if err := api.DB.Where("username = ?", "leaver").First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}

	w := perform(router, "DELETE", "/users/"+itoa(user.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	w = perform(router, "DELETE", "/users/"+itoa(user.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}
