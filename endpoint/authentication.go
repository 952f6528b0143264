package endpoint

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/healthplus/clinic-api/middleware"
	"github.com/healthplus/clinic-api/model"
	"github.com/healthplus/clinic-api/util"
)

var emailPattern = regexp.MustCompile(`^[\w\-.]+@([\w\-]+\.)+[\w\-]{2,4}$`)

// errInvalidCredentials is shared by the missing-user and wrong-password
// paths so login failures are indistinguishable and emails cannot be
// enumerated.
var errInvalidCredentials = errors.New("invalid credentials")

type RegisterRequest struct {
	Name     string `json:"name" example:"John Doe"`
	Email    string `json:"email" example:"john@example.com"`
	Password string `json:"password" example:"password123"`
	Phone    string `json:"phone,omitempty" example:"0812345678"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"john@example.com"`
	Password string `json:"password" example:"password123"`
}

func bindJSONOrRespond(c *gin.Context, dst interface{}, msg string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: msg, Err: err})
		return false
	}
	return true
}

func getDBOrRespond(c *gin.Context) (*gorm.DB, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database connection not available", Err: fmt.Errorf("db is nil")})
		return nil, false
	}
	return db, true
}

// validateRegisterRequest checks the registration fields in a fixed order
// and returns the first failure.
func validateRegisterRequest(req *RegisterRequest) error {
	if len(req.Name) < 3 {
		return fmt.Errorf("Name must be at least 3 characters")
	}
	if !emailPattern.MatchString(req.Email) {
		return fmt.Errorf("Invalid email address")
	}
	if len(req.Password) < 6 {
		return fmt.Errorf("Password must be at least 6 characters")
	}
	return nil
}

// Register godoc
// @Summary      Register a new user
// @Description  Create a user account and issue a login token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration details"
// @Success      201 {object} util.APIResponse{user=model.User} "User registered"
// @Failure      400 {object} util.APIResponse "Invalid request or email already exists"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/auth/register [post]
func Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	if err := validateRegisterRequest(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: err.Error(), Err: err})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	email := strings.ToLower(req.Email)

	// Pre-check for a friendlier error; the unique index on email remains
	// the authority when two registrations race.
	var existing model.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "User with this email already exists",
			Err: fmt.Errorf("email already registered"),
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		util.CallServerError(c, util.APIErrorParams{Msg: "Error registering user", Err: err})
		return
	}

	hashed, err := util.HashPassword(req.Password)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Error registering user", Err: err})
		return
	}

	user := model.User{
		Name:     req.Name,
		Email:    email,
		Password: hashed,
		Phone:    req.Phone,
		Role:     model.RolePatient,
	}

	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent registration for the same email.
			util.CallUserError(c, util.APIErrorParams{
				Msg: "User with this email already exists",
				Err: fmt.Errorf("email already registered"),
			})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Error registering user", Err: err})
		return
	}

	token, err := util.CreateLoginToken(user)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Could not generate token", Err: err})
		return
	}

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:   "User registered successfully",
		Token: token,
		User:  user,
	})
}

// Login godoc
// @Summary      User login
// @Description  Authenticate with email and password, returning a login token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} util.APIResponse{user=model.User} "Login successful"
// @Failure      400 {object} util.APIResponse "Missing email or password"
// @Failure      401 {object} util.APIResponse "Invalid credentials"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/auth/login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	if req.Email == "" || req.Password == "" {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Email and password are required",
			Err: fmt.Errorf("missing credentials"),
		})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var user model.User
	err := db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Invalid email or password", Err: errInvalidCredentials})
		return
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Error logging in", Err: err})
		return
	}

	if !util.VerifyPassword(req.Password, user.Password) {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Invalid email or password", Err: errInvalidCredentials})
		return
	}

	token, err := util.CreateLoginToken(user)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Could not generate token", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:   "Login successful",
		Token: token,
		User:  user,
	})
}

// CurrentUser godoc
// @Summary      Get current user
// @Description  Return the authenticated user's public profile
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{user=model.User} "User retrieved"
// @Failure      401 {object} util.APIResponse "Invalid or missing token"
// @Failure      404 {object} util.APIResponse "User not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /api/auth/me [get]
func CurrentUser(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		util.CallUserNotAuthorized(c, util.APIErrorParams{
			Msg: "User not authenticated",
			Err: fmt.Errorf("user id not found in context"),
		})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var user model.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "User not found", Err: err})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Error fetching user", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{User: user})
}
