package auth

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anweshon/anweshon-api/internal/mailer"
	"github.com/anweshon/anweshon-api/internal/user"
	"github.com/anweshon/anweshon-api/pkg/responses"
	"github.com/anweshon/anweshon-api/pkg/token"
	"github.com/anweshon/anweshon-api/pkg/utils"
	"github.com/anweshon/anweshon-api/pkg/validator"
	hashutil "github.com/anweshon/anweshon-api/utils"
)

type AuthController struct {
	userRepo  user.UserRepository
	otpRepo   OtpRepository
	mail      mailer.Mailer
	jwtSecret string
	jwtIssuer string
	jwtHours  int
}

func NewAuthController(userRepo user.UserRepository, otpRepo OtpRepository, mail mailer.Mailer, jwtSecret, jwtIssuer string, jwtHours int) *AuthController {
	return &AuthController{
		userRepo:  userRepo,
		otpRepo:   otpRepo,
		mail:      mail,
		jwtSecret: jwtSecret,
		jwtIssuer: jwtIssuer,
		jwtHours:  jwtHours,
	}
}

type RegisterRequest struct {
	FullName   string `json:"fullName" binding:"required,min=2,max=100"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	StudentID  string `json:"studentId" binding:"required"`
	Department string `json:"department" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Role       string `json:"role" binding:"omitempty,oneof=Student ClubAdmin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SendOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyOtpRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Code    string `json:"code" binding:"required,len=6"`
	Purpose string `json:"purpose" binding:"required,oneof=Registration PasswordReset"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type AuthResponse struct {
	Token string        `json:"token"`
	User  user.Response `json:"user"`
}

func (ac *AuthController) validateRegistration(req *RegisterRequest) map[string]string {
	errs := make(map[string]string)
	if !validator.IsValidStudentID(req.StudentID) {
		errs["studentId"] = "Student ID must be exactly 7 digits"
	}
	if !validator.IsValidBdPhone(req.Phone) {
		errs["phone"] = "Phone must be a valid Bangladeshi number (01XXXXXXXXX)"
	}
	return errs
}

func (ac *AuthController) createUser(req *RegisterRequest) (*user.User, string, error) {
	hashed, err := hashutil.HashPassword(req.Password)
	if err != nil {
		return nil, "Failed to process password", err
	}

	u := &user.User{
		FullName:   req.FullName,
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Password:   hashed,
		StudentID:  req.StudentID,
		Department: req.Department,
		Phone:      req.Phone,
	}
	if err := ac.userRepo.CreateUser(u); err != nil {
		return nil, "Failed to create user", err
	}

	roleName := user.RoleStudent
	if req.Role != "" {
		roleName = req.Role
	}
	if err := ac.userRepo.AssignRoleToUser(u.ID, roleName); err != nil {
		return nil, "Failed to assign role", err
	}
	return u, "", nil
}

func (ac *AuthController) issueToken(u *user.User) (string, []string, error) {
	roles, err := ac.userRepo.GetUserRoles(u.ID)
	if err != nil {
		return "", nil, err
	}
	signed, err := token.GenerateJWT(u.ID, u.Email, u.FullName, roles, ac.jwtSecret, ac.jwtIssuer, ac.jwtHours)
	if err != nil {
		return "", nil, err
	}
	return signed, roles, nil
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body RegisterRequest true "Account details"
// @Success 201 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /api/Auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationErrors(c, validator.ParseError(err))
		return
	}
	if errs := ac.validateRegistration(&req); len(errs) > 0 {
		responses.SendValidationErrors(c, errs)
		return
	}

	existing, err := ac.userRepo.GetUserByEmail(req.Email)
	if err != nil {
		responses.InternalServerError(c, "Failed to check email")
		return
	}
	if existing != nil {
		responses.Conflict(c, "An account with this email already exists")
		return
	}

	u, msg, err := ac.createUser(&req)
	if err != nil {
		responses.InternalServerError(c, msg)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Registration successful", u.ToResponse())
}

// Login godoc
// @Summary Log in and receive a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Email and password"
// @Success 200 {object} responses.SuccessResponse
// @Failure 401 {object} responses.ErrorResponse
// @Router /api/Auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationErrors(c, validator.ParseError(err))
		return
	}

	u, err := ac.userRepo.GetUserByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		responses.InternalServerError(c, "Failed to look up user")
		return
	}
	if u == nil || !hashutil.CheckPassword(u.Password, req.Password) {
		responses.Unauthorized(c, "Invalid email or password")
		return
	}

	signed, _, err := ac.issueToken(u)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue token")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Login successful", AuthResponse{Token: signed, User: u.ToResponse()})
}

// SendRegistrationOtp godoc
// @Summary Email a registration verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SendOtpRequest true "Email to verify"
// @Success 200 {object} responses.SuccessResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /api/Auth/send-registration-otp [post]
func (ac *AuthController) SendRegistrationOtp(c *gin.Context) {
	var req SendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationErrors(c, validator.ParseError(err))
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := ac.userRepo.GetUserByEmail(email)
	if err != nil {
		responses.InternalServerError(c, "Failed to check email")
		return
	}
	if existing != nil {
		responses.Conflict(c, "An account with this email already exists")
		return
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		responses.InternalServerError(c, "Failed to generate code")
		return
	}
	otp := OtpVerification{
		Email:     email,
		Code:      code,
		Purpose:   PurposeRegistration,
		ExpiresAt: time.Now().UTC().Add(RegistrationOtpExpiry),
	}
	if err := ac.otpRepo.CreateOtp(&otp); err != nil {
		responses.InternalServerError(c, "Failed to store code")
		return
	}
	if err := ac.mail.SendOtpEmail(email, code, int(RegistrationOtpExpiry.Minutes())); err != nil {
		responses.InternalServerError(c, "Failed to send verification email")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Verification code sent", nil)
}

// VerifyOtp godoc
// @Summary Redeem a verification code
// @Description Marks the code as used. A code can be redeemed once, before it expires.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyOtpRequest true "Email, code, and purpose"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /api/Auth/verify-otp [post]
func (ac *AuthController) VerifyOtp(c *gin.Context) {
	var req VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationErrors(c, validator.ParseError(err))
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	otp, err := ac.otpRepo.FindActiveOtp(email, req.Code, req.Purpose, time.Now().UTC())
	if err != nil {
		responses.InternalServerError(c, "Failed to verify code")
		return
	}
	if otp == nil {
		responses.BadRequest(c, "Invalid or expired verification code")
		return
	}
	if err := ac.otpRepo.MarkUsed(otp); err != nil {
		responses.InternalServerError(c, "Failed to verify code")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Code verified", nil)
}

// RegisterWithOtp godoc
// @Summary Register an account after email verification
// @Description Requires that a registration code for the email was verified within the last 15 minutes.
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body RegisterRequest true "Account details"
// @Success 201 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /api/Auth/register-with-otp [post]
func (ac *AuthController) RegisterWithOtp(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationErrors(c, validator.ParseError(err))
		return
	}
	if errs := ac.validateRegistration(&req); len(errs) > 0 {
		responses.SendValidationErrors(c, errs)
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	verified, err := ac.otpRepo.HasRecentUsedOtp(email, PurposeRegistration, time.Now().UTC().Add(-RegistrationOtpGrace))
	if err != nil {
		responses.InternalServerError(c, "Failed to check verification")
		return
	}
	if !verified {
		responses.BadRequest(c, "Email has not been verified. Request and verify a code first.")
		return
	}

	existing, err := ac.userRepo.GetUserByEmail(email)
	if err != nil {
		responses.InternalServerError(c, "Failed to check email")
		return
	}
	if existing != nil {
		responses.Conflict(c, "An account with this email already exists")
		return
	}

	u, msg, err := ac.createUser(&req)
	if err != nil {
		responses.InternalServerError(c, msg)
		return
	}

	signed, _, err := ac.issueToken(u)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue token")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Registration successful", AuthResponse{Token: signed, User: u.ToResponse()})
}

// ForgotPassword godoc
// @Summary Email a password reset code
// @Description Always responds with success so account existence is not leaked.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SendOtpRequest true "Account email"
// @Success 200 {object} responses.SuccessResponse
// @Router /api/Auth/forgot-password [post]
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var req SendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationErrors(c, validator.ParseError(err))
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := ac.userRepo.GetUserByEmail(email)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up account")
		return
	}
	if u != nil {
		code, err := utils.GenerateOTP()
		if err != nil {
			responses.InternalServerError(c, "Failed to generate code")
			return
		}
		otp := OtpVerification{
			Email:     email,
			Code:      code,
			Purpose:   PurposePasswordReset,
			ExpiresAt: time.Now().UTC().Add(PasswordResetOtpExpiry),
		}
		if err := ac.otpRepo.CreateOtp(&otp); err != nil {
			responses.InternalServerError(c, "Failed to store code")
			return
		}
		if err := ac.mail.SendPasswordResetEmail(email, code, int(PasswordResetOtpExpiry.Minutes())); err != nil {
			log.Printf("password reset email to %s failed: %v", email, err)
		}
	}
	responses.SendSuccess(c, http.StatusOK, "If the account exists, a reset code has been sent", nil)
}

// ResetPassword godoc
// @Summary Reset a password with a verified code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Email, code, and new password"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /api/Auth/reset-password [post]
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationErrors(c, validator.ParseError(err))
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := ac.userRepo.GetUserByEmail(email)
	if err != nil {
		responses.InternalServerError(c, "Failed to look up account")
		return
	}
	if u == nil {
		responses.BadRequest(c, "Invalid or expired reset code")
		return
	}

	otp, err := ac.otpRepo.FindActiveOtp(email, req.Code, PurposePasswordReset, time.Now().UTC())
	if err != nil {
		responses.InternalServerError(c, "Failed to verify code")
		return
	}
	if otp == nil {
		responses.BadRequest(c, "Invalid or expired reset code")
		return
	}

	hashed, err := hashutil.HashPassword(req.NewPassword)
	if err != nil {
		responses.InternalServerError(c, "Failed to process password")
		return
	}
	u.Password = hashed
	if err := ac.userRepo.UpdateUser(u); err != nil {
		responses.InternalServerError(c, "Failed to update password")
		return
	}
	if err := ac.otpRepo.MarkUsed(otp); err != nil {
		responses.InternalServerError(c, "Failed to finalize reset")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Password reset successful", nil)
}
