package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"cinepass-auth/internals/accounts"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AccountController struct {
	Accounts *accounts.Service
	Log      *logrus.Logger
}

func NewAccountController(accountSvc *accounts.Service, log *logrus.Logger) *AccountController {
	return &AccountController{
		Accounts: accountSvc,
		Log:      log,
	}
}

type SignupReqBody struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyReqBody struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

type SigninReqBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ResendReqBody struct {
	Email string `json:"email" binding:"required,email"`
}

func (a *AccountController) Signup(c *gin.Context) {
	var body SignupReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to read body"})
		return
	}

	err := a.Accounts.Signup(c.Request.Context(), body.Username, body.Email, body.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"message": "User created successfully, verification code sent to email"})
	case errors.Is(err, accounts.ErrDuplicateAccount):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already in use"})
	default:
		a.Log.WithError(err).WithField("email", body.Email).Error("Error creating user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating user"})
	}
}

func (a *AccountController) Verify(c *gin.Context) {
	var body VerifyReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to read body"})
		return
	}

	err := a.Accounts.Verify(c.Request.Context(), body.Email, body.Code)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Verification successful"})
	case errors.Is(err, accounts.ErrInvalidCode):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid verification code"})
	default:
		a.Log.WithError(err).WithField("email", body.Email).Error("Error verifying user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error verifying user"})
	}
}

func (a *AccountController) Signin(c *gin.Context) {
	var body SigninReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to read body"})
		return
	}

	err := a.Accounts.Signin(c.Request.Context(), body.Email, body.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Sign-in successful"})
	case errors.Is(err, accounts.ErrEmailNotVerified):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email not verified"})
	case errors.Is(err, accounts.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email or password"})
	default:
		a.Log.WithError(err).WithField("email", body.Email).Error("Error signing in")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error signing in"})
	}
}

// ResendCode issues a fresh verification code for an unverified account.
// The response is identical whether or not the account exists, so the
// endpoint cannot be used to probe registered emails.
func (a *AccountController) ResendCode(c *gin.Context) {
	var body ResendReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to read body"})
		return
	}

	if err := a.Accounts.ResendCode(c.Request.Context(), body.Email); err != nil {
		a.Log.WithError(err).WithField("email", body.Email).Error("Error resending verification code")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error resending verification code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("If an unverified account exists for %s, a new verification code has been sent", body.Email)})
}
