package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shivamkillarikar/CityGuardian/internal/api"
	"github.com/Shivamkillarikar/CityGuardian/internal/server/auth"
	"github.com/Shivamkillarikar/CityGuardian/internal/server/services"
)

func (s *HTTPServer) register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.metrics.authEvent("register", api.CodeValidation)
		writeValidation(c, "Invalid request body")
		return
	}

	res, err := s.users.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
	})
	if err != nil {
		s.metrics.authEvent("register", s.writeError(c, err))
		return
	}

	s.metrics.authEvent("register", "OK")
	c.JSON(http.StatusCreated, api.AuthResponse{
		Message: "User created",
		User:    res.User.DTO(),
		Token:   res.Token,
	})
}

func (s *HTTPServer) login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.metrics.authEvent("login", api.CodeValidation)
		writeValidation(c, "Invalid request body")
		return
	}

	res, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.metrics.authEvent("login", s.writeError(c, err))
		return
	}

	s.metrics.authEvent("login", "OK")
	c.JSON(http.StatusOK, api.AuthResponse{
		Message: "Login successful",
		User:    res.User.DTO(),
		Token:   res.Token,
	})
}

func (s *HTTPServer) profile(c *gin.Context, id auth.Identity) {
	user, err := s.users.GetProfile(c.Request.Context(), id.Subject)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.ProfileResponse{User: user.DTO()})
}

func (s *HTTPServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{OK: true, Time: s.now().UTC()})
}
