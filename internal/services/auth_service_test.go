// internal/services/auth_service_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gadaelectronics/storefront/internal/config"
	"github.com/gadaelectronics/storefront/internal/models"
	"github.com/gadaelectronics/storefront/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *AuthService
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) SetupTest() {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(&models.User{}))
	s.db = db

	s.svc = NewAuthService(db, &config.Config{
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
	})
	utils.SetJWTSecret("test-secret")
}

func (s *AuthServiceTestSuite) register() *AuthResponse {
	resp, err := s.svc.Register(&RegisterRequest{
		Name:     "Jethalal Gada",
		Email:    "jethalal@gada.example",
		Password: "secret-pass",
	})
	s.Require().NoError(err)
	return resp
}

func (s *AuthServiceTestSuite) TestRegisterIssuesTokens() {
	resp := s.register()

	s.NotEmpty(resp.AccessToken)
	s.NotEmpty(resp.RefreshToken)
	s.Equal("Bearer", resp.TokenType)
	s.NotEqual(uuid.Nil, resp.User.ID)

	claims, err := utils.ValidateJWT(resp.AccessToken)
	s.Require().NoError(err)
	s.Equal(resp.User.ID.String(), claims.UserID)
	s.Equal("jethalal@gada.example", claims.Email)
	s.False(claims.IsAdmin)
}

func (s *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	s.register()

	_, err := s.svc.Register(&RegisterRequest{
		Name:     "Impostor",
		Email:    "jethalal@gada.example",
		Password: "another-pass",
	})
	s.Error(err)
	s.Contains(err.Error(), "already exists")
}

func (s *AuthServiceTestSuite) TestRegisterShortPassword() {
	_, err := s.svc.Register(&RegisterRequest{
		Name:     "Jethalal Gada",
		Email:    "jethalal@gada.example",
		Password: "short",
	})
	s.Error(err)
	s.Contains(err.Error(), "validation failed")
}

func (s *AuthServiceTestSuite) TestLogin() {
	s.register()

	resp, err := s.svc.Login(&LoginRequest{
		Email:    "jethalal@gada.example",
		Password: "secret-pass",
	})
	s.Require().NoError(err)
	s.NotEmpty(resp.AccessToken)
	s.NotNil(resp.User.LastLoginAt)
}

func (s *AuthServiceTestSuite) TestLoginWrongPassword() {
	s.register()

	_, err := s.svc.Login(&LoginRequest{
		Email:    "jethalal@gada.example",
		Password: "wrong-pass",
	})
	s.Error(err)
	s.Equal("invalid email or password", err.Error())

	// Unknown email reads the same as a wrong password.
	_, err = s.svc.Login(&LoginRequest{
		Email:    "nobody@gada.example",
		Password: "secret-pass",
	})
	s.Error(err)
	s.Equal("invalid email or password", err.Error())
}

func (s *AuthServiceTestSuite) TestRefreshToken() {
	registered := s.register()

	resp, err := s.svc.RefreshToken(registered.RefreshToken)
	s.Require().NoError(err)
	s.NotEmpty(resp.AccessToken)
	s.Equal(registered.User.ID, resp.User.ID)

	_, err = s.svc.RefreshToken("not-a-token")
	s.Error(err)
}

func (s *AuthServiceTestSuite) TestPasswordHashing() {
	resp := s.register()

	user, err := s.svc.GetUser(resp.User.ID)
	s.Require().NoError(err)
	s.NotEmpty(user.PasswordHash)
	s.NoError(user.CheckPassword("secret-pass"))
	s.Error(user.CheckPassword("secret-pass "))
}
