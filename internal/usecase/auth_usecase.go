package usecase

import (
	"fmt"
	"io"

	"lingora/internal/entity"
	"lingora/internal/repo/persistent"
	"lingora/pkg/jwt"
	"lingora/pkg/logger"
	"lingora/pkg/queue"
	"lingora/pkg/s3"

	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Register(email, username, password string, countryID *string) (*entity.User, string, error)
	Login(email, password string) (*entity.User, string, error)
	GetUser(userID string) (*entity.User, error)
	UpdateProfile(userID string, username, countryID *string) (*entity.User, error)
	UploadAvatar(userID string, fileReader io.Reader, fileKey string, contentType string) (*entity.User, error)
}

type authUseCase struct {
	userRepo    persistent.UserRepository
	jwtService  *jwt.Service
	s3Client    *s3.Client
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	s3Client *s3.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:    userRepo,
		jwtService:  jwtService,
		s3Client:    s3Client,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *authUseCase) Register(email, username, password string, countryID *string) (*entity.User, string, error) {
	_, err := uc.userRepo.GetByEmail(email)
	if err == nil {
		return nil, "", fmt.Errorf("user with this email already exists")
	}

	_, err = uc.userRepo.GetByUsername(username)
	if err == nil {
		return nil, "", fmt.Errorf("username already taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}

	user := &entity.User{
		Email:     email,
		Username:  username,
		Password:  string(hashedPassword),
		Role:      entity.RoleUser,
		CountryID: countryID,
	}

	created, err := uc.userRepo.Create(user)
	if err != nil {
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", fmt.Errorf("failed to create user")
	}

	token, err := uc.jwtService.GenerateToken(created.ID, string(created.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	if uc.queueClient != nil {
		go func() {
			err := uc.queueClient.PublishEvent(map[string]interface{}{
				"type":    "user.registered",
				"user_id": created.ID,
			})
			if err != nil {
				uc.logger.Error("Failed to publish registration event: %v", err)
			}
		}()
	}

	created.Password = ""
	return created, token, nil
}

func (uc *authUseCase) Login(email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) GetUser(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (uc *authUseCase) UpdateProfile(userID string, username, countryID *string) (*entity.User, error) {
	if err := uc.userRepo.UpdateProfile(userID, username, nil, countryID); err != nil {
		return nil, err
	}
	return uc.GetUser(userID)
}

func (uc *authUseCase) UploadAvatar(userID string, fileReader io.Reader, fileKey string, contentType string) (*entity.User, error) {
	avatarURL, err := uc.s3Client.UploadFile(fileKey, fileReader, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload avatar: %v", err)
		return nil, fmt.Errorf("failed to upload avatar")
	}

	if err := uc.userRepo.UpdateProfile(userID, nil, &avatarURL, nil); err != nil {
		return nil, err
	}
	return uc.GetUser(userID)
}
