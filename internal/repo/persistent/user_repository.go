package persistent

import (
	"lingora/internal/entity"
	"lingora/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *entity.User) (*entity.User, error)
	GetByID(userID string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	UpdateProfile(userID string, username, profilePictureURL, countryID *string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *entity.User) (*entity.User, error) {
	userModel := model.UserModel{
		Email:     user.Email,
		Username:  user.Username,
		Password:  user.Password,
		Role:      string(user.Role),
		Points:    user.Points,
		Level:     1,
		CountryID: user.CountryID,
	}
	if err := r.db.Create(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByID(userID string) (*entity.User, error) {
	var userModel model.UserModel
	err := r.db.Preload("Country").Where("id = ?", userID).First(&userModel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByEmail(email string) (*entity.User, error) {
	var userModel model.UserModel
	err := r.db.Where("email = ?", email).First(&userModel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByUsername(username string) (*entity.User, error) {
	var userModel model.UserModel
	err := r.db.Where("username = ?", username).First(&userModel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) UpdateProfile(userID string, username, profilePictureURL, countryID *string) error {
	updates := map[string]interface{}{}
	if username != nil {
		updates["username"] = *username
	}
	if profilePictureURL != nil {
		updates["profile_picture_url"] = *profilePictureURL
	}
	if countryID != nil {
		updates["country_id"] = *countryID
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.db.Model(&model.UserModel{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
