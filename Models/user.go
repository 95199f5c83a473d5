package Models

import (
	"errors"
	"html"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Grades, lowest to highest privilege.
const (
	GradeUser      = "user"
	GradeClinician = "clinician"
	GradeAdmin     = "admin"
)

type User struct {
	gorm.Model
	Username  string     `gorm:"size:255;not null;unique" json:"username"`
	Password  string     `gorm:"size:255;not null" json:"password"`
	Grade     string     `gorm:"size:32;not null;default:user" json:"grade"`
	Email     string     `json:"email"`
	Avatar    string     `json:"avatar"`
	LastLogin *time.Time `json:"last_login"`
}

func GetUserByID(db *gorm.DB, uid uint) (User, error) {
	var user User
	if err := db.First(&user, uid).Error; err != nil {
		return user, errors.New("User not found")
	}
	user.PrepareGive()
	return user, nil
}

func (user *User) PrepareGive() {
	user.Password = ""
}

func VerifyPassword(password, hashedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// LoginCheck verifies the credentials and stamps last_login on success.
func LoginCheck(db *gorm.DB, username string, password string) (User, error) {
	var user User

	if err := db.Model(User{}).Where("username = ?", username).Take(&user).Error; err != nil {
		return User{}, err
	}

	if err := VerifyPassword(password, user.Password); err != nil {
		return User{}, err
	}

	now := time.Now()
	if err := db.Model(&User{}).Where("id = ?", user.ID).Update("last_login", now).Error; err != nil {
		return User{}, err
	}
	user.LastLogin = &now

	return user, nil
}

func (user *User) SaveUser(db *gorm.DB) (*User, error) {
	if err := user.BeforeSave(); err != nil {
		return &User{}, err
	}
	if err := db.Create(&user).Error; err != nil {
		return &User{}, err
	}
	return user, nil
}

func (user *User) BeforeSave() error {
	// turn password into hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)

	// remove spaces in username
	user.Username = html.EscapeString(strings.TrimSpace(user.Username))

	if user.Grade == "" {
		user.Grade = GradeUser
	}

	return nil
}
