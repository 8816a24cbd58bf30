package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/xpanvictor/quickpost/internal/domains/user"
	"gorm.io/gorm"
)

// UserEntity represents the database entity for User with GORM tags
type UserEntity struct {
	ID                 string         `gorm:"primaryKey;type:char(36);not null"`
	FirstName          string         `gorm:"column:first_name;type:varchar(100);not null"`
	LastName           string         `gorm:"column:last_name;type:varchar(100)"`
	Mobile             *string        `gorm:"uniqueIndex;type:varchar(15)"` // NULL when not given
	Area               string         `gorm:"type:varchar(191)"`
	District           string         `gorm:"type:varchar(100);index"`
	State              string         `gorm:"type:varchar(100)"`
	Password           string         `gorm:"column:password_hash;type:char(60);not null"`
	MustChangePassword bool           `gorm:"not null;default:false"`
	CreatedAt          time.Time      `gorm:"autoCreateTime(3)"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime(3)"`
	DeletedAt          gorm.DeletedAt `gorm:"index"` // For soft delete
}

// TableName returns the table name for GORM
func (UserEntity) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook to ensure UUID is set
func (u *UserEntity) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// ToDomain converts UserEntity to domain User
func (u *UserEntity) ToDomain() *user.User {
	mobile := ""
	if u.Mobile != nil {
		mobile = *u.Mobile
	}
	return &user.User{
		ID:                 u.ID,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Mobile:             mobile,
		Location:           user.Location{Area: u.Area, District: u.District, State: u.State},
		Password:           u.Password,
		MustChangePassword: u.MustChangePassword,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

// FromDomain converts domain User to UserEntity
func (u *UserEntity) FromDomain(d *user.User) {
	u.ID = d.ID
	u.FirstName = d.FirstName
	u.LastName = d.LastName
	u.Mobile = nil
	if d.Mobile != "" {
		m := d.Mobile
		u.Mobile = &m
	}
	u.Area = d.Location.Area
	u.District = d.Location.District
	u.State = d.Location.State
	u.Password = d.Password
	u.MustChangePassword = d.MustChangePassword
	u.CreatedAt = d.CreatedAt
	u.UpdatedAt = d.UpdatedAt
}

// NewUserEntityFromDomain creates a new UserEntity from domain User
func NewUserEntityFromDomain(d *user.User) *UserEntity {
	entity := &UserEntity{}
	entity.FromDomain(d)
	return entity
}
