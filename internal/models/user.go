package models

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Name         string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:200;not null"`
	Role         Role     `gorm:"type:varchar(16);not null"`
	Tickets      []Ticket `gorm:"constraint:OnDelete:CASCADE;"`
}

// UserResponse is the public shape of a user. The password hash never
// leaves the service.
type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u *User) Response() UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
