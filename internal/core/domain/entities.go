package domain

import (
	"encoding/json"
	"time"
)

// Role represents user role in the system
type Role string

const (
	RoleStudent    Role = "student"
	RoleModerator  Role = "moderator"
	RoleGatekeeper Role = "gatekeeper"
	RoleAdmin      Role = "admin"
)

// Conventional pass statuses. Status is free text: any other value is stored as given.
const (
	PassStatusPending  = "pending"
	PassStatusApproved = "approved"
	PassStatusRejected = "rejected"
)

// DefaultPassCategory is used when a pass is created without a category
const DefaultPassCategory = "general"

// User represents an account in the snapshot
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Password     string     `json:"password"` // plain text unless bcrypt hashing is enabled
	Role         Role       `json:"role"`
	Name         string     `json:"name"`
	StudentID    string     `json:"studentId,omitempty"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Course       string     `json:"course,omitempty"`
	Year         string     `json:"year,omitempty"`
	RegisteredAt *time.Time `json:"registeredAt,omitempty"`
}

// UnmarshalJSON accepts numbers and booleans for the text fields,
// so records written by other clients (e.g. "year": 2) still load.
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	aux := struct {
		*plain
		ID        Scalar `json:"id"`
		Username  Scalar `json:"username"`
		Password  Scalar `json:"password"`
		Role      Scalar `json:"role"`
		Name      Scalar `json:"name"`
		StudentID Scalar `json:"studentId"`
		Email     Scalar `json:"email"`
		Phone     Scalar `json:"phone"`
		Course    Scalar `json:"course"`
		Year      Scalar `json:"year"`
	}{plain: (*plain)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	u.ID = aux.ID.String()
	u.Username = aux.Username.String()
	u.Password = aux.Password.String()
	u.Role = Role(aux.Role)
	u.Name = aux.Name.String()
	u.StudentID = aux.StudentID.String()
	u.Email = aux.Email.String()
	u.Phone = aux.Phone.String()
	u.Course = aux.Course.String()
	u.Year = aux.Year.String()
	return nil
}

// UserResponse is the public projection of a user
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
}

// ToResponse drops the password and personal fields
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		Name:     u.Name,
	}
}

// Pass represents a gate pass request
type Pass struct {
	ID               string     `json:"id"`
	StudentID        string     `json:"studentId,omitempty"`
	StudentName      string     `json:"studentName,omitempty"`
	Reason           string     `json:"reason,omitempty"`
	Category         string     `json:"category"`
	ReturnTime       *string    `json:"returnTime"`
	Notes            string     `json:"notes"`
	Status           string     `json:"status"`
	ModeratorRemarks string     `json:"moderatorRemarks"`
	RequestedAt      time.Time  `json:"requestedAt"`
	ApprovedAt       *time.Time `json:"approvedAt"`
	UsedAt           *time.Time `json:"usedAt"`
}

// UnmarshalJSON accepts numbers and booleans for the text fields
func (p *Pass) UnmarshalJSON(data []byte) error {
	type plain Pass
	aux := struct {
		*plain
		ID               Scalar  `json:"id"`
		StudentID        Scalar  `json:"studentId"`
		StudentName      Scalar  `json:"studentName"`
		Reason           Scalar  `json:"reason"`
		Category         Scalar  `json:"category"`
		ReturnTime       *Scalar `json:"returnTime"`
		Notes            Scalar  `json:"notes"`
		Status           Scalar  `json:"status"`
		ModeratorRemarks Scalar  `json:"moderatorRemarks"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	p.ID = aux.ID.String()
	p.StudentID = aux.StudentID.String()
	p.StudentName = aux.StudentName.String()
	p.Reason = aux.Reason.String()
	p.Category = aux.Category.String()
	p.ReturnTime = aux.ReturnTime.StringPtr()
	p.Notes = aux.Notes.String()
	p.Status = aux.Status.String()
	p.ModeratorRemarks = aux.ModeratorRemarks.String()
	return nil
}

// IsApproved reports whether the pass may be used at the gate
func (p *Pass) IsApproved() bool {
	return p.Status == PassStatusApproved
}

// IsUsed reports whether the pass was marked used
func (p *Pass) IsUsed() bool {
	return p.UsedAt != nil
}

// Snapshot is the whole persisted database
type Snapshot struct {
	Users  []User `json:"users"`
	Passes []Pass `json:"passes"`
}

// Normalize replaces nil collections with empty ones so they encode as []
func (s *Snapshot) Normalize() {
	if s.Users == nil {
		s.Users = []User{}
	}
	if s.Passes == nil {
		s.Passes = []Pass{}
	}
}

// FindPass returns the index of the pass with the given ID, or -1
func (s *Snapshot) FindPass(id string) int {
	for i := range s.Passes {
		if s.Passes[i].ID == id {
			return i
		}
	}
	return -1
}
