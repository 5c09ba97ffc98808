package domain

import "time"

type UserRole string

const (
	RoleTenant          UserRole = "tenant"
	RoleLandlord        UserRole = "landlord"
	RoleAgent           UserRole = "agent"
	RolePropertyManager UserRole = "property_manager"
	RoleContractor      UserRole = "contractor"
)

// ManagerRoles are the roles allowed to manage properties, assign contractors
// and override payment state.
var ManagerRoles = []UserRole{RoleAgent, RoleLandlord, RolePropertyManager}

func IsManagerRole(r UserRole) bool {
	for _, m := range ManagerRoles {
		if r == m {
			return true
		}
	}
	return false
}

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ContractorProfile struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"uniqueIndex;not null" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Specialty string    `gorm:"index" json:"specialty"`
	Location  string    `gorm:"index" json:"location,omitempty"`
	AddedByID int64     `gorm:"index" json:"added_by_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (ContractorProfile) TableName() string { return "contractor_profiles" }

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// ContractorInvitation links an inviter (agent/landlord/property manager) to a
// contractor. At most one pending or accepted invitation may exist per pair;
// the repository enforces this with a partial unique index.
type ContractorInvitation struct {
	ID           int64            `gorm:"primaryKey" json:"id"`
	InviterID    int64            `gorm:"index:idx_live_invitation,unique,where:status <> 'declined';not null" json:"inviter_id"`
	ContractorID int64            `gorm:"index:idx_live_invitation,unique,where:status <> 'declined';not null" json:"contractor_id"`
	Status       InvitationStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (ContractorInvitation) TableName() string { return "contractor_invitations" }

// Principal is the authenticated actor taken from the request token.
type Principal struct {
	UserID int64
	Role   UserRole
}
