// Package model contains the database entities of the portal and the fixed
// enumerations stored in their status and role columns.
package model

import "time"

// AdminUser is a staff account able to sign in to the admin panel.
type AdminUser struct {
	Id           int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"size:80;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	Role         Role      `json:"role" gorm:"size:50;not null;default:investigator"`
	FullName     string    `json:"fullName" gorm:"size:150"`
	Position     string    `json:"position" gorm:"size:100"`
	Rank         string    `json:"rank" gorm:"size:100"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (AdminUser) TableName() string { return "admin_user" }

// IsAdmin reports whether the account holds the admin role.
func (u *AdminUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DisplayName falls back to the login when no full name is on record.
func (u *AdminUser) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// News is a published article. A non-nil ParentId makes it a sub-item of another
// article; only one level of nesting is rendered.
type News struct {
	Id          int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	IsPublished bool      `json:"isPublished" gorm:"not null"`
	ImageURL    *string   `json:"imageUrl" gorm:"size:255"`
	ParentId    *int      `json:"parentId" gorm:"index"`
	CreatedAt   time.Time `json:"createdAt" gorm:"not null"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"not null"`
}

func (News) TableName() string { return "news" }

// SiteInfo is the singleton row describing the head of the office.
type SiteInfo struct {
	Id              int     `json:"id" gorm:"primaryKey;autoIncrement"`
	LeaderFirstName *string `json:"leaderFirstName" gorm:"size:100"`
	LeaderLastName  *string `json:"leaderLastName" gorm:"size:100"`
	LeaderRank      *string `json:"leaderRank" gorm:"size:150"`
	LeaderPosition  *string `json:"leaderPosition" gorm:"size:150"`
	LeaderPhotoURL  *string `json:"leaderPhotoUrl" gorm:"size:255"`
}

func (SiteInfo) TableName() string { return "site_info" }

// Feedback is a citizen request sent through the public form.
type Feedback struct {
	Id        int            `json:"id" gorm:"primaryKey;autoIncrement"`
	FullName  string         `json:"fullName" gorm:"size:150;not null"`
	Email     *string        `json:"email" gorm:"size:150"`
	Phone     *string        `json:"phone" gorm:"size:50"`
	Message   string         `json:"message" gorm:"type:text;not null"`
	Status    FeedbackStatus `json:"status" gorm:"size:20;not null;default:new"`
	CreatedAt time.Time      `json:"createdAt" gorm:"not null"`
}

func (Feedback) TableName() string { return "feedback" }

// Notification is an entry of the shared staff inbox.
type Notification struct {
	Id         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Title      string    `json:"title" gorm:"size:200;not null"`
	Message    string    `json:"message" gorm:"type:text;not null"`
	IsRead     bool      `json:"isRead" gorm:"not null;default:false;index"`
	CreatedAt  time.Time `json:"createdAt" gorm:"not null"`
	FeedbackId *int      `json:"feedbackId"`
}

func (Notification) TableName() string { return "notification" }

// JobApplication is a request to join the staff. DesiredPassword holds a bcrypt
// hash that becomes the account password on approval.
type JobApplication struct {
	Id              int               `json:"id" gorm:"primaryKey;autoIncrement"`
	FullName        string            `json:"fullName" gorm:"size:150;not null"`
	DesiredUsername string            `json:"desiredUsername" gorm:"size:80;not null;index"`
	DesiredPassword string            `json:"-" gorm:"size:255;not null"`
	Question1       string            `json:"question1" gorm:"type:text;not null"`
	Question2       string            `json:"question2" gorm:"type:text;not null"`
	Question3       string            `json:"question3" gorm:"type:text;not null"`
	Question4       *string           `json:"question4" gorm:"type:text"`
	Question5       *string           `json:"question5" gorm:"type:text"`
	Question6       *string           `json:"question6" gorm:"type:text"`
	Question7       *string           `json:"question7" gorm:"type:text"`
	Question8       *string           `json:"question8" gorm:"type:text"`
	Status          ApplicationStatus `json:"status" gorm:"size:20;not null;default:pending"`
	CreatedAt       time.Time         `json:"createdAt" gorm:"not null"`
}

func (JobApplication) TableName() string { return "job_application" }

// Review is a public rating of the office. Reviews are listed regardless of status.
type Review struct {
	Id         int          `json:"id" gorm:"primaryKey;autoIncrement"`
	AuthorName string       `json:"authorName" gorm:"size:150;not null"`
	Rating     int          `json:"rating" gorm:"not null"`
	Title      string       `json:"title" gorm:"size:200;not null"`
	Content    string       `json:"content" gorm:"type:text;not null"`
	Status     ReviewStatus `json:"status" gorm:"size:20;not null;default:pending"`
	CreatedAt  time.Time    `json:"createdAt" gorm:"not null"`
}

func (Review) TableName() string { return "review" }

// Document is an internal paper submitted by a staff member for approval.
type Document struct {
	Id           int            `json:"id" gorm:"primaryKey;autoIncrement"`
	Title        string         `json:"title" gorm:"size:200;not null"`
	Content      string         `json:"content" gorm:"type:text;not null"`
	DocumentType string         `json:"documentType" gorm:"size:50;not null"`
	AuthorId     int            `json:"authorId" gorm:"not null;index"`
	Author       *AdminUser     `json:"author,omitempty" gorm:"foreignKey:AuthorId"`
	Status       DocumentStatus `json:"status" gorm:"size:20;not null;default:pending;index"`
	FileURL      *string        `json:"fileUrl" gorm:"size:255"`
	ApprovedById *int           `json:"approvedById" gorm:"index"`
	ApprovedBy   *AdminUser     `json:"approvedBy,omitempty" gorm:"foreignKey:ApprovedById"`
	CreatedAt    time.Time      `json:"createdAt" gorm:"not null"`
	ApprovedAt   *time.Time     `json:"approvedAt"`
}

func (Document) TableName() string { return "document" }

// SchemaMigration records an applied schema migration.
type SchemaMigration struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:200;not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (SchemaMigration) TableName() string { return "schema_migration" }
