package model

// Bounds applied to both note title and content.
const (
	NoteFieldMinLen = 5
	NoteFieldMaxLen = 255
)

// Note represents a personal text note owned by exactly one user.
type Note struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Title   string `json:"title" gorm:"size:255;not null"`
	Content string `json:"content" gorm:"size:255;not null"`
	UserID  uint   `json:"user_id" gorm:"not null;index"` // immutable after creation
	CreationMetadata

	User *User `json:"-" gorm:"foreignKey:UserID"`
}

// TableName keeps the table name singular.
func (Note) TableName() string { return "note" }
