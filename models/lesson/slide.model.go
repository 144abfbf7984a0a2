package lesson

import "gorm.io/gorm"

// SlideType discriminates slide content
type SlideType string

const (
	SlideText     SlideType = "TEXT"
	SlideQuestion SlideType = "QUESTION"
	SlideCode     SlideType = "CODE"
	SlideMedia    SlideType = "MEDIA"
)

// Slide is the smallest content unit within a lesson
type Slide struct {
	gorm.Model
	LessonID       uint      `gorm:"index;not null" json:"lesson_id"`
	Title          string    `json:"title"`
	Type           SlideType `gorm:"type:varchar(20);not null" json:"type"`
	Order          int       `gorm:"default:0" json:"order"`
	IsRequired     bool      `gorm:"default:true" json:"is_required"`
	CompletionTime uint      `gorm:"default:60" json:"completion_time"` // seconds
	XPAvailable    uint      `gorm:"default:10" json:"xp_available"`
	IsDeleted      bool      `gorm:"default:false" json:"-"`
}

// TextSlide holds the content of a text slide
type TextSlide struct {
	gorm.Model
	SlideID   uint   `gorm:"uniqueIndex;not null" json:"slide_id"`
	Content   string `gorm:"type:text" json:"content"`
	Highlight string `gorm:"type:text" json:"highlight,omitempty"`
}

// QuestionSlide binds a question to a slide
type QuestionSlide struct {
	gorm.Model
	SlideID     uint `gorm:"uniqueIndex;not null" json:"slide_id"`
	QuestionID  uint `gorm:"index;not null" json:"question_id"`
	IsForReview bool `gorm:"default:false" json:"is_for_review"`

	Slide Slide `gorm:"foreignKey:SlideID" json:"slide,omitempty"`
}

// CodeEditor holds the content of a code slide
type CodeEditor struct {
	gorm.Model
	SlideID      uint   `gorm:"uniqueIndex;not null" json:"slide_id"`
	CodeBody     string `gorm:"type:text" json:"code_body"`
	CodeLanguage string `json:"code_language"`
	Runnable     bool   `gorm:"default:false" json:"runnable"`
	StaticCode   bool   `gorm:"default:false" json:"static_code"`
}

// MediaFile is a media attachment on a slide
type MediaFile struct {
	gorm.Model
	SlideID     uint   `gorm:"index;not null" json:"slide_id"`
	Title       string `json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	FilePath    string `gorm:"not null" json:"file_path"`
	MediaType   string `gorm:"type:varchar(20);default:'OTHER'" json:"media_type"` // IMAGE, VIDEO, AUDIO, DOCUMENT, OTHER
	Order       int    `gorm:"default:0" json:"order"`
	FileSize    int64  `json:"file_size,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}
