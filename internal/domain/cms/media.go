package cms

import (
	"path"
	"time"
)

const (
	ImageTypeLabel    = "wagtailimages.Image"
	DocumentTypeLabel = "wagtaildocs.Document"
)

type Image struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"column:title;not null" json:"title"`
	File      string    `gorm:"column:file;not null" json:"file"`
	Width     int       `gorm:"column:width;not null" json:"width"`
	Height    int       `gorm:"column:height;not null" json:"height"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Image) TableName() string { return "cms_image" }

type Document struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"column:title;not null" json:"title"`
	File      string    `gorm:"column:file;not null" json:"file"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Document) TableName() string { return "cms_document" }

func (d *Document) Filename() string {
	if d == nil || d.File == "" {
		return ""
	}
	return path.Base(d.File)
}
