package cms

import "time"

type Redirect struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OldPath        string    `gorm:"column:old_path;not null;index" json:"old_path"`
	SiteID         *uint     `gorm:"column:site_id;index" json:"site_id,omitempty"`
	IsPermanent    bool      `gorm:"column:is_permanent;not null;default:true" json:"is_permanent"`
	RedirectPageID *uint     `gorm:"column:redirect_page_id;index" json:"redirect_page_id,omitempty"`
	RedirectPage   *Page     `gorm:"foreignKey:RedirectPageID;references:ID" json:"redirect_page,omitempty"`
	RedirectLink   string    `gorm:"column:redirect_link;type:text" json:"redirect_link"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Redirect) TableName() string { return "cms_redirect" }
