package cms

import (
	"fmt"
	"strings"
)

type Locale struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	LanguageCode string `gorm:"column:language_code;not null;uniqueIndex" json:"language_code"`
}

func (Locale) TableName() string { return "cms_locale" }

type Site struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Hostname      string `gorm:"column:hostname;not null;uniqueIndex:idx_site_host_port,priority:1" json:"hostname"`
	Port          int    `gorm:"column:port;not null;default:80;uniqueIndex:idx_site_host_port,priority:2" json:"port"`
	SiteName      string `gorm:"column:site_name" json:"site_name"`
	RootPageID    uint   `gorm:"column:root_page_id;not null;index" json:"root_page_id"`
	RootPage      *Page  `gorm:"foreignKey:RootPageID;references:ID" json:"root_page,omitempty"`
	IsDefaultSite bool   `gorm:"column:is_default_site;not null;default:false" json:"is_default_site"`
}

func (Site) TableName() string { return "cms_site" }

func (s *Site) RootURL() string {
	if s == nil {
		return ""
	}
	host := strings.TrimSpace(s.Hostname)
	switch s.Port {
	case 0, 80:
		return "http://" + host
	case 443:
		return "https://" + host
	default:
		return fmt.Sprintf("http://%s:%d", host, s.Port)
	}
}

// SiteRootPath is the cached projection of a site used for URL building.
type SiteRootPath struct {
	SiteID       uint   `json:"site_id"`
	RootPath     string `json:"root_path"`
	RootURLPath  string `json:"root_url_path"`
	RootURL      string `json:"root_url"`
	LanguageCode string `json:"language_code"`
}
