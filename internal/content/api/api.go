// Package api holds the JSON response shapes served by the page API. The
// static OpenAPI components are reflected from these structs.
package api

import "time"

type PageMeta struct {
	Type             string     `json:"type"`
	DetailURL        string     `json:"detail_url"`
	HTMLURL          *string    `json:"html_url"`
	Slug             string     `json:"slug"`
	FirstPublishedAt *time.Time `json:"first_published_at"`
	LastPublishedAt  *time.Time `json:"last_published_at"`
	Locale           string     `json:"locale"`
}

type PageParentMeta struct {
	Type      string  `json:"type"`
	DetailURL string  `json:"detail_url"`
	HTMLURL   *string `json:"html_url"`
}

type PageParent struct {
	ID    uint           `json:"id"`
	Title string         `json:"title"`
	Meta  PageParentMeta `json:"meta"`
}

type PageDetailMeta struct {
	PageMeta
	ShowInMenus       bool        `json:"show_in_menus"`
	SeoTitle          string      `json:"seo_title"`
	SearchDescription string      `json:"search_description"`
	Parent            *PageParent `json:"parent"`
}

// BasePage is a page list item.
type BasePage struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	Meta        PageMeta `json:"meta"`
	ContentType string   `json:"content_type"`
}

// BasePageDetail is served for pages whose content type is not registered.
type BasePageDetail struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Meta        PageDetailMeta `json:"meta"`
	ContentType string         `json:"content_type"`
}

type MediaMeta struct {
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

type Image struct {
	ID     uint      `json:"id"`
	Title  string    `json:"title"`
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Meta   MediaMeta `json:"meta"`
}

type Document struct {
	ID    uint      `json:"id"`
	Title string    `json:"title"`
	Meta  MediaMeta `json:"meta"`
}

type Redirect struct {
	ID          uint   `json:"id"`
	OldPath     string `json:"old_path"`
	IsPermanent bool   `json:"is_permanent"`
	Location    string `json:"location"`
}

type HTTP404Response struct {
	Detail string `json:"detail"`
}

type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}
