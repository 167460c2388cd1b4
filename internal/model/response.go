package model

// The types below are the wire shapes consumed by existing camera-roll
// clients. Field names and units (milliseconds for exif_timestamp and the
// cursor, seconds for timestamp and playableDuration) are a compatibility
// surface: do not rename or re-unit them.

// Location is an EXIF-derived coordinate pair.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ImageInfo describes the file behind a node. PlayableDuration is only set
// for videos, in whole seconds.
type ImageInfo struct {
	URI              string  `json:"uri"`
	Filename         string  `json:"filename"`
	Width            float64 `json:"width"`
	Height           float64 `json:"height"`
	PlayableDuration *int    `json:"playableDuration,omitempty"`
}

// Node is one media item in a page.
type Node struct {
	Type          string    `json:"type"`
	GroupName     string    `json:"group_name"`
	Timestamp     float64   `json:"timestamp"`
	Image         ImageInfo `json:"image"`
	ExifTimestamp *float64  `json:"exif_timestamp,omitempty"`
	Location      *Location `json:"location,omitempty"`
}

// Edge wraps a node, GraphQL-connection style.
type Edge struct {
	Node Node `json:"node"`
}

// PageInfo carries the pagination state of a response. EndCursor is set iff
// HasNextPage is true and always points at the last row inside the page.
type PageInfo struct {
	HasNextPage bool    `json:"has_next_page"`
	EndCursor   *string `json:"end_cursor,omitempty"`
}

// PhotosPage is the full response of a get_photos call.
type PhotosPage struct {
	Edges    []Edge   `json:"edges"`
	PageInfo PageInfo `json:"page_info"`
}
