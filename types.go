package main

// VideoInfo is the response body for /info.
type VideoInfo struct {
	Title       string `json:"title"`
	Duration    int    `json:"duration"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Author      string `json:"author"`
	Description string `json:"description"`
	ViewCount   int    `json:"viewCount"`
}

// HealthStatus is the response body for /health.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Uptime    string `json:"uptime"`
}

// APIError is the JSON body sent for every failed request.
type APIError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
