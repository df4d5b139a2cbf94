package models

// Project represents a portfolio project with its metadata and image references
type Project struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription"`
	Features        []string `json:"features"`
	Images          []string `json:"images"`
	Technologies    []string `json:"technologies"`
	GithubRepo      string   `json:"githubRepo"`
	LiveDemo        string   `json:"liveDemo,omitempty"`
	InProgress      bool     `json:"inProgress,omitempty"`
}
