package model

import "errors"

// Group is a community posts can be published into. Groups are created
// administratively and referenced by slug in URLs.
type Group struct {
	ID          int64  `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Slug        string `db:"slug" json:"slug"`
	Description string `db:"description" json:"description"`
}

// Group constraints
const (
	MaxGroupTitleLength = 200
)

// Group errors
var (
	ErrGroupNotFound = errors.New("group not found")
	ErrSlugExists    = errors.New("group slug already exists")
)
