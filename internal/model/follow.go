package model

import "time"

// Follow is a directed edge from a follower to an author. The pair is
// unique: a follower holds at most one edge to a given author.
type Follow struct {
	FollowerID int64     `db:"follower_id" json:"follower_id"`
	AuthorID   int64     `db:"author_id" json:"author_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
