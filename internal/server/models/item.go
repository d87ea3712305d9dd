// Package models defines the records stored and served by the collection server.
package models

// Item is one record of the collection, in its wire shape.
type Item struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}
