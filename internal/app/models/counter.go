package models

// Counter backs the human-facing sequential codes (PAT-000001, APT-000001, ...).
// One document per sequence name, incremented atomically.
type Counter struct {
	ID    string `json:"id" bson:"_id"`
	Value int64  `json:"value" bson:"value"`
}
