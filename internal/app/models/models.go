// Package models holds the persisted entities of both domains: trainers and
// their pokemon, and students enrolled in courses.
package models
