package model

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"
)

// LaunchRecord is one entry in the launch history.
type LaunchRecord struct {
	ID         string `json:"id" yaml:"id"`
	DesktopID  string `json:"desktop_id" yaml:"desktop_id"`
	Name       string `json:"name" yaml:"name"`
	LaunchedAt int64  `json:"launched_at" yaml:"launched_at"`
}

// Validation errors.
var (
	ErrEmptyRecordID   = errors.New("id cannot be empty")
	ErrEmptyDesktopID  = errors.New("desktop_id cannot be empty")
	ErrInvalidLaunchAt = errors.New("launched_at must be greater than 0")
)

// NewLaunchRecord creates a record for app with a generated ULID.
func NewLaunchRecord(app *Application) (*LaunchRecord, error) {
	now := time.Now()
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ULID: %w", err)
	}

	return &LaunchRecord{
		ID:         id.String(),
		DesktopID:  app.ID,
		Name:       app.DisplayName(),
		LaunchedAt: now.Unix(),
	}, nil
}

// Validate checks that the record has all required fields.
func (r *LaunchRecord) Validate() error {
	if r.ID == "" {
		return ErrEmptyRecordID
	}
	if r.DesktopID == "" {
		return ErrEmptyDesktopID
	}
	if r.LaunchedAt <= 0 {
		return ErrInvalidLaunchAt
	}
	return nil
}

// LaunchedAtTime returns the launch timestamp as a time.Time.
func (r *LaunchRecord) LaunchedAtTime() time.Time {
	return time.Unix(r.LaunchedAt, 0)
}

// RelativeTime returns a human-readable relative time such as "3 hours ago".
func (r *LaunchRecord) RelativeTime() string {
	return humanize.Time(r.LaunchedAtTime())
}
