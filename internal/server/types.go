// SPDX-License-Identifier: EPL-2.0

// Package server exposes the trim pipeline over HTTP. It holds trim
// sessions by id and keeps its DTOs separate from the domain types.
package server

import (
	"github.com/ik5/audtrim/trim"
	"github.com/ik5/audtrim/waveform"
)

// TrimRequest selects the window to keep, in seconds. Both bounds are
// required; values outside the audio are clamped by the pipeline.
type TrimRequest struct {
	// Start is the first second to keep.
	Start *float64 `json:"start" validate:"required"`
	// End is the second the window stops at (exclusive).
	End *float64 `json:"end" validate:"required"`
}

// WaveformQuery is parsed from the waveform query string.
type WaveformQuery struct {
	Bins int `validate:"min=1,max=10000"`
}

// SourceResponse describes the loaded file.
type SourceResponse struct {
	Name   string `json:"name"`
	MIME   string `json:"mime"`
	Format string `json:"format"`
	Size   int    `json:"size"`
}

// SessionResponse is the state of one trim session.
type SessionResponse struct {
	// ID is the session identifier used in every session route.
	ID string `json:"id"`
	// Source is the loaded file, if any.
	Source *SourceResponse `json:"source,omitempty"`
	// Artifact is the latest published trim, if any.
	Artifact *trim.Artifact `json:"artifact,omitempty"`
}

// TrimResponse describes a published trim.
type TrimResponse struct {
	trim.Artifact

	SampleRate int     `json:"sample_rate"`
	Channels   int     `json:"channels"`
	Frames     int     `json:"frames"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Seconds    float64 `json:"seconds"`
}

// WaveformResponse carries the scrub surface peaks.
type WaveformResponse struct {
	SampleRate int             `json:"sample_rate"`
	Channels   int             `json:"channels"`
	Seconds    float64         `json:"seconds"`
	Peaks      []waveform.Peak `json:"peaks"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	// Error is the human-readable error message.
	Error string `json:"error"`
	// Code is the error code for programmatic handling.
	Code string `json:"code"`
}

// HealthResponse is the HTTP response for the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	// Types lists the accepted upload media types.
	Types    []string `json:"types"`
	Sessions int      `json:"sessions"`
}
