// Package domain contains the core concepts of the assistant backend.
// This file defines what the secretary and the experts hand back to the client.
package domain

// CameraDirective tells the client which framing to use for the next capture.
type CameraDirective string

const (
	CameraNormal CameraDirective = "normal"
	CameraWide   CameraDirective = "wide"
)

// ParseCameraDirective accepts only the two exact wire values.
func ParseCameraDirective(s string) (CameraDirective, bool) {
	switch CameraDirective(s) {
	case CameraNormal, CameraWide:
		return CameraDirective(s), true
	default:
		return "", false
	}
}

const MaxBurstCount = 9

// ClassificationResult is the secretary's triage of one user utterance.
// ExpertID is always derived from ExpertName through the catalog.
type ClassificationResult struct {
	ExpertName      string
	ExpertID        int
	Reply           string
	CameraDirective CameraDirective
	BurstCount      int
}

// ExpertReply is the raw natural-language answer of an expert.
type ExpertReply struct {
	Reply string `json:"reply"`
}
