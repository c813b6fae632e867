package ui

import "github.com/theapemachine/study-assistant/pkg/study"

// Message types for internal events
type generatedMsg struct{ outcome study.Outcome }
