package app

import (
	"context"
	"sync"

	"github.com/bft-labs/ballchaser/internal/domain"
	"github.com/bft-labs/ballchaser/internal/ports"
)

// mockLogger implements ports.Logger for testing.
type mockLogger struct{}

func (mockLogger) Debug(msg string, fields ...ports.Field) {}
func (mockLogger) Info(msg string, fields ...ports.Field)  {}
func (mockLogger) Warn(msg string, fields ...ports.Field)  {}
func (mockLogger) Error(msg string, fields ...ports.Field) {}

// recordingSink records every command and optionally fails.
type recordingSink struct {
	mu   sync.Mutex
	cmds []domain.VelocityCommand
	err  error
}

func (s *recordingSink) Drive(ctx context.Context, cmd domain.VelocityCommand) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cmds = append(s.cmds, cmd)
	return s.err
}

func (s *recordingSink) Commands() []domain.VelocityCommand {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.VelocityCommand{}, s.cmds...)
}

// sliceSource is a finite ports.FrameSource.
type sliceSource struct {
	mu      sync.Mutex
	frames  []domain.Frame
	openErr []error // consumed one per Open call
	opens   int
	closes  int
}

func (s *sliceSource) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opens++
	if len(s.openErr) > 0 {
		err := s.openErr[0]
		s.openErr = s.openErr[1:]
		return err
	}
	return nil
}

func (s *sliceSource) Next(ctx context.Context) (domain.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return domain.Frame{}, ports.ErrNoMoreFrames
	}
	f := s.frames[0]
	s.frames = s.frames[1:]
	return f, nil
}

func (s *sliceSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return nil
}

// blankFrame returns an all-zero frame of the given geometry.
func blankFrame(height, step int) domain.Frame {
	return domain.Frame{Height: height, Step: step, Pixels: make([]byte, height*step)}
}

// markAt returns a copy of f with a marker pixel starting at byte offset i.
func markAt(f domain.Frame, i int, marker byte) domain.Frame {
	px := append([]byte(nil), f.Pixels...)
	px[i], px[i+1], px[i+2] = marker, marker, marker
	f.Pixels = px
	return f
}
