// Package http delivers velocity commands to a drive service over HTTP.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/bft-labs/ballchaser/internal/domain"
	"github.com/bft-labs/ballchaser/internal/ports"
)

// DefaultDriveURL is the drive service endpoint of a local ball_chaser node.
const DefaultDriveURL = "http://localhost:8000/ball_chaser/command_robot"

// driveRequest is the JSON body of a drive call.
type driveRequest struct {
	LinearX  float64 `json:"linear_x"`
	AngularZ float64 `json:"angular_z"`
}

// DriveSink implements ports.ActuationSink by POSTing commands to a drive
// service. Timeouts come from the HTTP client; there are no retries.
type DriveSink struct {
	client ports.HTTPClient
	url    string
	logger ports.Logger
}

// NewDriveSink creates a sink posting to url.
func NewDriveSink(client ports.HTTPClient, url string, logger ports.Logger) *DriveSink {
	return &DriveSink{
		client: client,
		url:    url,
		logger: logger,
	}
}

// Drive sends one command. Any non-2xx response is an error.
func (s *DriveSink) Drive(ctx context.Context, cmd domain.VelocityCommand) error {
	body, err := json.Marshal(driveRequest{LinearX: cmd.Linear, AngularZ: cmd.Angular})
	if err != nil {
		return fmt.Errorf("marshal command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("drive service returned %d: %s", resp.StatusCode, bytes.TrimSpace(respBody))
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	s.logger.Debug("command delivered",
		ports.String("request_id", requestID),
		ports.Float64("linear_x", cmd.Linear),
		ports.Float64("angular_z", cmd.Angular),
	)
	return nil
}

var _ ports.ActuationSink = (*DriveSink)(nil)
