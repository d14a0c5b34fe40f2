package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/desertthunder/festa/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request to the collection service
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	return r.apiCall(ctx, cmd, http.MethodGet)
}

// APIPost makes a direct POST request to the collection service
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	return r.apiCall(ctx, cmd, http.MethodPost)
}

// APIPatch makes a direct PATCH request to the collection service
func (r *Runner) APIPatch(ctx context.Context, cmd *cli.Command) error {
	return r.apiCall(ctx, cmd, http.MethodPatch)
}

// APIPut makes a direct PUT request to the collection service
func (r *Runner) APIPut(ctx context.Context, cmd *cli.Command) error {
	return r.apiCall(ctx, cmd, http.MethodPut)
}

// APIDelete makes a direct DELETE request to the collection service
func (r *Runner) APIDelete(ctx context.Context, cmd *cli.Command) error {
	return r.apiCall(ctx, cmd, http.MethodDelete)
}

func (r *Runner) apiCall(ctx context.Context, cmd *cli.Command, method string) error {
	if r.api == nil {
		return fmt.Errorf("%w: API client not initialized", shared.ErrServiceUnavailable)
	}

	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	var body []byte
	if method == http.MethodPost || method == http.MethodPatch || method == http.MethodPut {
		data := cmd.String("data")
		if data == "" {
			return fmt.Errorf("%w: --data flag is required", shared.ErrMissingArgument)
		}

		var jsonTest any
		if err := json.Unmarshal([]byte(data), &jsonTest); err != nil {
			return fmt.Errorf("%w: data is not valid JSON: %v", shared.ErrInvalidInput, err)
		}
		body = []byte(data)
	}

	r.logger.Info("API request", "method", method, "path", path)

	resp, err := r.api.Do(ctx, method, path, body)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if !resp.OK() {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, cmd.Bool("pretty"))
	}
	if len(resp.Body) == 0 {
		return r.writePlain("✓ %s %s: %d\n", method, path, resp.StatusCode)
	}

	r.output.Write(resp.Body)
	r.output.Write([]byte("\n"))
	return nil
}
