package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"slices"

	sdkerrors "github.com/harvinder-fsd/roster/client/internal/errors"
	"github.com/harvinder-fsd/roster/client/internal/types"
)

// maxErrorBody bounds how much of a failed response is kept on the error.
const maxErrorBody = 4 << 10

// doJSON sends in (when non-nil) as JSON and decodes a success body into out
// (when non-nil). Any status outside ok becomes a *ClassifiedError; so does a
// transport failure, with status 0.
func doJSON(ctx context.Context, hc types.HTTPClient, op, method, url string, in, out any, ok ...int) error {
	if err := ctx.Err(); err != nil {
		return sdkerrors.NewNetworkError(op, err)
	}
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return sdkerrors.NewNetworkError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !slices.Contains(ok, resp.StatusCode) {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return sdkerrors.NewHTTPError(resp.StatusCode, string(b), op)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return sdkerrors.NewNetworkError(op, err)
	}
	return nil
}
