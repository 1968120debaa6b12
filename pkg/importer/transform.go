package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/protoboard/protoboard/pkg/catalog"
	"github.com/protoboard/protoboard/pkg/httputil"
)

// HookContext is what an in-process transformer sees.
type HookContext struct {
	URL           string
	BoardID       string
	Content       string
	DefaultModule catalog.ModuleMetadata
}

// Hook refines an imported module in process. Returning a nil patch keeps
// the module as is. Errors and panics are contained by the importer.
type Hook func(ctx context.Context, hc HookContext) (*Patch, error)

// transformRequest is the body POSTed to the external transformer.
type transformRequest struct {
	URL     string                 `json:"url"`
	BoardID string                 `json:"boardId"`
	Content string                 `json:"content"`
	Module  catalog.ModuleMetadata `json:"module"`
}

// transformResult is the external transformer's answer after decoding.
type transformResult struct {
	Patch   *Patch
	Message string
}

// callTransformer POSTs the heuristic module to the configured endpoint. The
// response is either {"module": {...}, "message": "..."} or a bare partial
// module.
func (im *Importer) callTransformer(ctx context.Context, req transformRequest) (*transformResult, error) {
	r := im.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req)
	if im.token != "" {
		r.SetAuthToken(im.token)
	}

	resp, err := r.Post(im.endpoint)
	if err != nil {
		return nil, fmt.Errorf("transformer request: %w", err)
	}
	if err := httputil.CheckResponse(resp); err != nil {
		return nil, fmt.Errorf("transformer request failed with status %d", resp.StatusCode())
	}
	return decodeTransformResult(resp.Body())
}

func decodeTransformResult(body []byte) (*transformResult, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode transformer response: %w", err)
	}

	out := &transformResult{}
	if raw, ok := envelope["message"]; ok {
		_ = json.Unmarshal(raw, &out.Message)
	}

	moduleJSON := body
	if raw, ok := envelope["module"]; ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		moduleJSON = raw
	}
	var p Patch
	if err := json.Unmarshal(moduleJSON, &p); err != nil {
		return nil, fmt.Errorf("decode transformer module: %w", err)
	}
	if !p.IsZero() {
		out.Patch = &p
	}
	return out, nil
}

// runHook calls the in-process hook, turning a panic into an error.
func runHook(ctx context.Context, hook Hook, hc HookContext) (p *Patch, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transformer panic: %v", r)
		}
	}()
	return hook(ctx, hc)
}
