// Package remote is the reconciliation client for the store authority. It
// never fails its caller: pulls degrade to "use what you have" and pushes
// are fire-and-forget, so the device keeps working in local-only mode
// whenever the authority is unreachable.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Generous cap: collection payloads carry base64 images.
const maxBodyBytes = 64 << 20

type Client struct {
	base string
	hc   *http.Client
	log  *slog.Logger
}

func NewClient(base string, log *slog.Logger) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 15 * time.Second},
		log:  log,
	}
}

// Pull reads the named collection. The second return is false on any
// transport or protocol failure, and for the null marker the authority
// returns for unknown names; the caller keeps its last known value.
func (c *Client) Pull(ctx context.Context, name string) (json.RawMessage, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/data/"+name, nil)
	if err != nil {
		return nil, false
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Debug("pull failed, staying local", slog.String("name", name), slog.Any("err", err))
		return nil, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.log.Debug("pull rejected", slog.String("name", name), slog.Int("status", resp.StatusCode))
		return nil, false
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, false
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || !json.Valid(raw) {
		return nil, false
	}
	return raw, true
}

// Push writes the named collection wholesale. Errors are logged and
// swallowed; convergence is retried by the next write or pull cycle.
func (c *Client) Push(ctx context.Context, name string, raw json.RawMessage) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/data/"+name, bytes.NewReader(raw))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn("push failed, remote out of sync", slog.String("name", name), slog.Any("err", err))
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("push rejected", slog.String("name", name), slog.Int("status", resp.StatusCode))
	}
}

// Snapshot returns every collection the authority holds. Diagnostics only;
// the coordinator's normal path never calls it.
func (c *Client) Snapshot(ctx context.Context) (map[string]json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/full-sync", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("full-sync returned status %d", resp.StatusCode)
	}
	var doc map[string]json.RawMessage
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode full-sync: %w", err)
	}
	return doc, nil
}
