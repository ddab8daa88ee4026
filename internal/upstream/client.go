package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kestrelsec/xward/internal/model"
)

// DefaultBaseURL is the production X API host.
const DefaultBaseURL = "https://api.twitter.com"

// Client is a bearer-token Invoker against the X API v2.
type Client struct {
	base   string
	token  string
	http   *http.Client
	logger *zap.Logger

	mu sync.Mutex
	me string
}

// NewClient builds a REST invoker. baseURL may be empty for production.
func NewClient(baseURL, token string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		token:  token,
		http:   &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// Invoke routes a tool call to its X API endpoint and returns the decoded
// response payload.
func (c *Client) Invoke(ctx context.Context, tool string, args map[string]any) (any, error) {
	switch tool {
	case "create_thread":
		return c.createThread(ctx, args)
	case "delete_all_bookmarks":
		return c.deleteAllBookmarks(ctx)
	}

	ep, ok := endpoints[tool]
	if !ok {
		return nil, model.NewInvalidConfiguration("tool %q has no upstream endpoint", tool)
	}

	shaped, err := shapeArgs(tool, cloneArgs(args))
	if err != nil {
		return nil, err
	}

	path, remaining, err := c.fillPath(ctx, ep.path, shaped)
	if err != nil {
		return nil, err
	}

	return c.do(ctx, ep.method, path, remaining)
}

// shapeArgs rewrites caller arguments where a tool's contract differs from
// the raw endpoint. Everything else passes through untouched.
func shapeArgs(tool string, args map[string]any) (map[string]any, error) {
	switch tool {
	case "search_articles":
		if q, ok := args["query"].(string); ok {
			args["query"] = "(" + q + ") has:links"
		}
	case "get_trends":
		if _, ok := args["woeid"]; !ok {
			// Worldwide trends
			args["woeid"] = "1"
		}
	case "quote_tweet":
		if id, ok := args["tweet_id"]; ok {
			delete(args, "tweet_id")
			args["quote_tweet_id"] = id
		}
	case "create_poll_tweet":
		poll := map[string]any{}
		if opts, ok := args["options"]; ok {
			delete(args, "options")
			poll["options"] = opts
		}
		if dur, ok := args["duration_minutes"]; ok {
			delete(args, "duration_minutes")
			poll["duration_minutes"] = dur
		}
		if len(poll) > 0 {
			args["poll"] = poll
		}
	case "favorite_tweet", "bookmark_tweet", "retweet":
		// body carries tweet_id as-is
	case "follow_user", "block_user", "mute_user":
		if id, ok := args["user_id"]; ok {
			delete(args, "user_id")
			args["target_user_id"] = id
		}
	case "get_conversation", "get_replies":
		if id, ok := args["tweet_id"]; ok {
			delete(args, "tweet_id")
			args["query"] = fmt.Sprintf("conversation_id:%v", id)
		}
	case "hide_reply":
		args["hidden"] = true
	case "unhide_reply":
		args["hidden"] = false
	case "search_twitter", "get_timeline", "get_latest_timeline":
		if q, ok := args["count"]; ok {
			delete(args, "count")
			args["max_results"] = q
		}
	}
	return args, nil
}

// fillPath substitutes {placeholder} segments from args, consuming the
// arguments it uses. {me} resolves to the authenticated user's ID.
func (c *Client) fillPath(ctx context.Context, template string, args map[string]any) (string, map[string]any, error) {
	segments := strings.Split(template, "/")
	for i, seg := range segments {
		if !strings.HasPrefix(seg, "{") || !strings.HasSuffix(seg, "}") {
			continue
		}
		name := seg[1 : len(seg)-1]

		if name == "me" {
			id, err := c.meID(ctx)
			if err != nil {
				return "", nil, err
			}
			segments[i] = url.PathEscape(id)
			continue
		}

		v, ok := args[name]
		if !ok {
			return "", nil, model.NewInvalidConfiguration("missing required argument %q", name)
		}
		delete(args, name)
		segments[i] = url.PathEscape(fmt.Sprint(v))
	}
	return strings.Join(segments, "/"), args, nil
}

// meID resolves and caches the authenticated user's ID.
func (c *Client) meID(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.me != "" {
		return c.me, nil
	}

	payload, err := c.do(ctx, http.MethodGet, "/2/users/me", nil)
	if err != nil {
		return "", err
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		return "", model.NewUpstream(http.StatusBadGateway, "malformed /2/users/me response", nil)
	}
	data, _ := obj["data"].(map[string]any)
	id, _ := data["id"].(string)
	if id == "" {
		return "", model.NewUpstream(http.StatusBadGateway, "/2/users/me response missing user id", nil)
	}

	c.me = id
	return id, nil
}

// do performs one HTTP exchange. For GET and DELETE the remaining arguments
// become query parameters; otherwise they are sent as the JSON body.
func (c *Client) do(ctx context.Context, method, path string, args map[string]any) (any, error) {
	target := c.base + path

	var body io.Reader
	switch method {
	case http.MethodGet, http.MethodDelete:
		if len(args) > 0 {
			q := url.Values{}
			for k, v := range args {
				q.Set(k, fmt.Sprint(v))
			}
			target += "?" + q.Encode()
		}
	default:
		if args == nil {
			args = map[string]any{}
		}
		encoded, err := json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, model.NewUpstream(http.StatusBadGateway, fmt.Sprintf("request failed: %v", err), nil)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, model.NewUpstream(http.StatusBadGateway, fmt.Sprintf("read response: %v", err), nil)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		details := map[string]any{"body": strings.TrimSpace(string(raw))}
		c.logger.Debug("upstream error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return nil, model.NewUpstream(resp.StatusCode, http.StatusText(resp.StatusCode), details)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{"status": resp.StatusCode}, nil
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, model.NewUpstream(http.StatusBadGateway, fmt.Sprintf("decode response: %v", err), nil)
	}
	return payload, nil
}

// createThread posts tweets sequentially, each replying to the previous one.
// A mid-thread failure returns the error along with the IDs already posted
// so the caller can clean up or resume.
func (c *Client) createThread(ctx context.Context, args map[string]any) (any, error) {
	texts, err := threadTexts(args["tweets"])
	if err != nil {
		return nil, err
	}

	var ids []string
	var prev string
	for i, text := range texts {
		body := map[string]any{"text": text}
		if prev != "" {
			body["reply"] = map[string]any{"in_reply_to_tweet_id": prev}
		}
		payload, err := c.do(ctx, http.MethodPost, "/2/tweets", body)
		if err != nil {
			if uerr := model.AsError(err); len(ids) > 0 {
				if uerr.Details == nil {
					uerr.Details = map[string]any{}
				}
				uerr.Details["posted_tweet_ids"] = ids
				uerr.Details["failed_at_index"] = i
				return nil, uerr
			}
			return nil, err
		}
		id := tweetID(payload)
		if id == "" {
			return nil, model.NewUpstream(http.StatusBadGateway, "tweet created but response missing id", nil)
		}
		ids = append(ids, id)
		prev = id
	}

	return map[string]any{"tweet_ids": ids, "count": len(ids)}, nil
}

func threadTexts(v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return nil, model.NewInvalidConfiguration("create_thread requires a non-empty tweets array")
	}
	texts := make([]string, 0, len(items))
	for _, item := range items {
		switch t := item.(type) {
		case string:
			texts = append(texts, t)
		case map[string]any:
			if s, ok := t["text"].(string); ok {
				texts = append(texts, s)
				continue
			}
			return nil, model.NewInvalidConfiguration("thread entry missing text field")
		default:
			return nil, model.NewInvalidConfiguration("thread entries must be strings or objects with a text field")
		}
	}
	return texts, nil
}

func tweetID(payload any) string {
	obj, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	data, _ := obj["data"].(map[string]any)
	id, _ := data["id"].(string)
	return id
}

// deleteAllBookmarks pages through the bookmark list and deletes each entry.
func (c *Client) deleteAllBookmarks(ctx context.Context) (any, error) {
	me, err := c.meID(ctx)
	if err != nil {
		return nil, err
	}

	deleted := 0
	for {
		payload, err := c.do(ctx, http.MethodGet, "/2/users/"+url.PathEscape(me)+"/bookmarks", nil)
		if err != nil {
			return nil, err
		}
		obj, _ := payload.(map[string]any)
		data, _ := obj["data"].([]any)
		if len(data) == 0 {
			break
		}
		for _, item := range data {
			entry, _ := item.(map[string]any)
			id, _ := entry["id"].(string)
			if id == "" {
				continue
			}
			if _, err := c.do(ctx, http.MethodDelete, "/2/users/"+url.PathEscape(me)+"/bookmarks/"+url.PathEscape(id), nil); err != nil {
				return nil, err
			}
			deleted++
		}
	}

	return map[string]any{"deleted": deleted}, nil
}

func cloneArgs(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = v
	}
	return out
}
