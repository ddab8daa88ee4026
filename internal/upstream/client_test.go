package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kestrelsec/xward/internal/model"
)

type capturedRequest struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

// newTestServer answers /2/users/me with a fixed ID and records every other
// request, replying with the given status and payload.
func newTestServer(t *testing.T, status int, payload string, captured *[]capturedRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/2/users/me" {
			fmt.Fprint(w, `{"data":{"id":"9001","username":"gatekeeper"}}`)
			return
		}

		req := capturedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
		}
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			var body map[string]any
			if err := json.Unmarshal(raw, &body); err != nil {
				t.Errorf("request body is not JSON: %v", err)
			}
			req.Body = body
		}
		*captured = append(*captured, req)

		w.WriteHeader(status)
		fmt.Fprint(w, payload)
	}))
}

func TestGetArgsBecomeQueryParameters(t *testing.T) {
	var reqs []capturedRequest
	srv := newTestServer(t, 200, `{"data":[]}`, &reqs)
	defer srv.Close()

	c := NewClient(srv.URL, "token", nil)
	_, err := c.Invoke(context.Background(), "search_twitter", map[string]any{
		"query": "golang",
		"count": 25,
	})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	if len(reqs) != 1 {
		t.Fatalf("requests = %d", len(reqs))
	}
	if reqs[0].Method != http.MethodGet || reqs[0].Path != "/2/tweets/search/recent" {
		t.Errorf("routed to %s %s", reqs[0].Method, reqs[0].Path)
	}
	if reqs[0].Query != "max_results=25&query=golang" {
		t.Errorf("query = %q", reqs[0].Query)
	}
}

func TestPathPlaceholderConsumesArgument(t *testing.T) {
	var reqs []capturedRequest
	srv := newTestServer(t, 200, `{"data":{}}`, &reqs)
	defer srv.Close()

	c := NewClient(srv.URL, "token", nil)
	_, err := c.Invoke(context.Background(), "get_tweet_details", map[string]any{"tweet_id": "123"})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if reqs[0].Path != "/2/tweets/123" {
		t.Errorf("path = %q", reqs[0].Path)
	}
	if reqs[0].Query != "" {
		t.Errorf("tweet_id leaked into query: %q", reqs[0].Query)
	}
}

func TestMissingPathArgumentIsInvalidConfiguration(t *testing.T) {
	c := NewClient("http://unreachable.invalid", "token", nil)
	_, err := c.Invoke(context.Background(), "get_tweet_details", nil)

	var uerr *model.Error
	if !errors.As(err, &uerr) || uerr.Type != model.ErrInvalidConfiguration {
		t.Fatalf("err = %v, want invalid_configuration", err)
	}
}

func TestMutationResolvesMeAndPostsBody(t *testing.T) {
	var reqs []capturedRequest
	srv := newTestServer(t, 200, `{"data":{"liked":true}}`, &reqs)
	defer srv.Close()

	c := NewClient(srv.URL, "token", nil)
	_, err := c.Invoke(context.Background(), "favorite_tweet", map[string]any{"tweet_id": "42"})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	if reqs[0].Method != http.MethodPost || reqs[0].Path != "/2/users/9001/likes" {
		t.Errorf("routed to %s %s", reqs[0].Method, reqs[0].Path)
	}
	if reqs[0].Body["tweet_id"] != "42" {
		t.Errorf("body = %v", reqs[0].Body)
	}
}

func TestFollowUserRenamesTargetArgument(t *testing.T) {
	var reqs []capturedRequest
	srv := newTestServer(t, 200, `{"data":{"following":true}}`, &reqs)
	defer srv.Close()

	c := NewClient(srv.URL, "token", nil)
	if _, err := c.Invoke(context.Background(), "follow_user", map[string]any{"user_id": "77"}); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if reqs[0].Body["target_user_id"] != "77" {
		t.Errorf("body = %v, want target_user_id", reqs[0].Body)
	}
	if _, leaked := reqs[0].Body["user_id"]; leaked {
		t.Error("user_id should have been renamed, not duplicated")
	}
}

func TestMeIDCachedAcrossCalls(t *testing.T) {
	meCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/2/users/me" {
			meCalls++
			fmt.Fprint(w, `{"data":{"id":"9001"}}`)
			return
		}
		fmt.Fprint(w, `{"data":{}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token", nil)
	for i := 0; i < 3; i++ {
		if _, err := c.Invoke(context.Background(), "retweet", map[string]any{"tweet_id": "1"}); err != nil {
			t.Fatalf("Invoke %d: %v", i, err)
		}
	}
	if meCalls != 1 {
		t.Errorf("me lookups = %d, want 1", meCalls)
	}
}

func TestUpstreamErrorCarriesStatusAndBody(t *testing.T) {
	var reqs []capturedRequest
	srv := newTestServer(t, 403, `{"title":"Forbidden"}`, &reqs)
	defer srv.Close()

	c := NewClient(srv.URL, "token", nil)
	_, err := c.Invoke(context.Background(), "delete_tweet", map[string]any{"tweet_id": "5"})

	var uerr *model.Error
	if !errors.As(err, &uerr) {
		t.Fatalf("err = %v", err)
	}
	if uerr.Type != model.ErrUpstream || uerr.Status != 403 {
		t.Errorf("type/status = %s/%d", uerr.Type, uerr.Status)
	}
	if uerr.Details["body"] != `{"title":"Forbidden"}` {
		t.Errorf("details = %v", uerr.Details)
	}
}

func TestCreateThreadChainsReplies(t *testing.T) {
	var bodies []map[string]any
	next := 100
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2/tweets" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		json.Unmarshal(raw, &body)
		bodies = append(bodies, body)
		next++
		fmt.Fprintf(w, `{"data":{"id":"%d"}}`, next)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token", nil)
	out, err := c.Invoke(context.Background(), "create_thread", map[string]any{
		"tweets": []any{"first", "second", "third"},
	})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	if len(bodies) != 3 {
		t.Fatalf("posted %d tweets, want 3", len(bodies))
	}
	if _, hasReply := bodies[0]["reply"]; hasReply {
		t.Error("first tweet should not be a reply")
	}
	reply, _ := bodies[1]["reply"].(map[string]any)
	if reply["in_reply_to_tweet_id"] != "101" {
		t.Errorf("second tweet reply = %v", bodies[1])
	}

	result, _ := out.(map[string]any)
	ids, _ := result["tweet_ids"].([]string)
	if len(ids) != 3 || ids[2] != "103" {
		t.Errorf("result = %v", result)
	}
}

func TestCreateThreadRejectsEmptyInput(t *testing.T) {
	c := NewClient("http://unreachable.invalid", "token", nil)
	_, err := c.Invoke(context.Background(), "create_thread", map[string]any{"tweets": []any{}})

	var uerr *model.Error
	if !errors.As(err, &uerr) || uerr.Type != model.ErrInvalidConfiguration {
		t.Fatalf("err = %v, want invalid_configuration", err)
	}
}

func TestDeleteAllBookmarksPagesUntilEmpty(t *testing.T) {
	var deleted []string
	remaining := []string{"1", "2", "3"}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/2/users/me":
			fmt.Fprint(w, `{"data":{"id":"9001"}}`)
		case r.Method == http.MethodGet:
			items := make([]string, 0, len(remaining))
			for _, id := range remaining {
				items = append(items, fmt.Sprintf(`{"id":%q}`, id))
			}
			fmt.Fprintf(w, `{"data":[%s]}`, joinComma(items))
		case r.Method == http.MethodDelete:
			id := r.URL.Path[len("/2/users/9001/bookmarks/"):]
			deleted = append(deleted, id)
			remaining = remaining[1:]
			fmt.Fprint(w, `{"data":{"bookmarked":false}}`)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token", nil)
	out, err := c.Invoke(context.Background(), "delete_all_bookmarks", nil)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	if len(deleted) != 3 {
		t.Errorf("deleted %v, want 3 ids", deleted)
	}
	result, _ := out.(map[string]any)
	if result["deleted"] != 3 {
		t.Errorf("result = %v", result)
	}
}

func TestUnconfiguredInvokerAlwaysFails(t *testing.T) {
	var inv Invoker = Unconfigured{}
	_, err := inv.Invoke(context.Background(), "get_me", nil)

	var uerr *model.Error
	if !errors.As(err, &uerr) || uerr.Type != model.ErrInvalidConfiguration {
		t.Fatalf("err = %v, want invalid_configuration", err)
	}
}

func joinComma(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ","
		}
		out += s
	}
	return out
}
