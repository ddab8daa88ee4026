package upstream

import "net/http"

// endpoint maps a tool to an X API v2 route. Path templates use {arg}
// placeholders filled from call arguments; {me} resolves to the
// authenticated user's ID. Arguments consumed by the path are removed; the
// rest become query parameters for GET/DELETE or the JSON body otherwise.
type endpoint struct {
	method string
	path   string
}

var endpoints = map[string]endpoint{
	// research
	"search_twitter":              {http.MethodGet, "/2/tweets/search/recent"},
	"search_articles":             {http.MethodGet, "/2/tweets/search/recent"},
	"get_trends":                  {http.MethodGet, "/2/trends/by/woeid/{woeid}"},
	"get_user_profile":            {http.MethodGet, "/2/users/{user_id}"},
	"get_user_by_screen_name":     {http.MethodGet, "/2/users/by/username/{screen_name}"},
	"get_user_by_id":              {http.MethodGet, "/2/users/{user_id}"},
	"get_user_followers":          {http.MethodGet, "/2/users/{user_id}/followers"},
	"get_user_following":          {http.MethodGet, "/2/users/{user_id}/following"},
	"get_user_followers_you_know": {http.MethodGet, "/2/users/{user_id}/followers"},
	"get_user_subscriptions":      {http.MethodGet, "/2/users/{user_id}/following"},
	"get_tweet_details":           {http.MethodGet, "/2/tweets/{tweet_id}"},
	"get_user_tweets":             {http.MethodGet, "/2/users/{user_id}/tweets"},
	"get_liked_tweets":            {http.MethodGet, "/2/users/{user_id}/liked_tweets"},
	"get_timeline":                {http.MethodGet, "/2/users/{me}/timelines/reverse_chronological"},
	"get_latest_timeline":         {http.MethodGet, "/2/users/{me}/timelines/reverse_chronological"},
	"get_user_mentions":           {http.MethodGet, "/2/users/{user_id}/mentions"},
	"get_highlights_tweets":       {http.MethodGet, "/2/users/{user_id}/tweets"},

	// engage
	"favorite_tweet":   {http.MethodPost, "/2/users/{me}/likes"},
	"unfavorite_tweet": {http.MethodDelete, "/2/users/{me}/likes/{tweet_id}"},
	"bookmark_tweet":   {http.MethodPost, "/2/users/{me}/bookmarks"},
	"delete_bookmark":  {http.MethodDelete, "/2/users/{me}/bookmarks/{tweet_id}"},
	"get_bookmarks":    {http.MethodGet, "/2/users/{me}/bookmarks"},
	"retweet":          {http.MethodPost, "/2/users/{me}/retweets"},
	"unretweet":        {http.MethodDelete, "/2/users/{me}/retweets/{tweet_id}"},
	"get_retweets":     {http.MethodGet, "/2/tweets/{tweet_id}/retweeted_by"},

	// publish
	"post_tweet":        {http.MethodPost, "/2/tweets"},
	"delete_tweet":      {http.MethodDelete, "/2/tweets/{tweet_id}"},
	"quote_tweet":       {http.MethodPost, "/2/tweets"},
	"create_poll_tweet": {http.MethodPost, "/2/tweets"},

	// social
	"follow_user":       {http.MethodPost, "/2/users/{me}/following"},
	"unfollow_user":     {http.MethodDelete, "/2/users/{me}/following/{user_id}"},
	"block_user":        {http.MethodPost, "/2/users/{me}/blocking"},
	"unblock_user":      {http.MethodDelete, "/2/users/{me}/blocking/{user_id}"},
	"get_blocked_users": {http.MethodGet, "/2/users/{me}/blocking"},
	"mute_user":         {http.MethodPost, "/2/users/{me}/muting"},
	"unmute_user":       {http.MethodDelete, "/2/users/{me}/muting/{user_id}"},
	"get_muted_users":   {http.MethodGet, "/2/users/{me}/muting"},

	// conversations
	"get_conversation": {http.MethodGet, "/2/tweets/search/recent"},
	"get_replies":      {http.MethodGet, "/2/tweets/search/recent"},
	"get_quote_tweets": {http.MethodGet, "/2/tweets/{tweet_id}/quote_tweets"},
	"hide_reply":       {http.MethodPut, "/2/tweets/{tweet_id}/hidden"},
	"unhide_reply":     {http.MethodPut, "/2/tweets/{tweet_id}/hidden"},

	// lists
	"create_list":        {http.MethodPost, "/2/lists"},
	"delete_list":        {http.MethodDelete, "/2/lists/{list_id}"},
	"update_list":        {http.MethodPut, "/2/lists/{list_id}"},
	"get_list":           {http.MethodGet, "/2/lists/{list_id}"},
	"get_user_lists":     {http.MethodGet, "/2/users/{user_id}/owned_lists"},
	"get_list_tweets":    {http.MethodGet, "/2/lists/{list_id}/tweets"},
	"get_list_members":   {http.MethodGet, "/2/lists/{list_id}/members"},
	"add_list_member":    {http.MethodPost, "/2/lists/{list_id}/members"},
	"remove_list_member": {http.MethodDelete, "/2/lists/{list_id}/members/{user_id}"},
	"follow_list":        {http.MethodPost, "/2/users/{me}/followed_lists"},
	"unfollow_list":      {http.MethodDelete, "/2/users/{me}/followed_lists/{list_id}"},
	"pin_list":           {http.MethodPost, "/2/users/{me}/pinned_lists"},
	"unpin_list":         {http.MethodDelete, "/2/users/{me}/pinned_lists/{list_id}"},

	// dms
	"send_dm":              {http.MethodPost, "/2/dm_conversations/with/{user_id}/messages"},
	"get_dm_conversations": {http.MethodGet, "/2/dm_events"},
	"get_dm_events":        {http.MethodGet, "/2/dm_conversations/{dm_conversation_id}/dm_events"},

	// account
	"get_me": {http.MethodGet, "/2/users/me"},
}
