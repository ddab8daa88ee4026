package registry

// Rate bucket categories. Tools that mutate or enumerate at cost draw from
// one of these; read-mostly tools carry no category and bypass limiting.
const (
	CategoryTweetActions = "tweet_actions"
	CategoryLikes        = "likes"
	CategoryFollows      = "follows"
	CategoryDMs          = "dms"
	CategoryLists        = "lists"
)

// catalog is the full static tool table. One row per tool; group membership,
// rate category, and the unsupported flag all live here so there is exactly
// one place to audit.
var catalog = []Descriptor{
	// research
	{Name: "search_twitter", Group: GroupResearch, Description: "Search Twitter with a query, includes engagement metrics and author info"},
	{Name: "search_articles", Group: GroupResearch, Description: "Search for tweets that contain X articles on a topic"},
	{Name: "get_trends", Group: GroupResearch, Description: "Retrieves trending topics on Twitter"},
	{Name: "get_article", Group: GroupResearch, Description: "Fetch full content of an X/Twitter article from a tweet or article URL"},
	{Name: "get_user_profile", Group: GroupResearch, Description: "Get detailed profile information for a user"},
	{Name: "get_user_by_screen_name", Group: GroupResearch, Description: "Fetches a user by screen name"},
	{Name: "get_user_by_id", Group: GroupResearch, Description: "Fetches a user by ID"},
	{Name: "get_user_followers", Group: GroupResearch, RateCategory: CategoryFollows, Description: "Retrieves a list of followers for a given user"},
	{Name: "get_user_following", Group: GroupResearch, RateCategory: CategoryFollows, Description: "Retrieves users the given user is following"},
	{Name: "get_user_followers_you_know", Group: GroupResearch, RateCategory: CategoryFollows, Description: "Retrieves common followers between you and a user"},
	{Name: "get_user_subscriptions", Group: GroupResearch, RateCategory: CategoryFollows, Description: "Retrieves users a user is subscribed to"},
	{Name: "get_tweet_details", Group: GroupResearch, Description: "Get detailed information about a specific tweet"},
	{Name: "get_user_tweets", Group: GroupResearch, Description: "Get tweets posted by a specific user"},
	{Name: "get_liked_tweets", Group: GroupResearch, Description: "Get tweets liked by a specific user"},
	{Name: "get_timeline", Group: GroupResearch, Description: "Get tweets from your home timeline (For You)"},
	{Name: "get_latest_timeline", Group: GroupResearch, Description: "Get tweets from your home timeline (Following)"},
	{Name: "get_user_mentions", Group: GroupResearch, Description: "Get tweets mentioning a specific user"},
	{Name: "get_highlights_tweets", Group: GroupResearch, Description: "Retrieves highlighted tweets from a user's timeline"},

	// engage
	{Name: "favorite_tweet", Group: GroupEngage, RateCategory: CategoryLikes, Description: "Like a tweet"},
	{Name: "unfavorite_tweet", Group: GroupEngage, RateCategory: CategoryLikes, Description: "Unlike a tweet"},
	{Name: "bookmark_tweet", Group: GroupEngage, RateCategory: CategoryTweetActions, Description: "Add a tweet to bookmarks"},
	{Name: "delete_bookmark", Group: GroupEngage, RateCategory: CategoryTweetActions, Description: "Remove a tweet from bookmarks"},
	{Name: "delete_all_bookmarks", Group: GroupEngage, RateCategory: CategoryTweetActions, Description: "Delete all bookmarks"},
	{Name: "get_bookmarks", Group: GroupEngage, Description: "Get your bookmarked tweets"},
	{Name: "retweet", Group: GroupEngage, RateCategory: CategoryTweetActions, Description: "Retweet a tweet"},
	{Name: "unretweet", Group: GroupEngage, RateCategory: CategoryTweetActions, Description: "Remove a retweet"},
	{Name: "get_retweets", Group: GroupEngage, Description: "Get users who retweeted a tweet"},

	// publish
	{Name: "post_tweet", Group: GroupPublish, RateCategory: CategoryTweetActions, Description: "Post a tweet with optional media, reply, and tags"},
	{Name: "delete_tweet", Group: GroupPublish, RateCategory: CategoryTweetActions, Description: "Delete a tweet by its ID"},
	{Name: "quote_tweet", Group: GroupPublish, RateCategory: CategoryTweetActions, Description: "Quote tweet with your comment"},
	{Name: "create_thread", Group: GroupPublish, RateCategory: CategoryTweetActions, Description: "Post a thread of multiple tweets"},
	{Name: "create_poll_tweet", Group: GroupPublish, RateCategory: CategoryTweetActions, Description: "Create a tweet with a poll"},
	{Name: "vote_on_poll", Group: GroupPublish, Unsupported: true, Description: "Vote on a poll (not supported by the X API)"},
	{Name: "schedule_tweet", Group: GroupPublish, Unsupported: true, Description: "Schedule a tweet (not supported by the X API)"},
	{Name: "get_scheduled_tweets", Group: GroupPublish, Unsupported: true, Description: "List scheduled tweets (not supported by the X API)"},
	{Name: "delete_scheduled_tweet", Group: GroupPublish, Unsupported: true, Description: "Delete a scheduled tweet (not supported by the X API)"},

	// social
	{Name: "follow_user", Group: GroupSocial, RateCategory: CategoryFollows, Description: "Follow a user"},
	{Name: "unfollow_user", Group: GroupSocial, RateCategory: CategoryFollows, Description: "Unfollow a user"},
	{Name: "block_user", Group: GroupSocial, RateCategory: CategoryFollows, Description: "Block a user"},
	{Name: "unblock_user", Group: GroupSocial, RateCategory: CategoryFollows, Description: "Unblock a user"},
	{Name: "get_blocked_users", Group: GroupSocial, Description: "Get list of blocked users"},
	{Name: "mute_user", Group: GroupSocial, RateCategory: CategoryFollows, Description: "Mute a user"},
	{Name: "unmute_user", Group: GroupSocial, RateCategory: CategoryFollows, Description: "Unmute a user"},
	{Name: "get_muted_users", Group: GroupSocial, Description: "Get list of muted users"},

	// conversations
	{Name: "get_conversation", Group: GroupConversations, Description: "Get full conversation/thread for a tweet"},
	{Name: "get_replies", Group: GroupConversations, Description: "Get replies to a specific tweet"},
	{Name: "get_quote_tweets", Group: GroupConversations, Description: "Get tweets that quote a specific tweet"},
	{Name: "hide_reply", Group: GroupConversations, RateCategory: CategoryTweetActions, Description: "Hide a reply to your tweet"},
	{Name: "unhide_reply", Group: GroupConversations, RateCategory: CategoryTweetActions, Description: "Unhide a previously hidden reply"},

	// lists
	{Name: "create_list", Group: GroupLists, RateCategory: CategoryLists, Description: "Create a new list"},
	{Name: "delete_list", Group: GroupLists, RateCategory: CategoryLists, Description: "Delete a list"},
	{Name: "update_list", Group: GroupLists, RateCategory: CategoryLists, Description: "Update a list's name, description, or privacy"},
	{Name: "get_list", Group: GroupLists, Description: "Get details about a specific list"},
	{Name: "get_user_lists", Group: GroupLists, Description: "Get lists owned by a user"},
	{Name: "get_list_tweets", Group: GroupLists, Description: "Get tweets from a list's timeline"},
	{Name: "get_list_members", Group: GroupLists, Description: "Get members of a list"},
	{Name: "add_list_member", Group: GroupLists, RateCategory: CategoryLists, Description: "Add a user to a list"},
	{Name: "remove_list_member", Group: GroupLists, RateCategory: CategoryLists, Description: "Remove a user from a list"},
	{Name: "follow_list", Group: GroupLists, RateCategory: CategoryLists, Description: "Follow a list"},
	{Name: "unfollow_list", Group: GroupLists, RateCategory: CategoryLists, Description: "Unfollow a list"},
	{Name: "pin_list", Group: GroupLists, RateCategory: CategoryLists, Description: "Pin a list to your profile"},
	{Name: "unpin_list", Group: GroupLists, RateCategory: CategoryLists, Description: "Unpin a list from your profile"},

	// dms
	{Name: "send_dm", Group: GroupDMs, RateCategory: CategoryDMs, Description: "Send a direct message to a user"},
	{Name: "get_dm_conversations", Group: GroupDMs, Description: "Get your DM conversations"},
	{Name: "get_dm_events", Group: GroupDMs, Description: "Get messages in a DM conversation"},
	{Name: "delete_dm", Group: GroupDMs, Unsupported: true, Description: "Delete a direct message (not supported by the X API)"},

	// account
	{Name: "get_me", Group: GroupAccount, Description: "Get your own user profile"},
	{Name: "update_profile", Group: GroupAccount, Unsupported: true, Description: "Update profile fields (not supported by the X API v2)"},
	{Name: "update_profile_image", Group: GroupAccount, Unsupported: true, Description: "Update profile image (not supported by the X API v2)"},
	{Name: "update_banner", Group: GroupAccount, Unsupported: true, Description: "Update profile banner (not supported by the X API v2)"},
}
