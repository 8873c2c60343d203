package redisrepo

import "fmt"

const (
	POST_KEY                = "post:%d"                // <postID>
	POST_COMMENTS_COUNT_KEY = "post:%d-comments-count" // <postID>
	USER_CACHE_KEY          = "user-cache:%s"          // <userID>
)

func PostKey(postID int64) string {
	return fmt.Sprintf(POST_KEY, postID)
}

func PostCommentsCountKey(postID int64) string {
	return fmt.Sprintf(POST_COMMENTS_COUNT_KEY, postID)
}

func UserCacheKey(userID string) string {
	return fmt.Sprintf(USER_CACHE_KEY, userID)
}
