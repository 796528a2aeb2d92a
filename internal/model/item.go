package model

// FeedItem is one card in the feed.
// Values are never mutated in place; the controller swaps in a new copy.
type FeedItem struct {
	ID        int    `json:"id"`
	ImageURL  string `json:"imageUrl"`
	AvatarURL string `json:"avatarUrl"`
	Title     string `json:"title"`
	Username  string `json:"username"`
	LikeCount int    `json:"likeCount"`
	IsLiked   bool   `json:"isLiked"`
}

// ToggledLike returns a copy with the like state flipped and the counter
// moved by one in the same direction.
func (it FeedItem) ToggledLike() FeedItem {
	if it.IsLiked {
		it.IsLiked = false
		if it.LikeCount > 0 {
			it.LikeCount--
		}
		return it
	}
	it.IsLiked = true
	it.LikeCount++
	return it
}
