package tui

import "github.com/idilsaglam/mediafeed/internal/model"

// itemsMsg carries the latest list published by the controller.
type itemsMsg struct {
	items []model.FeedItem
}

type refreshingMsg struct {
	on bool
}

type loadingMoreMsg struct {
	on bool
}
