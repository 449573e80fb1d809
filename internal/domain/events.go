package domain

// Event type names published on the in-process bus.
const (
	EventTypeUserRegistered  = "user.registered"
	EventTypeRankPromoted    = "rank.promoted"
	EventTypeSeasonLevelUp   = "season.level_up"
	EventTypeContainerOpened = "container.opened"
	EventTypeBetSettled      = "bet.settled"
	EventTypeQuestCompleted  = "quest.completed"
	EventTypeItemCrafted     = "item.crafted"
	EventTypeBonusClaimed    = "bonus.claimed"
)
