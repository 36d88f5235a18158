package domain

import (
	"github.com/reeltrack/reeltrack/pkg/events"
)

// Event types published after a write commits.
const (
	EventReviewRecorded      = "review.recorded"
	EventReviewUpdated       = "review.updated"
	EventReviewDeleted       = "review.deleted"
	EventWatchedMarked       = "watched.marked"
	EventWatchedRemoved      = "watched.removed"
	EventWatchlistAdded      = "watchlist.added"
	EventWatchlistRemoved    = "watchlist.removed"
	EventListCreated         = "list.created"
	EventListUpdated         = "list.updated"
	EventListDeleted         = "list.deleted"
	EventListItemAdded       = "list.item_added"
	EventListItemRemoved     = "list.item_removed"
	EventCatalogMovieDeleted = "catalog.movie_deleted"
	EventCatalogTVDeleted    = "catalog.tvshow_deleted"
)

// EventTypes lists every event type the tracking services publish.
var EventTypes = []string{
	EventReviewRecorded, EventReviewUpdated, EventReviewDeleted,
	EventWatchedMarked, EventWatchedRemoved,
	EventWatchlistAdded, EventWatchlistRemoved,
	EventListCreated, EventListUpdated, EventListDeleted,
	EventListItemAdded, EventListItemRemoved,
	EventCatalogMovieDeleted, EventCatalogTVDeleted,
}

func mediaPayload(userID string, ref MediaRef) map[string]interface{} {
	return map[string]interface{}{
		"user_id":    userID,
		"media_type": string(ref.Kind()),
		"media_id":   ref.ID(),
	}
}

// NewReviewRecordedEvent is published when a review is stored.
func NewReviewRecordedEvent(r *Review) *events.BaseEvent {
	data := mediaPayload(r.UserID, r.Media)
	data["rating"] = r.Rating
	return events.NewAggregateEvent(EventReviewRecorded, r.ID, data)
}

// NewReviewUpdatedEvent is published when a review's rating or comment changes.
func NewReviewUpdatedEvent(r *Review) *events.BaseEvent {
	data := mediaPayload(r.UserID, r.Media)
	data["rating"] = r.Rating
	return events.NewAggregateEvent(EventReviewUpdated, r.ID, data)
}

// NewReviewDeletedEvent is published when a review is removed.
func NewReviewDeletedEvent(r *Review) *events.BaseEvent {
	return events.NewAggregateEvent(EventReviewDeleted, r.ID, mediaPayload(r.UserID, r.Media))
}

// NewWatchedMarkedEvent is published when a watched row is first created.
func NewWatchedMarkedEvent(w *Watched) *events.BaseEvent {
	return events.NewAggregateEvent(EventWatchedMarked, w.ID, mediaPayload(w.UserID, w.Media))
}

// NewWatchedRemovedEvent is published when a watched row is removed.
func NewWatchedRemovedEvent(w *Watched) *events.BaseEvent {
	return events.NewAggregateEvent(EventWatchedRemoved, w.ID, mediaPayload(w.UserID, w.Media))
}

// NewWatchlistAddedEvent is published when a watchlist row is first created.
func NewWatchlistAddedEvent(e *WatchlistEntry) *events.BaseEvent {
	return events.NewAggregateEvent(EventWatchlistAdded, e.ID, mediaPayload(e.UserID, e.Media))
}

// NewWatchlistRemovedEvent is published when a watchlist row is removed.
func NewWatchlistRemovedEvent(e *WatchlistEntry) *events.BaseEvent {
	return events.NewAggregateEvent(EventWatchlistRemoved, e.ID, mediaPayload(e.UserID, e.Media))
}

// NewListCreatedEvent is published when a list is created.
func NewListCreatedEvent(l *List) *events.BaseEvent {
	return events.NewAggregateEvent(EventListCreated, l.ID, map[string]interface{}{
		"owner_id": l.OwnerID,
		"name":     l.Name,
	})
}

// NewListUpdatedEvent is published when a list is renamed or redescribed.
func NewListUpdatedEvent(l *List) *events.BaseEvent {
	return events.NewAggregateEvent(EventListUpdated, l.ID, map[string]interface{}{
		"owner_id": l.OwnerID,
		"name":     l.Name,
	})
}

// NewListDeletedEvent is published when a list and its memberships are removed.
func NewListDeletedEvent(l *List) *events.BaseEvent {
	return events.NewAggregateEvent(EventListDeleted, l.ID, map[string]interface{}{
		"owner_id": l.OwnerID,
	})
}

// NewListItemAddedEvent is published when an item joins a list.
func NewListItemAddedEvent(l *List, ref MediaRef) *events.BaseEvent {
	return events.NewAggregateEvent(EventListItemAdded, l.ID, mediaPayload(l.OwnerID, ref))
}

// NewListItemRemovedEvent is published when an item leaves a list.
func NewListItemRemovedEvent(l *List, ref MediaRef) *events.BaseEvent {
	return events.NewAggregateEvent(EventListItemRemoved, l.ID, mediaPayload(l.OwnerID, ref))
}

// NewCatalogItemDeletedEvent is published when a movie or tv show is removed.
func NewCatalogItemDeletedEvent(ref MediaRef, listsAffected int64) *events.BaseEvent {
	eventType := EventCatalogMovieDeleted
	if ref.IsTVShow() {
		eventType = EventCatalogTVDeleted
	}
	return events.NewAggregateEvent(eventType, ref.String(), map[string]interface{}{
		"media_type":     string(ref.Kind()),
		"media_id":       ref.ID(),
		"lists_affected": listsAffected,
	})
}
