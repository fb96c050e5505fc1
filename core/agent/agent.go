// Package agent wires the message pipeline: intake, enrichment, intent
// resolution and action execution. One inbound message produces one reply
// string, synchronously.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mudler/xlog"

	"github.com/actually-app/actually/core/executor"
	"github.com/actually-app/actually/core/intake"
	"github.com/actually-app/actually/core/resolve"
	"github.com/actually-app/actually/core/types"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrNotConfigured = errors.New("completion client not configured")
)

const emptySavedItemsReply = "You have no saved items yet. Share a link and I'll save it for you."

type Agent struct {
	Users         types.UserStore
	SavedItems    types.SavedItemStore
	Conversations types.ConversationStore
	Log           types.ActionLog
	Fetcher       types.LinkFetcher
	Resolver      *resolve.Resolver
	Executor      *executor.Executor
}

// HandleMessage runs the full pipeline for one inbound message. channel
// partitions the conversation log; it has no other effect.
func (a *Agent) HandleMessage(ctx context.Context, externalID, message, channel string) (string, error) {
	user, err := a.Users.ByExternalID(ctx, externalID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	// Canned intent: answer from the store, skip the LLM and the executor.
	// This branch persists nothing.
	if intake.WantsSavedItems(message) {
		return a.savedItemsReply(ctx, user.ID)
	}

	var metadata *types.LinkMetadata
	var content *types.PageContent
	if urls := intake.ExtractURLs(message); len(urls) > 0 {
		metadata = a.Fetcher.FetchMetadata(ctx, urls[0])
		if metadata != nil {
			content = a.Fetcher.FetchPageContent(ctx, urls[0])
		}
	}

	if a.Resolver == nil {
		return "", ErrNotConfigured
	}
	resolution, err := a.Resolver.Resolve(ctx, message, metadata, content)
	if err != nil {
		return "", err
	}

	turnType := "chat"
	turnMetadata := map[string]any{}
	if metadata != nil {
		turnType = "summary"
		turnMetadata = map[string]any{"url": metadata.URL, "title": metadata.Title}
	}
	if err := a.Log.Record(ctx, types.ActionLogEntry{
		UserID:     user.ID,
		ActionType: turnType,
		InputText:  message,
		OutputText: resolution.Reply,
		Metadata:   turnMetadata,
	}); err != nil {
		return "", err
	}

	now := time.Now()
	if err := a.Conversations.Append(ctx, user.ID, channel,
		types.Message{Role: "user", Content: message, At: now},
		types.Message{Role: "assistant", Content: resolution.Reply, At: now},
	); err != nil {
		return "", err
	}

	results, err := a.Executor.Execute(ctx, user.ID, resolution.Actions)
	if err != nil {
		return "", err
	}

	// Sharing a bare link always saves it, even when the model returned no
	// actions. The confirmation is not appended to the reply.
	if metadata != nil && len(resolution.Actions) == 0 {
		implicit := types.ActionInput{
			Type:       types.ActionSaveLink,
			URL:        metadata.URL,
			Title:      metadata.Title,
			Collection: executor.CollectionFor(metadata.Title),
		}
		if _, err := a.Executor.Execute(ctx, user.ID, []types.ActionInput{implicit}); err != nil {
			return "", err
		}
		xlog.Debug("Implicit save executed", "user", user.ID, "url", metadata.URL)
	}

	if len(results) > 0 {
		return resolution.Reply + "\n\n" + strings.Join(results, " "), nil
	}
	return resolution.Reply, nil
}

func (a *Agent) savedItemsReply(ctx context.Context, userID uuid.UUID) (string, error) {
	items, err := a.SavedItems.Recent(ctx, userID, 5)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return emptySavedItemsReply, nil
	}

	var b strings.Builder
	b.WriteString("Here are your latest saved items:\n")
	for i, item := range items {
		title := item.Title
		if title == "" {
			title = item.URL
		}
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, title, item.URL)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
