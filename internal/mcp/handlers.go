// ABOUTME: MCP tool handler implementations for the haven server
// ABOUTME: Tool errors come back as tool results, not protocol errors

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/havenjournal/haven/internal/core"
	"github.com/havenjournal/haven/internal/extract"
	"github.com/havenjournal/haven/internal/models"
	"github.com/havenjournal/haven/internal/storage"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	pipeline            *core.Pipeline
	extractor           *extract.Extractor
	diary               *storage.DiaryStore
	chats               *storage.ChatStore
	people              *storage.PeopleStore
	events              *storage.EventStore
	metrics             *storage.MetricsStore
	diaryContextEntries int
}

// JournalChat handles the journal_chat tool
func (h *Handlers) JournalChat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("message argument is required and must be a string"), nil
	}

	session, err := h.resolveSession(request.GetString("session_id", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading session: %v", err)), nil
	}

	session, err = h.chats.AppendMessage(session.ID, models.Message{Role: models.RoleUser, Content: message})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recording message: %v", err)), nil
	}

	diaryContext, err := h.diary.Context(h.diaryContextEntries)
	if err != nil {
		// Chat still works without background context
		log.Printf("[MCP] diary context unavailable: %v", err)
		diaryContext = ""
	}

	result, err := h.pipeline.Chat(ctx, core.ChatRequest{
		History:      session.Messages,
		DiaryContext: diaryContext,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("chat failed: %v", err)), nil
	}

	if _, err := h.chats.AppendMessage(session.ID, models.Message{
		Role:    models.RoleAssistant,
		Content: result.AssistantMessage,
	}); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recording reply: %v", err)), nil
	}
	if err := h.metrics.Append(result.Metrics, time.Now()); err != nil {
		log.Printf("[MCP] recording metrics failed: %v", err)
	}

	return jsonResult(struct {
		SessionID string `json:"sessionId"`
		*core.ChatResult
	}{SessionID: session.ID, ChatResult: result})
}

// ExtractMood handles the extract_mood tool
func (h *Handlers) ExtractMood(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}

	reading := h.extractor.Mood(ctx, text)

	if date := request.GetString("date", ""); date != "" && reading.Mood != "" {
		if err := h.diary.SetMood(date, reading.Mood); err != nil {
			log.Printf("[MCP] recording mood on %s failed: %v", date, err)
		}
	}

	return jsonResult(reading)
}

// ExtractContacts handles the extract_contacts tool
func (h *Handlers) ExtractContacts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}

	candidates := stringSliceArg(request, "candidates")
	if candidates == nil {
		candidates, err = h.people.Names()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("loading tracked people: %v", err)), nil
		}
	}

	mentions := h.extractor.Contacts(ctx, text, candidates)
	now := time.Now()
	for _, mention := range mentions {
		if !mention.Contacted {
			continue
		}
		if err := h.people.MarkContacted(mention.Name, now); err != nil {
			log.Printf("[MCP] marking %s contacted failed: %v", mention.Name, err)
		}
	}

	return jsonResult(struct {
		Contacts []extract.ContactMention `json:"contacts"`
	}{Contacts: mentions})
}

// ExtractNames handles the extract_names tool
func (h *Handlers) ExtractNames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}

	return jsonResult(struct {
		Names []string `json:"names"`
	}{Names: h.extractor.Names(ctx, text)})
}

// ExtractEvents handles the extract_events tool
func (h *Handlers) ExtractEvents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}

	now := time.Now()
	found := h.extractor.Events(ctx, text, now)

	reminders := make([]storage.Reminder, len(found))
	for i, ev := range found {
		reminders[i] = storage.Reminder{Date: ev.Date, Summary: ev.Summary, Source: "chat"}
	}
	if err := h.events.Add(reminders, now); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("storing reminders: %v", err)), nil
	}

	return jsonResult(struct {
		Events []extract.UpcomingEvent `json:"events"`
	}{Events: found})
}

// DiarySummary handles the diary_summary tool
func (h *Handlers) DiarySummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, err := h.resolveSession(request.GetString("session_id", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading session: %v", err)), nil
	}

	summary, err := h.extractor.Summarize(ctx, session.Messages)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summarizing chat: %v", err)), nil
	}

	return jsonResult(struct {
		Summary string `json:"summary"`
		Date    string `json:"date"`
	}{Summary: summary, Date: time.Now().Format(storage.DateFormat)})
}

// SaveDiaryEntry handles the save_diary_entry tool
func (h *Handlers) SaveDiaryEntry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content argument is required and must be a string"), nil
	}
	date := request.GetString("date", time.Now().Format(storage.DateFormat))

	entry, err := h.diary.Save(date, content)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("saving entry: %v", err)), nil
	}
	return jsonResult(entry)
}

// RecentDiaryEntries handles the recent_diary_entries tool
func (h *Handlers) RecentDiaryEntries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 5)
	if limit < 1 {
		limit = 5
	}

	entries, err := h.diary.Recent(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing entries: %v", err)), nil
	}
	return jsonResult(struct {
		Entries []storage.DiaryEntry `json:"entries"`
	}{Entries: entries})
}

// resolveSession loads the named session, or the current one (creating it
// if needed) when id is empty.
func (h *Handlers) resolveSession(id string) (storage.ChatSession, error) {
	if id == "" {
		return h.chats.CurrentOrCreate()
	}
	return h.chats.Get(id)
}

// stringSliceArg reads an optional string-array argument. Nil when absent
// or not an array.
func stringSliceArg(request mcp.CallToolRequest, key string) []string {
	raw, ok := request.GetArguments()[key]
	if !ok {
		return nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
