// ABOUTME: MCP tool definitions and registration for the haven server
// ABOUTME: Journal chat, diary persistence, and the peripheral extraction tools

package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/havenjournal/haven/internal/core"
	"github.com/havenjournal/haven/internal/extract"
	"github.com/havenjournal/haven/internal/storage"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, pipeline *core.Pipeline, extractor *extract.Extractor, kv storage.KV, diaryContextEntries int) *Handlers {
	handlers := &Handlers{
		pipeline:            pipeline,
		extractor:           extractor,
		diary:               storage.NewDiaryStore(kv),
		chats:               storage.NewChatStore(kv),
		people:              storage.NewPeopleStore(kv),
		events:              storage.NewEventStore(kv),
		metrics:             storage.NewMetricsStore(kv),
		diaryContextEntries: diaryContextEntries,
	}

	// 1. journal_chat - one conversational turn through the companion
	server.AddTool(mcp.Tool{
		Name:        "journal_chat",
		Description: "Send a message to the journaling companion. Routes to the right support persona based on the user's emotional state and returns the reply with routing and metrics metadata.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"message": map[string]interface{}{
					"type":        "string",
					"description": "The user's message",
				},
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Chat session to continue (default: current session, created if needed)",
				},
			},
			Required: []string{"message"},
		},
	}, handlers.JournalChat)

	// 2. extract_mood - emotional snapshot of a diary entry
	server.AddTool(mcp.Tool{
		Name:        "extract_mood",
		Description: "Extract mood and stress/loneliness/homesickness levels from diary text. Optionally records the mood on the entry for that date.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Diary entry text to analyze",
				},
				"date": map[string]interface{}{
					"type":        "string",
					"description": "Entry date (YYYY-MM-DD) to attach the mood to (optional)",
				},
			},
			Required: []string{"text"},
		},
	}, handlers.ExtractMood)

	// 3. extract_contacts - who the writer actually reached
	server.AddTool(mcp.Tool{
		Name:        "extract_contacts",
		Description: "Identify which people mentioned in the text the writer actually talked to or met, and mark them contacted in the people tracker.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Diary or chat text to scan",
				},
				"candidates": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Candidate names to look for (default: all tracked people)",
				},
			},
			Required: []string{"text"},
		},
	}, handlers.ExtractContacts)

	// 4. extract_names - person names in diary snippets
	server.AddTool(mcp.Tool{
		Name:        "extract_names",
		Description: "Extract unique real-person names from diary snippets.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Diary text to scan",
				},
			},
			Required: []string{"text"},
		},
	}, handlers.ExtractNames)

	// 5. extract_events - upcoming events from a note
	server.AddTool(mcp.Tool{
		Name:        "extract_events",
		Description: "Extract up to 3 upcoming events or reminders from a note and store them as reminders.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Note text to scan for events",
				},
			},
			Required: []string{"text"},
		},
	}, handlers.ExtractEvents)

	// 6. diary_summary - condense a chat into a diary note
	server.AddTool(mcp.Tool{
		Name:        "diary_summary",
		Description: "Summarize a chat session into a brief first-person diary note.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session to summarize (default: current session)",
				},
			},
		},
	}, handlers.DiarySummary)

	// 7. save_diary_entry - write a dated diary entry
	server.AddTool(mcp.Tool{
		Name:        "save_diary_entry",
		Description: "Save a diary entry for a date. Overwrites any existing content for that date.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Entry content",
				},
				"date": map[string]interface{}{
					"type":        "string",
					"description": "Entry date, YYYY-MM-DD (default: today)",
				},
			},
			Required: []string{"content"},
		},
	}, handlers.SaveDiaryEntry)

	// 8. recent_diary_entries - the latest entries
	server.AddTool(mcp.Tool{
		Name:        "recent_diary_entries",
		Description: "List the most recent diary entries, newest first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum entries to return (default: 5)",
					"default":     5,
				},
			},
		},
	}, handlers.RecentDiaryEntries)

	return handlers
}
