package service

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/NickTran11/masterbait/internal/services/mcp/domain"
)

type mcpRegistrationKind int

const (
	mcpRegistrationKindTools mcpRegistrationKind = iota
	mcpRegistrationKindResources
)

const (
	mcpLevelToolsModuleName      = "level-tools"
	mcpJournalToolsModuleName    = "journal-tools"
	mcpMiniGameToolsModuleName   = "minigame-tools"
	mcpCatalogResourceModuleName = "catalog-resources"
)

type mcpRegistrationModule struct {
	name     string
	kind     mcpRegistrationKind
	register func(*mcp.Server)
}

func newMCPRegistrationModules(client domain.PlayClient, getContext func() domain.Context) []mcpRegistrationModule {
	return []mcpRegistrationModule{
		{
			name: mcpLevelToolsModuleName,
			kind: mcpRegistrationKindTools,
			register: func(server *mcp.Server) {
				registerLevelTools(server, client, getContext)
			},
		},
		{
			name: mcpJournalToolsModuleName,
			kind: mcpRegistrationKindTools,
			register: func(server *mcp.Server) {
				mcp.AddTool(server, domain.JournalListTool(), domain.JournalListHandler(client, getContext))
			},
		},
		{
			name: mcpMiniGameToolsModuleName,
			kind: mcpRegistrationKindTools,
			register: func(server *mcp.Server) {
				registerMiniGameTools(server, client, getContext)
			},
		},
		{
			name: mcpCatalogResourceModuleName,
			kind: mcpRegistrationKindResources,
			register: func(server *mcp.Server) {
				server.AddResource(domain.CatalogLevelsResource(), domain.CatalogLevelsResourceHandler(client, getContext))
			},
		},
	}
}

func registerLevelTools(server *mcp.Server, client domain.PlayClient, getContext func() domain.Context) {
	mcp.AddTool(server, domain.LevelListTool(), domain.LevelListHandler(client, getContext))
	mcp.AddTool(server, domain.LevelStartTool(), domain.LevelStartHandler(client, getContext))
	mcp.AddTool(server, domain.MessageSelectTool(), domain.MessageSelectHandler(client, getContext))
	mcp.AddTool(server, domain.ClueRecordTool(), domain.ClueRecordHandler(client, getContext))
	mcp.AddTool(server, domain.DecisionSubmitTool(), domain.DecisionSubmitHandler(client, getContext))
	mcp.AddTool(server, domain.LevelExitTool(), domain.LevelExitHandler(client, getContext))
	mcp.AddTool(server, domain.HardModeSetTool(), domain.HardModeSetHandler(client, getContext))
	mcp.AddTool(server, domain.FeedbackAcknowledgeTool(), domain.FeedbackAcknowledgeHandler(client, getContext))
	mcp.AddTool(server, domain.ProgressGetTool(), domain.ProgressGetHandler(client, getContext))
}

func registerMiniGameTools(server *mcp.Server, client domain.PlayClient, getContext func() domain.Context) {
	mcp.AddTool(server, domain.FlashcardNextTool(), domain.FlashcardNextHandler(client, getContext))
	mcp.AddTool(server, domain.FlashcardFlipTool(), domain.FlashcardFlipHandler(client, getContext))
	mcp.AddTool(server, domain.DomainRoundNewTool(), domain.DomainRoundNewHandler(client, getContext))
	mcp.AddTool(server, domain.DomainRoundAnswerTool(), domain.DomainRoundAnswerHandler(client, getContext))
}

func (k mcpRegistrationKind) String() string {
	if k == mcpRegistrationKindResources {
		return "resources"
	}
	return "tools"
}
