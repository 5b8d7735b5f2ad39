package play

import (
	"context"
	"strings"

	"go.uber.org/zap"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	apperrors "github.com/NickTran11/masterbait/internal/platform/errors"
	"github.com/NickTran11/masterbait/internal/services/play/domain/coach"
	"github.com/NickTran11/masterbait/internal/services/play/domain/level"
	"github.com/NickTran11/masterbait/internal/services/play/host"
	"github.com/NickTran11/masterbait/internal/services/play/i18n"
)

// LocaleHeader carries the caller's preferred language.
const LocaleHeader = "accept-language"

// Service implements PlayServiceServer over a session host.
type Service struct {
	sessions *host.Manager
	log      *zap.Logger
}

// NewService builds the PlayService handlers.
func NewService(sessions *host.Manager, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sessions: sessions, log: logger}
}

var _ PlayServiceServer = (*Service)(nil)

func localeFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return i18n.Default().String()
	}
	return i18n.ResolveTag(strings.Join(md.Get(LocaleHeader), ",")).String()
}

// fail converts err to a status for the caller's locale and logs internal
// failures.
func (s *Service) fail(ctx context.Context, method string, err error) error {
	st := apperrors.ToGRPC(err, localeFromContext(ctx))
	if status.Code(st) == codes.Internal {
		s.log.Error("play request failed", zap.String("method", method), zap.Error(err))
	}
	return st
}

func (s *Service) session(ctx context.Context, method, sessionID string) (*host.Session, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, status.Error(codes.InvalidArgument, "session id is required")
	}
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, s.fail(ctx, method, err)
	}
	return sess, nil
}

func (s *Service) CreateSession(ctx context.Context, in *CreateSessionRequest) (*CreateSessionResponse, error) {
	sess, err := s.sessions.Create(ctx)
	if err != nil {
		return nil, s.fail(ctx, "CreateSession", err)
	}
	return &CreateSessionResponse{SessionID: sess.ID}, nil
}

func (s *Service) CloseSession(ctx context.Context, in *CloseSessionRequest) (*CloseSessionResponse, error) {
	if strings.TrimSpace(in.SessionID) == "" {
		return nil, status.Error(codes.InvalidArgument, "session id is required")
	}
	if err := s.sessions.Close(in.SessionID); err != nil {
		return nil, s.fail(ctx, "CloseSession", err)
	}
	return &CloseSessionResponse{}, nil
}

func (s *Service) ListLevels(ctx context.Context, in *ListLevelsRequest) (*ListLevelsResponse, error) {
	sess, err := s.session(ctx, "ListLevels", in.SessionID)
	if err != nil {
		return nil, err
	}
	progress := sess.Controller.Snapshot().Progress
	levels := sess.Controller.Catalog().Levels
	out := make([]LevelSummary, 0, len(levels))
	for _, lv := range levels {
		out = append(out, LevelSummary{
			Level:    lv,
			Unlocked: lv.ID <= progress.UnlockedLevel,
			Stars:    progress.StarsByLevel[lv.ID],
		})
	}
	return &ListLevelsResponse{Levels: out}, nil
}

func (s *Service) StartLevel(ctx context.Context, in *StartLevelRequest) (*StartLevelResponse, error) {
	sess, err := s.session(ctx, "StartLevel", in.SessionID)
	if err != nil {
		return nil, err
	}
	active, err := sess.Controller.StartLevel(ctx, in.LevelID)
	if err != nil {
		return nil, s.fail(ctx, "StartLevel", err)
	}
	return &StartLevelResponse{Active: active}, nil
}

func (s *Service) SelectMessage(ctx context.Context, in *SelectMessageRequest) (*SelectMessageResponse, error) {
	sess, err := s.session(ctx, "SelectMessage", in.SessionID)
	if err != nil {
		return nil, err
	}
	msg, err := sess.Controller.SelectEmailMessage(ctx, in.Index)
	if err != nil {
		return nil, s.fail(ctx, "SelectMessage", err)
	}
	return &SelectMessageResponse{Message: msg, Clues: msg.Clues()}, nil
}

func (s *Service) RecordClue(ctx context.Context, in *RecordClueRequest) (*RecordClueResponse, error) {
	sess, err := s.session(ctx, "RecordClue", in.SessionID)
	if err != nil {
		return nil, err
	}
	entry, err := sess.Controller.RecordClue(ctx, in.Text)
	if err != nil {
		return nil, s.fail(ctx, "RecordClue", err)
	}
	return &RecordClueResponse{Clue: entry}, nil
}

func (s *Service) SubmitDecision(ctx context.Context, in *SubmitDecisionRequest) (*SubmitDecisionResponse, error) {
	sess, err := s.session(ctx, "SubmitDecision", in.SessionID)
	if err != nil {
		return nil, err
	}
	fb, err := sess.Controller.SubmitDecision(ctx, in.Action)
	if err != nil {
		return nil, s.fail(ctx, "SubmitDecision", err)
	}
	printer := i18n.Printer(i18n.ResolveTag(localeFromContext(ctx)))
	return &SubmitDecisionResponse{Feedback: fb, Message: coach.Message(printer, fb)}, nil
}

func (s *Service) ExitLevel(ctx context.Context, in *ExitLevelRequest) (*ExitLevelResponse, error) {
	sess, err := s.session(ctx, "ExitLevel", in.SessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Controller.ExitLevel(ctx); err != nil {
		return nil, s.fail(ctx, "ExitLevel", err)
	}
	return &ExitLevelResponse{}, nil
}

func (s *Service) SetHardMode(ctx context.Context, in *SetHardModeRequest) (*SetHardModeResponse, error) {
	sess, err := s.session(ctx, "SetHardMode", in.SessionID)
	if err != nil {
		return nil, err
	}
	sess.Controller.SetHardMode(ctx, in.Enabled)
	return &SetHardModeResponse{HardMode: in.Enabled}, nil
}

func (s *Service) Acknowledge(ctx context.Context, in *AcknowledgeRequest) (*AcknowledgeResponse, error) {
	sess, err := s.session(ctx, "Acknowledge", in.SessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Controller.Acknowledge(ctx); err != nil {
		return nil, s.fail(ctx, "Acknowledge", err)
	}
	return &AcknowledgeResponse{}, nil
}

func (s *Service) GetProgress(ctx context.Context, in *GetProgressRequest) (*GetProgressResponse, error) {
	sess, err := s.session(ctx, "GetProgress", in.SessionID)
	if err != nil {
		return nil, err
	}
	return &GetProgressResponse{View: sess.Controller.Snapshot()}, nil
}

func (s *Service) ListJournal(ctx context.Context, in *ListJournalRequest) (*ListJournalResponse, error) {
	sess, err := s.session(ctx, "ListJournal", in.SessionID)
	if err != nil {
		return nil, err
	}
	if in.PageSize < 0 {
		return nil, status.Error(codes.InvalidArgument, "page size must not be negative")
	}
	entries, err := sess.Journal.List(in.Filter, in.PageSize)
	if err != nil {
		return nil, s.fail(ctx, "ListJournal", err)
	}
	return &ListJournalResponse{Entries: entries}, nil
}

func (s *Service) NextFlashcard(ctx context.Context, in *FlashcardRequest) (*FlashcardResponse, error) {
	sess, err := s.session(ctx, "NextFlashcard", in.SessionID)
	if err != nil {
		return nil, err
	}
	return &FlashcardResponse{Card: sess.NextFlashcard()}, nil
}

func (s *Service) FlipFlashcard(ctx context.Context, in *FlashcardRequest) (*FlashcardResponse, error) {
	sess, err := s.session(ctx, "FlipFlashcard", in.SessionID)
	if err != nil {
		return nil, err
	}
	return &FlashcardResponse{Card: sess.FlipFlashcard()}, nil
}

func (s *Service) NewDomainRound(ctx context.Context, in *NewDomainRoundRequest) (*NewDomainRoundResponse, error) {
	sess, err := s.session(ctx, "NewDomainRound", in.SessionID)
	if err != nil {
		return nil, err
	}
	opts, err := sess.NewDomainRound()
	if err != nil {
		return nil, s.fail(ctx, "NewDomainRound", err)
	}
	return &NewDomainRoundResponse{Options: opts}, nil
}

func (s *Service) AnswerDomainRound(ctx context.Context, in *AnswerDomainRoundRequest) (*AnswerDomainRoundResponse, error) {
	sess, err := s.session(ctx, "AnswerDomainRound", in.SessionID)
	if err != nil {
		return nil, err
	}
	fb, err := sess.AnswerDomainRound(ctx, in.Option)
	if err != nil {
		return nil, s.fail(ctx, "AnswerDomainRound", err)
	}
	printer := i18n.Printer(i18n.ResolveTag(localeFromContext(ctx)))
	return &AnswerDomainRoundResponse{Feedback: fb, Message: coach.Message(printer, fb)}, nil
}

// Watch streams session events until the caller goes away or the session
// closes.
func (s *Service) Watch(in *WatchRequest, stream gogrpc.ServerStreamingServer[level.Event]) error {
	ctx := stream.Context()
	sess, err := s.session(ctx, "Watch", in.SessionID)
	if err != nil {
		return err
	}
	events, cancel := sess.Subscribe()
	defer cancel()

	// Headers go out now so clients know the subscription is live.
	if err := stream.SendHeader(metadata.MD{}); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-events:
			if !ok {
				return nil
			}
			if err := stream.Send(&e); err != nil {
				return err
			}
		}
	}
}
