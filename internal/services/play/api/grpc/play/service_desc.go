package play

import (
	"context"

	gogrpc "google.golang.org/grpc"

	"github.com/NickTran11/masterbait/internal/services/play/domain/level"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "masterbait.play.v1.PlayService"

// PlayServiceServer is the server API for PlayService.
type PlayServiceServer interface {
	CreateSession(context.Context, *CreateSessionRequest) (*CreateSessionResponse, error)
	CloseSession(context.Context, *CloseSessionRequest) (*CloseSessionResponse, error)
	ListLevels(context.Context, *ListLevelsRequest) (*ListLevelsResponse, error)
	StartLevel(context.Context, *StartLevelRequest) (*StartLevelResponse, error)
	SelectMessage(context.Context, *SelectMessageRequest) (*SelectMessageResponse, error)
	RecordClue(context.Context, *RecordClueRequest) (*RecordClueResponse, error)
	SubmitDecision(context.Context, *SubmitDecisionRequest) (*SubmitDecisionResponse, error)
	ExitLevel(context.Context, *ExitLevelRequest) (*ExitLevelResponse, error)
	SetHardMode(context.Context, *SetHardModeRequest) (*SetHardModeResponse, error)
	Acknowledge(context.Context, *AcknowledgeRequest) (*AcknowledgeResponse, error)
	GetProgress(context.Context, *GetProgressRequest) (*GetProgressResponse, error)
	ListJournal(context.Context, *ListJournalRequest) (*ListJournalResponse, error)
	NextFlashcard(context.Context, *FlashcardRequest) (*FlashcardResponse, error)
	FlipFlashcard(context.Context, *FlashcardRequest) (*FlashcardResponse, error)
	NewDomainRound(context.Context, *NewDomainRoundRequest) (*NewDomainRoundResponse, error)
	AnswerDomainRound(context.Context, *AnswerDomainRoundRequest) (*AnswerDomainRoundResponse, error)
	Watch(*WatchRequest, gogrpc.ServerStreamingServer[level.Event]) error
}

func fullMethod(name string) string { return "/" + ServiceName + "/" + name }

func unary[Req, Resp any](name string, call func(PlayServiceServer, context.Context, *Req) (*Resp, error)) gogrpc.MethodDesc {
	return gogrpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor gogrpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PlayServiceServer), ctx, in)
			}
			info := &gogrpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(PlayServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func watchHandler(srv any, stream gogrpc.ServerStream) error {
	in := new(WatchRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(PlayServiceServer).Watch(in, &gogrpc.GenericServerStream[WatchRequest, level.Event]{ServerStream: stream})
}

// ServiceDesc describes PlayService for grpc.Server registration.
var ServiceDesc = gogrpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PlayServiceServer)(nil),
	Methods: []gogrpc.MethodDesc{
		unary("CreateSession", PlayServiceServer.CreateSession),
		unary("CloseSession", PlayServiceServer.CloseSession),
		unary("ListLevels", PlayServiceServer.ListLevels),
		unary("StartLevel", PlayServiceServer.StartLevel),
		unary("SelectMessage", PlayServiceServer.SelectMessage),
		unary("RecordClue", PlayServiceServer.RecordClue),
		unary("SubmitDecision", PlayServiceServer.SubmitDecision),
		unary("ExitLevel", PlayServiceServer.ExitLevel),
		unary("SetHardMode", PlayServiceServer.SetHardMode),
		unary("Acknowledge", PlayServiceServer.Acknowledge),
		unary("GetProgress", PlayServiceServer.GetProgress),
		unary("ListJournal", PlayServiceServer.ListJournal),
		unary("NextFlashcard", PlayServiceServer.NextFlashcard),
		unary("FlipFlashcard", PlayServiceServer.FlipFlashcard),
		unary("NewDomainRound", PlayServiceServer.NewDomainRound),
		unary("AnswerDomainRound", PlayServiceServer.AnswerDomainRound),
	},
	Streams: []gogrpc.StreamDesc{
		{StreamName: "Watch", Handler: watchHandler, ServerStreams: true},
	},
}

// RegisterPlayServiceServer registers srv on s.
func RegisterPlayServiceServer(s gogrpc.ServiceRegistrar, srv PlayServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
