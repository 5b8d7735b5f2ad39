package play

import (
	"context"

	gogrpc "google.golang.org/grpc"

	"github.com/NickTran11/masterbait/internal/services/play/domain/level"
)

// Client calls PlayService over an existing connection.
type Client struct {
	conn gogrpc.ClientConnInterface
}

// NewClient wraps conn.
func NewClient(conn gogrpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func invoke[Resp any](ctx context.Context, c *Client, method string, in any, opts []gogrpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append(CallOptions(), opts...)
	if err := c.conn.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSession(ctx context.Context, in *CreateSessionRequest, opts ...gogrpc.CallOption) (*CreateSessionResponse, error) {
	return invoke[CreateSessionResponse](ctx, c, "CreateSession", in, opts)
}

func (c *Client) CloseSession(ctx context.Context, in *CloseSessionRequest, opts ...gogrpc.CallOption) (*CloseSessionResponse, error) {
	return invoke[CloseSessionResponse](ctx, c, "CloseSession", in, opts)
}

func (c *Client) ListLevels(ctx context.Context, in *ListLevelsRequest, opts ...gogrpc.CallOption) (*ListLevelsResponse, error) {
	return invoke[ListLevelsResponse](ctx, c, "ListLevels", in, opts)
}

func (c *Client) StartLevel(ctx context.Context, in *StartLevelRequest, opts ...gogrpc.CallOption) (*StartLevelResponse, error) {
	return invoke[StartLevelResponse](ctx, c, "StartLevel", in, opts)
}

func (c *Client) SelectMessage(ctx context.Context, in *SelectMessageRequest, opts ...gogrpc.CallOption) (*SelectMessageResponse, error) {
	return invoke[SelectMessageResponse](ctx, c, "SelectMessage", in, opts)
}

func (c *Client) RecordClue(ctx context.Context, in *RecordClueRequest, opts ...gogrpc.CallOption) (*RecordClueResponse, error) {
	return invoke[RecordClueResponse](ctx, c, "RecordClue", in, opts)
}

func (c *Client) SubmitDecision(ctx context.Context, in *SubmitDecisionRequest, opts ...gogrpc.CallOption) (*SubmitDecisionResponse, error) {
	return invoke[SubmitDecisionResponse](ctx, c, "SubmitDecision", in, opts)
}

func (c *Client) ExitLevel(ctx context.Context, in *ExitLevelRequest, opts ...gogrpc.CallOption) (*ExitLevelResponse, error) {
	return invoke[ExitLevelResponse](ctx, c, "ExitLevel", in, opts)
}

func (c *Client) SetHardMode(ctx context.Context, in *SetHardModeRequest, opts ...gogrpc.CallOption) (*SetHardModeResponse, error) {
	return invoke[SetHardModeResponse](ctx, c, "SetHardMode", in, opts)
}

func (c *Client) Acknowledge(ctx context.Context, in *AcknowledgeRequest, opts ...gogrpc.CallOption) (*AcknowledgeResponse, error) {
	return invoke[AcknowledgeResponse](ctx, c, "Acknowledge", in, opts)
}

func (c *Client) GetProgress(ctx context.Context, in *GetProgressRequest, opts ...gogrpc.CallOption) (*GetProgressResponse, error) {
	return invoke[GetProgressResponse](ctx, c, "GetProgress", in, opts)
}

func (c *Client) ListJournal(ctx context.Context, in *ListJournalRequest, opts ...gogrpc.CallOption) (*ListJournalResponse, error) {
	return invoke[ListJournalResponse](ctx, c, "ListJournal", in, opts)
}

func (c *Client) NextFlashcard(ctx context.Context, in *FlashcardRequest, opts ...gogrpc.CallOption) (*FlashcardResponse, error) {
	return invoke[FlashcardResponse](ctx, c, "NextFlashcard", in, opts)
}

func (c *Client) FlipFlashcard(ctx context.Context, in *FlashcardRequest, opts ...gogrpc.CallOption) (*FlashcardResponse, error) {
	return invoke[FlashcardResponse](ctx, c, "FlipFlashcard", in, opts)
}

func (c *Client) NewDomainRound(ctx context.Context, in *NewDomainRoundRequest, opts ...gogrpc.CallOption) (*NewDomainRoundResponse, error) {
	return invoke[NewDomainRoundResponse](ctx, c, "NewDomainRound", in, opts)
}

func (c *Client) AnswerDomainRound(ctx context.Context, in *AnswerDomainRoundRequest, opts ...gogrpc.CallOption) (*AnswerDomainRoundResponse, error) {
	return invoke[AnswerDomainRoundResponse](ctx, c, "AnswerDomainRound", in, opts)
}

// Watch opens the session event stream.
func (c *Client) Watch(ctx context.Context, in *WatchRequest, opts ...gogrpc.CallOption) (gogrpc.ServerStreamingClient[level.Event], error) {
	opts = append(CallOptions(), opts...)
	stream, err := c.conn.NewStream(ctx, &ServiceDesc.Streams[0], fullMethod("Watch"), opts...)
	if err != nil {
		return nil, err
	}
	x := &gogrpc.GenericClientStream[WatchRequest, level.Event]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
