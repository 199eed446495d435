package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"todo-server/internal/domain/llm"
	"todo-server/internal/utils/platformerrors"
)

// ErrDepthExceeded is returned when the model keeps requesting tools past
// the configured depth.
var ErrDepthExceeded = errors.New("tool orchestration depth exceeded")

// Orchestrator drains the model/tool loop until the assistant responds
// without requesting further tools.
type Orchestrator struct {
	provider    llm.Provider
	registry    *Registry
	model       string
	maxDepth    int
	callTimeout time.Duration
}

// NewOrchestrator constructs a tool orchestrator.
func NewOrchestrator(provider llm.Provider, registry *Registry, model string, maxDepth int, callTimeout time.Duration) *Orchestrator {
	return &Orchestrator{
		provider:    provider,
		registry:    registry,
		model:       model,
		maxDepth:    maxDepth,
		callTimeout: callTimeout,
	}
}

// ExecuteParams carries the seed transcript for one orchestration run.
type ExecuteParams struct {
	UserID   uint
	Messages []openai.ChatCompletionMessage
}

// ExecuteResult captures the final assistant turn and every tool call
// made on the way there. Usage is accumulated across completion rounds.
type ExecuteResult struct {
	FinalContent string
	Executions   []Execution
	Usage        openai.Usage
}

// Execute runs completions against the provider, dispatching requested
// tool calls, until the assistant answers without tools or the depth
// limit is hit.
func (o *Orchestrator) Execute(ctx context.Context, params ExecuteParams) (*ExecuteResult, error) {
	messages := append([]openai.ChatCompletionMessage(nil), params.Messages...)
	definitions := o.registry.Definitions()

	var executions []Execution
	var usage openai.Usage

	for depth := 0; depth < o.maxDepth; depth++ {
		resp, err := o.provider.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    o.model,
			Messages: messages,
			Tools:    definitions,
		})
		if err != nil {
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerDomain,
				platformerrors.ErrorTypeExternal,
				"model returned no choices",
				nil,
				"8e9f0a1b-2c3d-4e5f-6a7b-8c9d0e1f2a3b",
			)
		}

		usage.PromptTokens += resp.Usage.PromptTokens
		usage.CompletionTokens += resp.Usage.CompletionTokens
		usage.TotalTokens += resp.Usage.TotalTokens

		choice := resp.Choices[0]
		messages = append(messages, choice.Message)

		if len(choice.Message.ToolCalls) == 0 {
			return &ExecuteResult{
				FinalContent: choice.Message.Content,
				Executions:   executions,
				Usage:        usage,
			}, nil
		}

		for _, call := range choice.Message.ToolCalls {
			execution, reply := o.dispatch(ctx, params.UserID, call, len(executions)+1)
			executions = append(executions, execution)
			messages = append(messages, reply)
		}
	}

	return nil, ErrDepthExceeded
}

// dispatch runs one requested call and shapes the tool reply message the
// model sees on the next round.
func (o *Orchestrator) dispatch(ctx context.Context, userID uint, call openai.ToolCall, order int) (Execution, openai.ChatCompletionMessage) {
	execution := Execution{
		CallID:   call.ID,
		ToolName: call.Function.Name,
		Order:    order,
	}

	started := time.Now()
	execution.Result = o.run(ctx, userID, call, &execution)
	execution.Duration = time.Since(started)
	execution.Status = ExecutionStatusCompleted
	if execution.Result.Failed() {
		execution.Status = ExecutionStatusFailed
	}

	payload, err := json.Marshal(execution.Result)
	if err != nil {
		payload = []byte(`{"error":"tool result could not be encoded","status":"error"}`)
		execution.Status = ExecutionStatusFailed
	}

	return execution, openai.ChatCompletionMessage{
		Role:       openai.ChatMessageRoleTool,
		Content:    string(payload),
		Name:       call.Function.Name,
		ToolCallID: call.ID,
	}
}

// run parses the call arguments, injects the acting user, and executes
// the named handler under the per-call timeout. Failures never abort the
// loop; they come back as error results for the model to react to.
func (o *Orchestrator) run(ctx context.Context, userID uint, call openai.ToolCall, execution *Execution) Result {
	args := make(map[string]any)
	if raw := call.Function.Arguments; raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			execution.Arguments = map[string]any{"user_id": userID}
			return ErrorResult(StatusValidationError, fmt.Sprintf("Invalid arguments: %v", err))
		}
	}
	args["user_id"] = userID
	execution.Arguments = args

	handler, ok := o.registry.Get(call.Function.Name)
	if !ok {
		return ErrorResult(StatusError, fmt.Sprintf("unknown tool: %s", call.Function.Name))
	}

	callCtx := ctx
	if o.callTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, o.callTimeout)
		defer cancel()
	}

	return handler.Execute(callCtx, userID, json.RawMessage(call.Function.Arguments))
}
