package tool

import (
	"context"

	"github.com/hupe1980/agentrun/internal/util"
)

// ValidationError represents parameter validation errors with detailed information.
type ValidationError = util.ValidationError

// FunctionTool is a generic adapter that exposes a plain Go function as a
// Tool. It holds a lightweight JSON-Schema-like parameter specification,
// validates supplied arguments against it before execution, and normalizes
// error handling so callers receive *ToolError with consistent codes:
//
//	VALIDATION_ERROR -> schema / argument mismatch
//	EXECUTION_ERROR  -> underlying function returned an error (non-ToolError)
//	(custom codes preserved if the function returns *ToolError directly)
//
// A FunctionTool has no internal mutable state after construction and is
// safe for concurrent use by multiple goroutines.
type FunctionTool struct {
	def Definition
	fn  func(ctx context.Context, params map[string]any, callCtx *CallContext) (any, error)
}

// NewFunctionTool constructs a FunctionTool from an explicit definition and
// function. The definition's InputSchema should follow the minimal JSON
// Schema shape validated by util.ValidateParameters (type, properties,
// required, enum).
//
// Example:
//
//	sumTool := NewFunctionTool(
//	  Definition{
//	    ID:          "calculate_sum",
//	    Name:        "calculate_sum",
//	    Category:    CategoryFunction,
//	    Description: "Calculate the sum of two numbers",
//	    InputSchema: map[string]any{
//	      "type": "object",
//	      "properties": map[string]any{
//	        "a": map[string]any{"type": "number"},
//	        "b": map[string]any{"type": "number"},
//	      },
//	      "required": []string{"a", "b"},
//	    },
//	    Active: true,
//	  },
//	  func(_ context.Context, params map[string]any, _ *CallContext) (any, error) {
//	    return params["a"].(float64) + params["b"].(float64), nil
//	  },
//	)
func NewFunctionTool(
	def Definition,
	fn func(ctx context.Context, params map[string]any, callCtx *CallContext) (any, error),
) *FunctionTool {
	if def.Name == "" {
		def.Name = def.ID
	}
	if def.Category == "" {
		def.Category = CategoryFunction
	}
	return &FunctionTool{def: def, fn: fn}
}

// NewFunctionToolFromStruct derives the parameter schema from a struct using
// reflection, equivalent to util.CreateSchema(structType). A convenience for
// simple argument containers.
//
// Example:
//
//	type SumArgs struct {
//	  A float64 `json:"a" description:"First addend"`
//	  B float64 `json:"b" description:"Second addend"`
//	}
//
//	sumTool := NewFunctionToolFromStruct("calculate_sum", "Calculate the sum of two numbers", SumArgs{}, fn)
func NewFunctionToolFromStruct(
	id, description string,
	structType any,
	fn func(ctx context.Context, params map[string]any, callCtx *CallContext) (any, error),
) *FunctionTool {
	return NewFunctionTool(Definition{
		ID:          id,
		Name:        id,
		Category:    CategoryFunction,
		Description: description,
		InputSchema: util.CreateSchema(structType),
		Active:      true,
	}, fn)
}

// Definition implements Tool.
func (t *FunctionTool) Definition() Definition { return t.def }

// Validate implements Tool by checking params against the declared schema.
// It performs no side effects.
func (t *FunctionTool) Validate(params map[string]any) error {
	return util.ValidateParameters(params, t.def.InputSchema)
}

// Execute implements Tool by invoking the wrapped function. Execution
// failures are wrapped (or passed through) as *ToolError for uniform
// downstream handling.
func (t *FunctionTool) Execute(ctx context.Context, params map[string]any, callCtx *CallContext) (any, error) {
	result, err := t.fn(ctx, params, callCtx)
	if err != nil {
		if toolErr, ok := err.(*ToolError); ok {
			return nil, toolErr
		}
		return nil, &ToolError{
			Tool:    t.def.ID,
			Message: err.Error(),
			Code:    "EXECUTION_ERROR",
		}
	}
	return result, nil
}

var _ Tool = (*FunctionTool)(nil)
