// Package pipeline orchestrates the extraction stages: decode, enhance,
// OCR, aggregate, prompt, LLM completion, parse, and result assembly. Each
// invocation is synchronous and strictly sequential; no state outlives the
// request.
package pipeline

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/idocr/idocr/internal/common"
	"github.com/idocr/idocr/internal/decode"
	"github.com/idocr/idocr/internal/enhance"
	"github.com/idocr/idocr/internal/llm"
	"github.com/idocr/idocr/internal/ocr"
)

// Result is the final, caller-facing outcome of one extraction.
type Result struct {
	ExecutionTime float64            `json:"execution_time"` // seconds, decode start to parse end
	Fields        llm.IdentityFields `json:"ocr_result"`
}

// Pipeline wires the stage dependencies together. All of them are injected
// once at process start; the pipeline itself holds no per-request state.
type Pipeline struct {
	logger  *slog.Logger
	decoder *decode.Decoder
	engine  ocr.Engine
	client  llm.CompletionClient
	parser  *llm.Parser
}

func New(logger *slog.Logger, decoder *decode.Decoder, engine ocr.Engine, client llm.CompletionClient, parser *llm.Parser) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger:  logger,
		decoder: decoder,
		engine:  engine,
		client:  client,
		parser:  parser,
	}
}

// ExtractImage runs the full pipeline over raw image bytes.
func (p *Pipeline) ExtractImage(ctx context.Context, data []byte) (Result, error) {
	return p.run(ctx, "image", func(ctx context.Context) (image.Image, error) {
		return p.decoder.DecodeImage(data)
	})
}

// ExtractPDF runs the full pipeline over raw PDF bytes; only the first page
// contributes to the result.
func (p *Pipeline) ExtractPDF(ctx context.Context, data []byte) (Result, error) {
	return p.run(ctx, "pdf", func(ctx context.Context) (image.Image, error) {
		return p.decoder.DecodePDF(ctx, data)
	})
}

func (p *Pipeline) run(ctx context.Context, kind string, decodeFn func(context.Context) (image.Image, error)) (Result, error) {
	rid := uuid.New().String()
	start := time.Now()

	p.logger.Info("pipeline.extract.start", "req_id", rid, "kind", kind)

	img, err := decodeFn(ctx)
	if err != nil {
		return p.fail(rid, "decode", err)
	}

	gray, err := enhance.Enhance(img)
	if err != nil {
		return p.fail(rid, "enhance", err)
	}

	obs, err := p.engine.Recognize(ctx, gray)
	if err != nil {
		return p.fail(rid, "ocr", common.NewOCRError("ocr recognition failed", err))
	}

	tokens := ocr.Aggregate(obs)
	prompt := llm.BuildPrompt(tokens)

	reply, err := p.client.Complete(ctx, prompt)
	if err != nil {
		return p.fail(rid, "llm", common.NewLLMError("completion request failed", err))
	}

	fields, err := p.parser.Parse(reply)
	if err != nil {
		return p.fail(rid, "parse", err)
	}

	elapsed := time.Since(start)
	p.logger.Info("pipeline.extract.ok",
		"req_id", rid,
		"kind", kind,
		"observations", len(obs),
		"elapsed_ms", elapsed.Milliseconds(),
	)
	return Result{
		ExecutionTime: elapsed.Seconds(),
		Fields:        fields,
	}, nil
}

func (p *Pipeline) fail(rid, stage string, err error) (Result, error) {
	p.logger.Error("pipeline.extract.failed", "req_id", rid, "stage", stage, "error", err)
	return Result{}, err
}
