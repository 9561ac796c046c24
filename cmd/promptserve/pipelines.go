package main

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/promptserve/chain"
	"github.com/kbukum/promptserve/llm"
	"github.com/kbukum/promptserve/logger"
	"github.com/kbukum/promptserve/observability"
	"github.com/kbukum/promptserve/prompt"
	"github.com/kbukum/promptserve/serve"
)

var (
	essayTemplate = prompt.MustParse("Write a 100-word essay about {topic}.")
	poemTemplate  = prompt.MustParse("Write a 100-word poem about {topic} suitable for a 5-year-old child.")
)

// pipelines returns the served pipelines in route order:
//
//	gemini  direct chat model, message output
//	essay   essay template on the hosted model, message output
//	poem    poem template on the local model, plain string output
func pipelines(hosted, local llm.Provider, metrics *observability.Metrics) []chain.Runnable {
	chat := chain.NewModel("gemini", hosted, chain.ModeChat, chain.WithTokenMetrics(metrics))
	text := chain.NewModel("ollama", local, chain.ModeText, chain.WithTokenMetrics(metrics))
	return []chain.Runnable{
		chat,
		chain.Pipe("essay", essayTemplate, chat),
		chain.Pipe("poem", poemTemplate, text),
	}
}

// mountPipelines registers every pipeline under /<name>, each wrapped with
// logging and tracing.
func mountPipelines(r gin.IRouter, hosted, local llm.Provider, metrics *observability.Metrics, log *logger.Logger) {
	mw := chain.Chain(chain.WithLogging(log), chain.WithTracing(metrics))
	for _, p := range pipelines(hosted, local, metrics) {
		serve.AddRoutes(r, p.Name(), mw(p), log)
		log.Debug("Pipeline mounted", logger.Fields("pipeline", p.Name()))
	}
}
