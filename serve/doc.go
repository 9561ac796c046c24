// Package serve exposes chain.Runnable pipelines over HTTP.
//
// AddRoutes registers the route family for one pipeline under a path:
//
//	POST {path}/invoke         {"input": ...}    -> {"output": ..., "metadata": {"run_id": ...}}
//	POST {path}/batch          {"inputs": [...]} -> {"output": [...], "metadata": {"run_ids": [...]}}
//	POST {path}/stream         {"input": ...}    -> text/event-stream of metadata, data..., end|error
//	GET  {path}/input_schema                     -> JSON Schema of the input
//	GET  {path}/output_schema                    -> JSON Schema of the output
//
// Request bodies also accept "config" and "kwargs" objects; they are
// decoded and ignored. Failures use the errors.AppError envelope.
package serve
