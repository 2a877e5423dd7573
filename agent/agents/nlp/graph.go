package nlp

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// compileRecognizerGraph sends the raw text to the model and decodes the
// entity list it answers with.
func compileRecognizerGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
) (compose.Runnable[map[string]any, recognizerLLMOutput], error) {
	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.UserMessage("{input}"),
	)
	parser := schema.NewMessageJSONParser[recognizerLLMOutput](&schema.MessageJSONParseConfig{
		ParseFrom: schema.MessageParseFromContent,
	})

	graph := compose.NewGraph[map[string]any, recognizerLLMOutput]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add recognizer prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add recognizer model node: %w", err)
	}
	if err := graph.AddLambdaNode("entities", compose.MessageParser(parser)); err != nil {
		return nil, fmt.Errorf("add recognizer entities node: %w", err)
	}

	if err := addEdges(graph, "recognizer", [][2]string{
		{compose.START, "prompt"},
		{"prompt", "model"},
		{"model", "entities"},
		{"entities", compose.END},
	}); err != nil {
		return nil, err
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("nlp.recognizer_graph"))
	if err != nil {
		return nil, fmt.Errorf("compile recognizer graph: %w", err)
	}
	return runner, nil
}

// compileSummarizerGraph renders the summary prompt and returns the model
// message content.
func compileSummarizerGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
) (compose.Runnable[map[string]any, string], error) {
	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.UserMessage("Summarize in {min_length} to {max_length} words:\n{input}"),
	)

	graph := compose.NewGraph[map[string]any, string]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add summarizer prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add summarizer model node: %w", err)
	}
	if err := graph.AddLambdaNode("content",
		compose.InvokableLambda(func(ctx context.Context, msg *schema.Message) (string, error) {
			if msg == nil {
				return "", nil
			}
			return msg.Content, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add summarizer content node: %w", err)
	}

	if err := addEdges(graph, "summarizer", [][2]string{
		{compose.START, "prompt"},
		{"prompt", "model"},
		{"model", "content"},
		{"content", compose.END},
	}); err != nil {
		return nil, err
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("nlp.summarizer_graph"))
	if err != nil {
		return nil, fmt.Errorf("compile summarizer graph: %w", err)
	}
	return runner, nil
}

func addEdges[I, O any](graph *compose.Graph[I, O], name string, edges [][2]string) error {
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return fmt.Errorf("add %s edge %s->%s: %w", name, edge[0], edge[1], err)
		}
	}
	return nil
}
