package server

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matzehuels/pathviz/pkg/errors"
	"github.com/matzehuels/pathviz/pkg/graph"
	"github.com/matzehuels/pathviz/pkg/pipeline"
)

const (
	graphURI   = "pathviz://graph"
	schemaBase = "pathviz://schemas/"
)

// ShortestPathArgs are the arguments of the shortest_path tool.
type ShortestPathArgs struct {
	From string `json:"from,omitempty" jsonschema:"start node id, defaults to A"`
	To   string `json:"to,omitempty" jsonschema:"end node id, defaults to E"`
}

// RenderGraphArgs are the arguments of the render_graph tool.
type RenderGraphArgs struct {
	From     string `json:"from,omitempty" jsonschema:"start node id, defaults to A"`
	To       string `json:"to,omitempty" jsonschema:"end node id, defaults to E"`
	Format   string `json:"format,omitempty" jsonschema:"one of svg, dot or json; defaults to svg"`
	Style    string `json:"style,omitempty" jsonschema:"simple or dark"`
	Animated bool   `json:"animated,omitempty" jsonschema:"emit the CSS-animated svg"`
}

// ListNodesArgs are the (empty) arguments of the list_nodes tool.
type ListNodesArgs struct{}

// textFormats are the formats render_graph can return as tool text.
var textFormats = []string{pipeline.FormatSVG, pipeline.FormatDOT, pipeline.FormatJSON}

// MCP builds an MCP server exposing the graph and the query tools.
func (s *Server) MCP() *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{Name: "pathviz", Version: s.version}, nil)
	s.registerTools(srv)
	s.registerResources(srv)
	return srv
}

// ServeStdio runs the MCP server over stdin/stdout until ctx is cancelled or
// the client disconnects.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.MCP().Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools(srv *mcp.Server) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "shortest_path",
		Description: "Runs Dijkstra between two nodes and returns the path, distance and visit order as JSON",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ShortestPathArgs) (*mcp.CallToolResult, any, error) {
		opts := s.defaults
		opts.Start, opts.End = args.From, args.To
		opts.Formats = []string{pipeline.FormatJSON}

		res, err := s.runner.Execute(ctx, s.graph, opts)
		if err != nil {
			return errorResult(err), nil, nil
		}
		data, err := json.MarshalIndent(res.Search, "", "  ")
		if err != nil {
			return errorResult(err), nil, nil
		}
		return textResult(string(data)), nil, nil
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "render_graph",
		Description: "Renders the graph with the shortest path highlighted as svg, dot or json",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args RenderGraphArgs) (*mcp.CallToolResult, any, error) {
		format := args.Format
		if format == "" {
			format = pipeline.FormatSVG
		}
		if !slices.Contains(textFormats, format) {
			return errorResult(errors.New(errors.ErrCodeInvalidFormat,
				"format %q is not available as text (use %s)", format, strings.Join(textFormats, ", "))), nil, nil
		}

		opts := s.defaults
		opts.Start, opts.End = args.From, args.To
		opts.Formats = []string{format}
		opts.Animated = args.Animated
		if args.Style != "" {
			opts.Style = args.Style
		}

		res, err := s.runner.Execute(ctx, s.graph, opts)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return textResult(string(res.Artifacts[format])), nil, nil
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_nodes",
		Description: "Lists the node ids of the graph in declaration order",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ListNodesArgs) (*mcp.CallToolResult, any, error) {
		return textResult(strings.Join(s.graph.IDs(), "\n")), nil, nil
	})
}

func (s *Server) registerResources(srv *mcp.Server) {
	srv.AddResource(&mcp.Resource{
		URI:         graphURI,
		Name:        "Graph",
		Description: "The served graph in node-link JSON",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		data, err := graph.Marshal(s.graph)
		if err != nil {
			return nil, err
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: graphURI, MIMEType: "application/json", Text: string(data)},
			},
		}, nil
	})

	schemas := buildSchemaMap()
	srv.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: schemaBase + "{tool_name}",
		Name:        "Tool Schema",
		Description: "JSON schema for the named tool's arguments",
		MIMEType:    "application/schema+json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := req.Params.URI
		schema, ok := schemas[strings.TrimPrefix(uri, schemaBase)]
		if !ok {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: uri, MIMEType: "application/schema+json", Text: schema},
			},
		}, nil
	})
}

func buildSchemaMap() map[string]string {
	m := make(map[string]string)
	addSchema[ShortestPathArgs](m, "shortest_path")
	addSchema[RenderGraphArgs](m, "render_graph")
	addSchema[ListNodesArgs](m, "list_nodes")
	return m
}

func addSchema[T any](m map[string]string, name string) {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		return
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return
	}
	m[name] = string(data)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}

// errorResult reports err to the client as a tool error, keeping the
// machine-readable code in front of the message.
func errorResult(err error) *mcp.CallToolResult {
	text := errors.UserMessage(err)
	if code := errors.GetCode(err); code != "" {
		text = fmt.Sprintf("%s: %s", code, text)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
