package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docview/internal/core/domain"
)

// ListCollectionsInput is the input schema for the list_collections tool.
type ListCollectionsInput struct{}

// ListCollectionsOutput is the output schema for the list_collections tool.
type ListCollectionsOutput struct {
	Collections []CollectionOutput `json:"collections"`
	Failed      []FailureOutput    `json:"failed,omitempty"`
}

// CollectionOutput summarises a loaded collection.
type CollectionOutput struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// FailureOutput names a collection that could not be loaded.
type FailureOutput struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct {
	Collection string `json:"collection" jsonschema:"name of a configured collection"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentOutput is a single document with plain JSON field values.
type DocumentOutput struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// AddDocumentInput is the input schema for the add_document tool.
type AddDocumentInput struct {
	Collection string            `json:"collection" jsonschema:"name of a configured collection"`
	Fields     map[string]string `json:"fields" jsonschema:"string fields of the new document"`
}

// UpdateDocumentInput is the input schema for the update_document tool.
type UpdateDocumentInput struct {
	Collection string         `json:"collection" jsonschema:"name of a configured collection"`
	ID         string         `json:"id" jsonschema:"id of the document to update"`
	Fields     map[string]any `json:"fields" jsonschema:"fields to write; other fields are kept"`
}

// DeleteDocumentInput is the input schema for the delete_document tool.
type DeleteDocumentInput struct {
	Collection string `json:"collection" jsonschema:"name of a configured collection"`
	ID         string `json:"id" jsonschema:"id of the document to delete"`
}

// ResultOutput reports the outcome of a write.
type ResultOutput struct {
	Operation  string `json:"operation"`
	Collection string `json:"collection"`
	DocumentID string `json:"document_id,omitempty"`
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_collections",
		Description: "List the configured collections with their document counts",
	}, s.handleListCollections)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List every document in a collection",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_document",
		Description: "Create a document from string fields; a createdAt timestamp is added",
	}, s.handleAddDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_document",
		Description: "Update fields of an existing document",
	}, s.handleUpdateDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_document",
		Description: "Delete a document",
	}, s.handleDeleteDocument)
}

func (s *Server) handleListCollections(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListCollectionsInput,
) (*mcp.CallToolResult, ListCollectionsOutput, error) {
	report := s.ports.Viewer.LoadCollections(ctx)

	output := ListCollectionsOutput{
		Collections: make([]CollectionOutput, len(report.Collections)),
	}
	for i, c := range report.Collections {
		output.Collections[i] = CollectionOutput{Name: c.Name, Count: c.Count()}
	}
	for _, f := range report.Failures {
		output.Failed = append(output.Failed, FailureOutput{Name: f.Name, Reason: f.Err.Error()})
	}

	return nil, output, nil
}

func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docs, err := s.ports.Viewer.ListDocuments(ctx, input.Collection)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}
	for i, doc := range docs {
		output.Documents[i] = toDocumentOutput(doc)
	}

	return nil, output, nil
}

func (s *Server) handleAddDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddDocumentInput,
) (*mcp.CallToolResult, ResultOutput, error) {
	// Map keys carry no order, so fields are added by name.
	names := make([]string, 0, len(input.Fields))
	for name := range input.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var draft domain.Draft
	for _, name := range names {
		draft = draft.WithField(name, input.Fields[name])
	}

	res := s.ports.Viewer.AddDocument(ctx, input.Collection, draft)
	return resultOutput(res)
}

func (s *Server) handleUpdateDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateDocumentInput,
) (*mcp.CallToolResult, ResultOutput, error) {
	value, err := domain.ValueFromAny(map[string]any(input.Fields))
	if err != nil {
		return nil, ResultOutput{}, fmt.Errorf("reading fields: %w", err)
	}
	fields, _ := value.AsMap()

	res := s.ports.Viewer.UpdateDocument(ctx, input.Collection, input.ID, fields)
	return resultOutput(res)
}

func (s *Server) handleDeleteDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteDocumentInput,
) (*mcp.CallToolResult, ResultOutput, error) {
	res := s.ports.Viewer.DeleteDocument(ctx, input.Collection, input.ID)
	return resultOutput(res)
}

// resultOutput reports a failed write as a tool error so the assistant
// sees it, while still returning the structured result.
func resultOutput(res domain.Result) (*mcp.CallToolResult, ResultOutput, error) {
	output := ResultOutput{
		Operation:  string(res.Op),
		Collection: res.Collection,
		DocumentID: res.DocumentID,
		OK:         res.OK(),
		Error:      res.Reason(),
	}
	if !res.OK() {
		return nil, output, errors.New(res.String())
	}
	return nil, output, nil
}

func toDocumentOutput(doc domain.Document) DocumentOutput {
	fields := make(map[string]any, doc.Fields.Len())
	doc.Fields.Each(func(name string, v domain.Value) {
		fields[name] = v.Interface()
	})
	return DocumentOutput{ID: doc.ID, Fields: fields}
}
