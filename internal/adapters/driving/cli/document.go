package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docview/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage documents in a collection",
	Long:  `List, add, update or delete documents in one of the configured collections.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list [collection]",
	Short: "List documents in a collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentList,
}

var documentAddCmd = &cobra.Command{
	Use:   "add [collection] [key=value...]",
	Short: "Create a document from string fields",
	Long: `Create a document from key=value pairs. Every value is stored as a
string and the document gets a createdAt timestamp.

Example:
  docview document add Mirae city=Seoul floors=5`,
	Args: cobra.MinimumNArgs(2),
	RunE: runDocumentAdd,
}

var documentUpdateCmd = &cobra.Command{
	Use:   "update [collection] [doc-id] [key=value...]",
	Short: "Update fields of a document",
	Long: `Set fields of an existing document from key=value pairs. A field that
already exists keeps its type when the new text parses as that type;
otherwise the value is stored as a string. Fields not named are kept.`,
	Args: cobra.MinimumNArgs(3),
	RunE: runDocumentUpdate,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [collection] [doc-id]",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocumentDelete,
}

// listFormat is a flag for the list command.
var listFormat string

func init() {
	documentListCmd.Flags().StringVarP(&listFormat, "format", "f", formatText, "Output format: text, json or yaml")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentAddCmd)
	documentCmd.AddCommand(documentUpdateCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, args []string) error {
	viewer, err := requireViewer()
	if err != nil {
		return err
	}

	collection := args[0]
	ctx, cancel := commandContext(cmd)
	defer cancel()

	docs, err := viewer.ListDocuments(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if listFormat != formatText {
		data, err := encodeDocuments(listFormat, docs)
		if err != nil {
			return err
		}
		cmd.Print(string(data))
		if listFormat == formatJSON {
			cmd.Println()
		}
		return nil
	}

	if len(docs) == 0 {
		cmd.Printf("No documents in %s\n", collection)
		return nil
	}

	cmd.Printf("Documents in %s:\n\n", collection)
	for _, doc := range docs {
		cmd.Printf("  %s\n", doc.ID)
		for _, f := range doc.DisplayFields() {
			cmd.Printf("    %s: %s\n", f.Name, f.Text)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentAdd(cmd *cobra.Command, args []string) error {
	viewer, err := requireViewer()
	if err != nil {
		return err
	}

	pairs, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	res := viewer.AddDocument(ctx, args[0], domain.NewDraft(pairs...))
	if !res.OK() {
		return fmt.Errorf("failed to add document: %w", res.Err)
	}

	cmd.Printf("Created document %s in %s\n", res.DocumentID, res.Collection)
	return nil
}

func runDocumentUpdate(cmd *cobra.Command, args []string) error {
	viewer, err := requireViewer()
	if err != nil {
		return err
	}

	collection, id := args[0], args[1]
	pairs, err := parseAssignments(args[2:])
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	docs, err := viewer.ListDocuments(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", collection, err)
	}
	current, ok := domain.Collection{Name: collection, Documents: docs}.Document(id)
	if !ok {
		return fmt.Errorf("document %s/%s: %w", collection, id, domain.ErrNotFound)
	}

	var fields domain.Fields
	for _, p := range pairs {
		kind := domain.KindString
		if old, ok := current.Fields.Get(p.Name); ok {
			kind = old.Kind()
		}
		fields.Set(p.Name, domain.ParseTextOrString(kind, p.Value))
	}

	res := viewer.UpdateDocument(ctx, collection, id, fields)
	if !res.OK() {
		return fmt.Errorf("failed to update document: %w", res.Err)
	}

	cmd.Printf("Updated document %s in %s\n", id, collection)
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	viewer, err := requireViewer()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	res := viewer.DeleteDocument(ctx, args[0], args[1])
	if !res.OK() {
		return fmt.Errorf("failed to delete document: %w", res.Err)
	}

	cmd.Printf("Deleted document %s from %s\n", args[1], args[0])
	return nil
}
