package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/docflow/internal/filex"
	"github.com/dmitrijs2005/docflow/internal/models"
	"github.com/dmitrijs2005/docflow/internal/services"
)

// Docs searches documents by text, status, type and authorship.
func (a *App) Docs(ctx context.Context) error {
	s, err := a.session()
	if err != nil {
		return err
	}

	var filter models.DocumentFilter
	if filter.Text, err = a.ask("Search by id or name (empty for all)"); err != nil {
		return err
	}
	if filter.Status, err = a.ask("Status (empty for any)"); err != nil {
		return err
	}
	if filter.Type, err = a.ask("Type (empty for any)"); err != nil {
		return err
	}
	mine, err := confirm(a.reader, "Only my documents?", a.out)
	if err != nil {
		return err
	}
	if mine {
		filter.AuthorID = s.UserID
	}

	docs, err := a.svc.Documents.Search(ctx, s, filter)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		a.println("No documents found")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSTATUS\tAUTHOR\tCREATED\tVER")
	for _, d := range docs {
		fmt.Fprintf(w, "%d\t%s%s\t%s\t%s\t%s\t%s\t%d\n",
			d.ID, d.Name, d.FileType, d.Type, d.StatusName, d.AuthorName,
			d.CreatedAt.Local().Format("2006-01-02 15:04"), d.Version)
	}
	return w.Flush()
}

// AddDoc registers a document from a local file.
func (a *App) AddDoc(ctx context.Context) error {
	s, err := a.session()
	if err != nil {
		return err
	}

	var d services.NewDocument
	if d.Name, err = a.ask("Document name"); err != nil {
		return err
	}
	if d.Type, err = a.ask("Document type"); err != nil {
		return err
	}

	statuses, err := a.svc.Documents.Statuses(ctx)
	if err != nil {
		return err
	}
	if d.Status, err = a.ask(fmt.Sprintf("Status: %s (empty for %s)", strings.Join(statuses, ", "), models.StatusCreated)); err != nil {
		return err
	}

	if d.FileName, err = a.ask("Path to file"); err != nil {
		return err
	}
	if d.Content, err = readFile(d.FileName); err != nil {
		return fmt.Errorf("failed to read %s: %w", d.FileName, err)
	}

	doc, err := a.svc.Documents.Register(ctx, s, d)
	if err != nil {
		return err
	}

	a.printf("Document %d registered\n", doc.ID)
	return nil
}

// GetDoc saves a document into the download directory.
func (a *App) GetDoc(ctx context.Context) error {
	s, err := a.session()
	if err != nil {
		return err
	}

	id, err := a.askID("Document id")
	if err != nil {
		return err
	}

	name, data, err := a.svc.Documents.Download(ctx, s, id)
	if err != nil {
		return err
	}

	path, err := filex.WriteUnique(a.downloadDir, name, data)
	if err != nil {
		return err
	}

	a.printf("Saved to %s\n", path)
	return nil
}

func (a *App) DelDoc(ctx context.Context) error {
	s, err := a.session()
	if err != nil {
		return err
	}

	id, err := a.askID("Document id")
	if err != nil {
		return err
	}
	ok, err := confirm(a.reader, fmt.Sprintf("Delete document %d?", id), a.out)
	if err != nil || !ok {
		return err
	}

	if err := a.svc.Documents.Delete(ctx, s, id); err != nil {
		return err
	}

	a.println("Document deleted")
	return nil
}
