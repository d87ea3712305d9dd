package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/itemkeeper/internal/client/models"
	"github.com/dmitrijs2005/itemkeeper/internal/client/services"
	"github.com/dmitrijs2005/itemkeeper/internal/common"
)

func (a *App) prompt() string {
	if !a.interactive {
		return ""
	}
	return fmt.Sprintf("ik %s> ", a.getStatus())
}

func (a *App) getStatus() string {
	var parts []string
	if cur, ok := a.editor.Current(); ok {
		parts = append(parts, fmt.Sprintf("editing #%d", cur.ID))
	}
	if m := a.Mode(); m != ModeDisabled {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// fail prints err for the user and returns it.
func (a *App) fail(ctx context.Context, what string, err error) error {
	a.logger.Debug(ctx, what+" failed", "error", err)
	fmt.Fprintf(a.out, "%s failed: %v\n", what, err)
	return err
}

func (a *App) List(ctx context.Context) error {
	items, err := a.items.Refresh(ctx)
	if err != nil {
		if errors.Is(err, services.ErrCancelled) {
			return err
		}
		a.fail(ctx, "refresh", err)
		items = a.items.Items().Items
	}
	a.printItems(items)
	return err
}

func (a *App) Refresh(ctx context.Context) error {
	items, err := a.items.ForceRefresh(ctx)
	if err != nil {
		return a.fail(ctx, "refresh", err)
	}
	a.printItems(items)
	return nil
}

func (a *App) printItems(items []models.Item) {
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No items.")
		return
	}
	for _, it := range items {
		fmt.Fprintln(a.out, formatItem(it))
	}
}

// New drops the selection so that the next save creates an item.
func (a *App) New(ctx context.Context) error {
	a.editor.Cancel()
	fmt.Fprintln(a.out, "Editing a new item; type 'save' to submit.")
	return nil
}

func (a *App) Edit(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return a.fail(ctx, "edit", err)
	}
	it, err := a.editor.Edit(id)
	if err != nil {
		return a.fail(ctx, "edit", err)
	}
	fmt.Fprintln(a.out, "Editing", formatItem(it))
	return nil
}

func (a *App) Cancel(ctx context.Context) error {
	a.editor.Cancel()
	fmt.Fprintln(a.out, "Selection cleared.")
	return nil
}

// Save asks for the fields and submits them. Empty answers keep the selected
// item's values.
func (a *App) Save(ctx context.Context) error {
	name, err := GetOptionalText(a.reader, "Name", a.out)
	if err != nil {
		return a.fail(ctx, "save", err)
	}
	description, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return a.fail(ctx, "save", err)
	}

	_, updating := a.editor.Current()
	it, err := a.editor.Submit(ctx, models.ItemDraft{Name: name, Description: description})
	if err != nil {
		return a.fail(ctx, "save", err)
	}

	if updating {
		fmt.Fprintln(a.out, "Updated", formatItem(it))
	} else {
		fmt.Fprintln(a.out, "Created", formatItem(it))
	}
	return nil
}

func (a *App) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return a.fail(ctx, "delete", err)
	}
	if err := a.editor.Delete(ctx, id); err != nil {
		return a.fail(ctx, "delete", err)
	}
	fmt.Fprintf(a.out, "Deleted #%d\n", id)
	return nil
}

// Show fetches a single item from the server, bypassing the cache.
func (a *App) Show(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return a.fail(ctx, "show", err)
	}
	it, err := a.remote.Get(ctx, id)
	if err != nil {
		return a.fail(ctx, "show", err)
	}
	fmt.Fprintln(a.out, formatItem(*it))
	return nil
}

func (a *App) Status(ctx context.Context) error {
	snap := a.items.Items()

	fmt.Fprintf(a.out, "mode: %s\n", a.Mode())
	fmt.Fprintf(a.out, "items: %d loaded=%t stale=%t\n", len(snap.Items), snap.Loaded, snap.Stale)
	if !snap.FetchedAt.IsZero() {
		fmt.Fprintf(a.out, "fetched at: %s\n", snap.FetchedAt.Format("15:04:05"))
	}
	if snap.Err != nil {
		fmt.Fprintf(a.out, "last error: %v\n", snap.Err)
	}
	for _, k := range []services.MutationKind{services.MutationCreate, services.MutationUpdate, services.MutationDelete} {
		fmt.Fprintf(a.out, "%s: %s\n", k, a.items.Status(k))
	}
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q: %w", s, common.ErrorInvalidID)
	}
	return id, nil
}

func formatItem(it models.Item) string {
	s := fmt.Sprintf("#%d %s", it.ID, it.Name)
	if it.Description != "" {
		s += "\n    " + strings.ReplaceAll(it.Description, "\n", "\n    ")
	}
	return s
}
