package sp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// listTemplates maps template names to the integer identifiers the
// server uses to determine a new list's schema and behavior.
var listTemplates = map[string]int{
	"GenericList":     100,
	"DocumentLibrary": 101,
	"Survey":          102,
	"Links":           103,
	"Announcements":   104,
	"Contacts":        105,
	"Events":          106,
	"Tasks":           107,
	"DiscussionBoard": 108,
	"PictureLibrary":  109,
	"IssueTracking":   1100,
}

// TemplateNames returns the supported list template names, sorted.
func TemplateNames() []string {
	names := make([]string, 0, len(listTemplates))
	for name := range listTemplates {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// TemplateNotFoundError is returned when a list template name is not in
// the supported catalog. The message enumerates the valid choices.
type TemplateNotFoundError struct {
	Name      string
	Available []string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("sp: list template %q not found, choose from: %s",
		e.Name, strings.Join(e.Available, ", "))
}

// CreateList creates a list from a named template. An unrecognized
// template name fails locally before any network call.
func (c *Client) CreateList(ctx context.Context, name, description, templateName string) (string, error) {
	templateID, ok := listTemplates[templateName]
	if !ok {
		err := &TemplateNotFoundError{Name: templateName, Available: TemplateNames()}
		c.logger.Error("list template not found",
			slog.String("template", templateName),
			slog.String("available", strings.Join(err.Available, ", ")),
		)

		return "", err
	}

	if err := c.connect(ctx); err != nil {
		return "", err
	}

	c.logger.Info("creating list",
		slog.String("list", name),
		slog.String("template", templateName),
		slog.Int("template_id", templateID),
	)

	res, err := c.conf(ctx).Web().Lists().Add(name, map[string]any{
		"Description":  description,
		"BaseTemplate": templateID,
	})
	if err != nil {
		return "", c.mapError(err)
	}

	var info ListInfo
	if err := json.Unmarshal(res.Normalized(), &info); err != nil {
		return "", fmt.Errorf("sp: decoding create list response: %w", err)
	}

	c.logger.Info("list created", slog.String("title", info.Title))

	return info.Title, nil
}

// RenameList changes a list's title. The list is resolved first so an
// unknown title surfaces as ErrListNotFound.
func (c *Client) RenameList(ctx context.Context, title, newTitle string) (string, error) {
	if _, err := c.List(ctx, title); err != nil {
		return "", err
	}

	c.logger.Info("renaming list",
		slog.String("list", title),
		slog.String("new_title", newTitle),
	)

	body, err := json.Marshal(map[string]any{"Title": newTitle})
	if err != nil {
		return "", fmt.Errorf("sp: marshaling list update: %w", err)
	}

	if _, err := c.conf(ctx).Web().Lists().GetByTitle(title).Update(body); err != nil {
		return "", c.mapError(err)
	}

	c.logger.Info("list renamed", slog.String("title", newTitle))

	return newTitle, nil
}
