// Package devops provides a client for the Azure DevOps work item tracking
// REST API: fetching work items, running WIQL queries, and applying field
// updates with an optional revision guard for optimistic concurrency.
package devops

import (
	"strconv"
	"strings"
)

// Field reference names used by the tracker. Work item payloads key every
// field by its full reference name.
const (
	FieldTitle       = "System.Title"
	FieldState       = "System.State"
	FieldAssignedTo  = "System.AssignedTo"
	FieldType        = "System.WorkItemType"
	FieldTags        = "System.Tags"
	FieldDescription = "System.Description"
	FieldPriority    = "Microsoft.VSTS.Common.Priority"
)

// relParent is the relation type pointing at a work item's parent.
const relParent = "System.LinkTypes.Hierarchy-Reverse"

// WorkItem is a tracker work item. Fields holds the raw field map keyed by
// reference name; Rev is the server-side revision counter that increments on
// every update and anchors the optimistic concurrency guard.
type WorkItem struct {
	ID        int            `json:"id"`
	Rev       int            `json:"rev"`
	Fields    map[string]any `json:"fields"`
	Relations []Relation     `json:"relations,omitempty"`
	URL       string         `json:"url,omitempty"`
}

// Relation is a typed link from one work item to another.
type Relation struct {
	Rel        string         `json:"rel"`
	URL        string         `json:"url"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// WiqlResult is the response to a WIQL query. It carries references only;
// callers fetch full items by ID as needed.
type WiqlResult struct {
	QueryType string    `json:"queryType"`
	WorkItems []ItemRef `json:"workItems"`
}

// ItemRef is a lightweight work item reference returned by WIQL queries.
type ItemRef struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

// stringField returns the named field as a string, or "" if absent or not a
// string.
func (w *WorkItem) stringField(name string) string {
	if w.Fields == nil {
		return ""
	}
	s, _ := w.Fields[name].(string)
	return s
}

// Title returns the work item title, or "" if unset.
func (w *WorkItem) Title() string { return w.stringField(FieldTitle) }

// State returns the workflow state, or "" if unset.
func (w *WorkItem) State() string { return w.stringField(FieldState) }

// Type returns the work item type name, or "" if unset.
func (w *WorkItem) Type() string { return w.stringField(FieldType) }

// Description returns the description field, or "" if unset.
func (w *WorkItem) Description() string { return w.stringField(FieldDescription) }

// AssignedTo returns the display name of the assignee, or "" if unassigned.
// The tracker serializes assignees as an identity object.
func (w *WorkItem) AssignedTo() string {
	identity, ok := w.Fields[FieldAssignedTo].(map[string]any)
	if !ok {
		return ""
	}
	name, _ := identity["displayName"].(string)
	return name
}

// Tags returns the semicolon-separated tags field split into a slice.
// Returns nil when no tags are set.
func (w *WorkItem) Tags() []string {
	raw := w.stringField(FieldTags)
	if raw == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ";") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ParentID returns the ID of the parent work item, derived from the
// hierarchy-reverse relation URL. Returns 0 when the item has no parent.
func (w *WorkItem) ParentID() int {
	for _, rel := range w.Relations {
		if rel.Rel != relParent {
			continue
		}
		parts := strings.Split(rel.URL, "/")
		if len(parts) == 0 {
			return 0
		}
		id, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			return 0
		}
		return id
	}
	return 0
}
