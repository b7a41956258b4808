package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/termfolio/pkg/content"
	"github.com/aretw0/termfolio/pkg/domain"
)

// GraphOverlay contains session state to visualize on the graph.
type GraphOverlay struct {
	VisitedViews []domain.View
	CurrentView  domain.View
}

// GenerateMermaid produces a Mermaid flowchart of a command table: every token
// points at the view or pseudo-action it resolves to.
// It applies semantic styling:
// - Views: [Rectangle]
// - Clear: ((Circle)), pointing back at welcome
// - Scroll: [/Parallelogram/]
// - Nav views also get a dotted edge from the nav bar node.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(t *content.Table, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, view := range domain.Views {
		sb.WriteString(fmt.Sprintf("    view_%s[\"%s\"]\n", view, view))
	}
	sb.WriteString("    action_clear((\"clear\"))\n")
	sb.WriteString("    action_clear --> view_welcome\n")
	sb.WriteString("    action_scroll_up[/\"scroll ↑\"/]\n")
	sb.WriteString("    action_scroll_down[/\"scroll ↓\"/]\n")

	for _, token := range t.Tokens() {
		action, _ := t.Lookup(token)
		safeID := "cmd_" + sanitizeMermaidID(token)
		sb.WriteString(fmt.Sprintf("    %s>\"%s\"]\n", safeID, strings.ReplaceAll(token, "\"", "'")))
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", safeID, targetID(action)))
	}

	sb.WriteString("    nav{{\"nav\"}}\n")
	for _, view := range domain.NavViews {
		label := strings.ReplaceAll(t.Nav[view], "\"", "'")
		sb.WriteString(fmt.Sprintf("    nav -. \"%s\" .-> view_%s\n", label, view))
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[domain.View]bool)
		for _, v := range overlay.VisitedViews {
			if !seen[v] && v.Valid() {
				seen[v] = true
				sb.WriteString(fmt.Sprintf("    class view_%s visited;\n", v))
			}
		}

		if overlay.CurrentView.Valid() {
			sb.WriteString(fmt.Sprintf("    class view_%s current;\n", overlay.CurrentView))
		}
	}

	return sb.String()
}

// OverlayFromState marks every view reached by a recorded command.
func OverlayFromState(t *content.Table, state *domain.TerminalState) *GraphOverlay {
	o := &GraphOverlay{CurrentView: state.View}
	for _, e := range state.History {
		if action, ok := t.Lookup(content.Normalize(e.Command)); ok && action.Kind == domain.ActionView {
			o.VisitedViews = append(o.VisitedViews, action.View)
		}
	}
	return o
}

func targetID(a domain.Action) string {
	switch a.Kind {
	case domain.ActionClear:
		return "action_clear"
	case domain.ActionScroll:
		if a.Direction == domain.ScrollUp {
			return "action_scroll_up"
		}
		return "action_scroll_down"
	default:
		return "view_" + string(a.View)
	}
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
