package domain

type ParentType = TargetType

type Comment struct {
	ID       string     `json:"id"`
	ParentID string     `json:"parent_id,omitempty"`
	Author   string     `json:"author"`
	Content  string     `json:"content"`
	Widget   VoteWidget `json:"widget"`
}

type Thread struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Content  string     `json:"content,omitempty"`
	Widget   VoteWidget `json:"widget"`
	Comments []Comment  `json:"comments"`
}

// Widgets lists every widget of the thread in rendered order.
func (t *Thread) Widgets() []VoteWidget {
	widgets := make([]VoteWidget, 0, len(t.Comments)+1)
	if t.Widget.TargetID != "" {
		widgets = append(widgets, t.Widget)
	}
	for _, c := range t.Comments {
		widgets = append(widgets, c.Widget)
	}
	return widgets
}

// WithWidgets returns a copy of the thread whose widgets are replaced by the
// ones found in the given map.
func (t Thread) WithWidgets(widgets map[string]VoteWidget) Thread {
	if w, ok := widgets[t.Widget.Key()]; ok {
		t.Widget = w
	}
	comments := make([]Comment, len(t.Comments))
	for i, c := range t.Comments {
		if w, ok := widgets[c.Widget.Key()]; ok {
			c.Widget = w
		}
		comments[i] = c
	}
	t.Comments = comments
	return t
}
