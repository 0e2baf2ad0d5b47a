package domain

// CategoryTemplate is a moderator-defined post category on a community.
type CategoryTemplate struct {
	ID   string
	Text string
}

// CategoryChoice selects a category by template, or by free text when no
// template matches.
type CategoryChoice struct {
	TemplateID string
	Text       string
}

// CategoryMapping resolves source category labels to destination template ids.
type CategoryMapping map[string]string

func NewCategoryMapping(templates []CategoryTemplate) CategoryMapping {
	m := make(CategoryMapping, len(templates))
	for _, t := range templates {
		if _, exists := m[t.Text]; !exists {
			m[t.Text] = t.ID
		}
	}
	return m
}

func (m CategoryMapping) Lookup(label string) (string, bool) {
	if label == "" {
		return "", false
	}
	id, ok := m[label]
	return id, ok
}
