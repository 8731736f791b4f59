package valueobjects

// StoryMetadata holds optional contextual metadata about a submission. Every
// field is optional and the pseudonym is an opaque caller-supplied token; no
// identifying information is collected.
type StoryMetadata struct {
	userPseudonym *string
	department    *string
	role          *string
	toolContext   *string
}

// NewStoryMetadata creates metadata from optional fields. A nil pointer means
// the field was not supplied.
func NewStoryMetadata(userPseudonym, department, role, toolContext *string) StoryMetadata {
	return StoryMetadata{
		userPseudonym: copyOptional(userPseudonym),
		department:    copyOptional(department),
		role:          copyOptional(role),
		toolContext:   copyOptional(toolContext),
	}
}

// UserPseudonym returns the opaque pseudonym, or nil
func (m StoryMetadata) UserPseudonym() *string { return copyOptional(m.userPseudonym) }

// Department returns the department, or nil
func (m StoryMetadata) Department() *string { return copyOptional(m.department) }

// Role returns the role, or nil
func (m StoryMetadata) Role() *string { return copyOptional(m.role) }

// ToolContext returns the tool context, or nil
func (m StoryMetadata) ToolContext() *string { return copyOptional(m.toolContext) }

// Equals checks if two metadata values are equal
func (m StoryMetadata) Equals(other StoryMetadata) bool {
	return equalOptional(m.userPseudonym, other.userPseudonym) &&
		equalOptional(m.department, other.department) &&
		equalOptional(m.role, other.role) &&
		equalOptional(m.toolContext, other.toolContext)
}

func copyOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
