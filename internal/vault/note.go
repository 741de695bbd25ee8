package vault

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrInvalidProperty indicates a front matter field holds an unusable value.
var ErrInvalidProperty = errors.New("vault: invalid property")

// NoteError ties a failure to the note that caused it.
type NoteError struct {
	Path string
	Err  error
}

func (e *NoteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *NoteError) Unwrap() error { return e.Err }

// scalar keeps the source text of a YAML scalar, so "2:00" or 2024-03-14
// arrive as written whatever YAML would resolve them to.
type scalar string

func (s *scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	*s = scalar(node.Value)
	return nil
}

var plainScalar = regexp.MustCompile(`^[\w.:-]+$`)

// MarshalYAML writes numbers, dates and durations unquoted, the way they are
// typed by hand.
func (s scalar) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.ScalarNode, Value: string(s)}
	if !plainScalar.MatchString(node.Value) {
		node.Style = yaml.DoubleQuotedStyle
	}
	return node, nil
}

// wikiLink reads a [[note]] reference. Unquoted, YAML sees [[note]] as a
// nested sequence, so single-element sequences are unwrapped.
type wikiLink string

func (l *wikiLink) UnmarshalYAML(node *yaml.Node) error {
	for node.Kind == yaml.SequenceNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a note link", node.Line)
	}
	*l = wikiLink(unlink(node.Value))
	return nil
}

// taskProperties is the front matter layout of a task note.
type taskProperties struct {
	Priority  scalar         `yaml:"priority,omitempty"`
	Status    string         `yaml:"status,omitempty"`
	IssueType string         `yaml:"issue_type,omitempty"`
	DueDate   scalar         `yaml:"due_date,omitempty"`
	JiraKey   string         `yaml:"jira_key,omitempty"`
	Sprints   []scalar       `yaml:"sprints,omitempty"`
	Original  scalar         `yaml:"time original estimation,omitempty"`
	Spent     scalar         `yaml:"time spent,omitempty"`
	Left      scalar         `yaml:"time left,omitempty"`
	Parent    wikiLink       `yaml:"parent,omitempty"`
	Children  []wikiLink     `yaml:"children,omitempty"`
	Extra     map[string]any `yaml:",inline"`
}

// NoteName is the task name a note file stands for: its base name without
// the .md extension.
func NoteName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ParseTaskNote reads the front matter of a task note. Notes without front
// matter return ErrMissingFrontMatter.
func ParseTaskNote(path string, content []byte) (domain.TaskMetadata, []byte, error) {
	var props taskProperties
	body, err := decodeFrontMatter(content, &props)
	if err != nil {
		return domain.TaskMetadata{}, body, err
	}
	meta, err := props.toMetadata()
	if err != nil {
		return domain.TaskMetadata{}, nil, err
	}
	meta.Name = NoteName(path)
	meta.Path = path
	return meta, body, nil
}

// RenderTaskNote renders meta as front matter followed by body.
func RenderTaskNote(meta domain.TaskMetadata, body []byte) ([]byte, error) {
	var props taskProperties
	props.fromMetadata(meta)
	return encodeFrontMatter(props, body)
}

func (p taskProperties) toMetadata() (domain.TaskMetadata, error) {
	var meta domain.TaskMetadata

	if p.Priority != "" {
		n, err := strconv.Atoi(string(p.Priority))
		if err != nil {
			return meta, fmt.Errorf("%w: priority %q is not a number", ErrInvalidProperty, p.Priority)
		}
		prio, err := domain.PriorityFromNumber(n)
		if err != nil {
			return meta, fmt.Errorf("%w: %v", ErrInvalidProperty, err)
		}
		meta.Priority = prio
	}

	if p.Status != "" {
		status := domain.TaskStatus(p.Status)
		if !domain.ValidTaskStatuses[status] {
			return meta, fmt.Errorf("%w: unknown status %q", ErrInvalidProperty, p.Status)
		}
		meta.Status = status
	}

	if p.IssueType != "" {
		issue := domain.IssueType(p.IssueType)
		if issue == "SubTask" {
			issue = domain.IssueSubTask
		}
		if !domain.ValidIssueTypes[issue] {
			return meta, fmt.Errorf("%w: unknown issue type %q", ErrInvalidProperty, p.IssueType)
		}
		meta.IssueType = issue
	}

	if p.DueDate != "" {
		due, err := domain.ParseDate(string(p.DueDate))
		if err != nil {
			return meta, fmt.Errorf("%w: due_date: %v", ErrInvalidProperty, err)
		}
		meta.DueDate = &due
	}

	var err error
	if meta.Time.Original, err = optionalDuration("time original estimation", p.Original); err != nil {
		return meta, err
	}
	if meta.Time.Spent, err = optionalDuration("time spent", p.Spent); err != nil {
		return meta, err
	}
	if meta.Time.Remaining, err = optionalDuration("time left", p.Left); err != nil {
		return meta, err
	}

	for _, s := range p.Sprints {
		if tag := strings.TrimSpace(string(s)); tag != "" {
			meta.Sprints = append(meta.Sprints, domain.SprintTag(tag))
		}
	}

	meta.JiraKey = p.JiraKey
	meta.Parent = string(p.Parent)
	for _, c := range p.Children {
		meta.Children = append(meta.Children, string(c))
	}
	if len(p.Extra) > 0 {
		meta.Extra = p.Extra
	}
	return meta, nil
}

func (p *taskProperties) fromMetadata(meta domain.TaskMetadata) {
	if meta.Priority != domain.PriorityUnset {
		p.Priority = scalar(strconv.Itoa(meta.Priority.Number()))
	}
	p.Status = string(meta.Status)
	p.IssueType = string(meta.IssueType)
	if meta.DueDate != nil {
		p.DueDate = scalar(meta.DueDate.String())
	}
	p.JiraKey = meta.JiraKey
	for _, s := range meta.Sprints {
		p.Sprints = append(p.Sprints, scalar(s))
	}
	p.Original = durationScalar(meta.Time.Original)
	p.Spent = durationScalar(meta.Time.Spent)
	p.Left = durationScalar(meta.Time.Remaining)
	if meta.Parent != "" {
		p.Parent = wikiLink(link(meta.Parent))
	}
	for _, c := range meta.Children {
		p.Children = append(p.Children, wikiLink(link(c)))
	}
	p.Extra = meta.Extra
}

// optionalDuration keeps an absent field distinct from an explicit 0:00.
func optionalDuration(field string, s scalar) (*domain.Duration, error) {
	if s == "" {
		return nil, nil
	}
	d, err := domain.ParseDuration(string(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidProperty, field, err)
	}
	return &d, nil
}

func durationScalar(d *domain.Duration) scalar {
	if d == nil {
		return ""
	}
	return scalar(d.Render(d.IsNegative()))
}

func unlink(s string) string {
	return strings.Trim(strings.TrimSpace(s), "[]")
}

func link(s string) string {
	return "[[" + s + "]]"
}
