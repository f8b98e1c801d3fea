package cli

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/pulse/internal/ports/primary"
)

// Department keys accepted in update documents and on the command line.
var departmentKeys = []string{"product", "tech", "marketing", "client_success", "commercial"}

// TaskDocument is one task in a YAML task list.
type TaskDocument struct {
	Text string `yaml:"text"`
	Done bool   `yaml:"done,omitempty"`
	Due  string `yaml:"due,omitempty"`
}

// TasksDocument is a task list file.
//
//	tasks:
//	  - text: Renew certificates
//	    due: 2026-04-10
//	  - text: Office move
//	    done: true
type TasksDocument struct {
	Tasks []TaskDocument `yaml:"tasks"`
}

// UpdateDocument is an editable update, as printed by "pulse update draft".
type UpdateDocument struct {
	Plan      string         `yaml:"plan"`
	Alignment string         `yaml:"alignment"`
	Execution string         `yaml:"execution"`
	Outcomes  string         `yaml:"outcomes"`
	Mood      string         `yaml:"mood"`
	Status    string         `yaml:"status,omitempty"`
	Risk      string         `yaml:"risk,omitempty"`
	Aligned   []string       `yaml:"aligned,omitempty"`
	Tasks     []TaskDocument `yaml:"tasks,omitempty"`
}

// SeedDocument lists the initiatives to create on first use.
type SeedDocument struct {
	Initiatives []string `yaml:"initiatives"`
}

// ParseTasksYAML decodes a task list.
func ParseTasksYAML(data []byte) ([]primary.TaskInput, error) {
	var doc TasksDocument
	if err := decodeYAML(data, &doc); err != nil {
		return nil, fmt.Errorf("tasks: %w", err)
	}
	return taskInputs(doc.Tasks), nil
}

// LoadTasksFile reads a task list from path.
func LoadTasksFile(path string) ([]primary.TaskInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	tasks, err := ParseTasksYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tasks, nil
}

// ParseUpdateYAML decodes an update document.
func ParseUpdateYAML(data []byte) (*UpdateDocument, error) {
	var doc UpdateDocument
	if err := decodeYAML(data, &doc); err != nil {
		return nil, fmt.Errorf("update: %w", err)
	}
	if err := ValidateDepartments(doc.Aligned); err != nil {
		return nil, fmt.Errorf("update: %w", err)
	}
	return &doc, nil
}

// LoadUpdateFile reads an update document from path.
func LoadUpdateFile(path string) (*UpdateDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := ParseUpdateYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ParseSeedYAML decodes a seed file.
func ParseSeedYAML(data []byte) ([]string, error) {
	var doc SeedDocument
	if err := decodeYAML(data, &doc); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return doc.Initiatives, nil
}

// LoadSeedFile reads a seed file from path.
func LoadSeedFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	names, err := ParseSeedYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return names, nil
}

// DraftDocument converts a draft into its editable document form.
func DraftDocument(draft *primary.UpdateDraft) *UpdateDocument {
	a := draft.Assessment
	doc := &UpdateDocument{
		Plan:      a.Plan,
		Alignment: a.Alignment,
		Execution: a.Execution,
		Outcomes:  a.Outcomes,
		Mood:      a.Mood,
		Status:    a.LatestStatus,
		Risk:      a.BiggestRisk,
		Aligned:   alignedKeys(a),
	}
	for _, task := range draft.Tasks {
		doc.Tasks = append(doc.Tasks, TaskDocument{Text: task.Text, Done: task.Completed, Due: task.DueDate})
	}
	return doc
}

// Assessment returns the document's ratings and notes.
func (d *UpdateDocument) Assessment() primary.Assessment {
	a := primary.Assessment{
		Plan:         d.Plan,
		Alignment:    d.Alignment,
		Execution:    d.Execution,
		Outcomes:     d.Outcomes,
		Mood:         d.Mood,
		LatestStatus: d.Status,
		BiggestRisk:  d.Risk,
	}
	setAligned(&a, d.Aligned)
	return a
}

// TaskInputs returns the document's task list.
func (d *UpdateDocument) TaskInputs() []primary.TaskInput {
	return taskInputs(d.Tasks)
}

// EncodeYAML renders v as a YAML document.
func EncodeYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// ValidateDepartments rejects unknown department keys.
func ValidateDepartments(keys []string) error {
	for _, key := range keys {
		if !slices.Contains(departmentKeys, key) {
			return fmt.Errorf("unknown department %q (valid: %s)", key, strings.Join(departmentKeys, ", "))
		}
	}
	return nil
}

func decodeYAML(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("document is empty")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func taskInputs(docs []TaskDocument) []primary.TaskInput {
	tasks := make([]primary.TaskInput, 0, len(docs))
	for _, d := range docs {
		tasks = append(tasks, primary.TaskInput{Text: d.Text, Completed: d.Done, DueDate: d.Due})
	}
	return tasks
}

func alignedKeys(a primary.Assessment) []string {
	var keys []string
	for i, on := range []bool{a.ProductAligned, a.TechAligned, a.MarketingAligned, a.ClientSuccessAligned, a.CommercialAligned} {
		if on {
			keys = append(keys, departmentKeys[i])
		}
	}
	return keys
}

func setAligned(a *primary.Assessment, keys []string) {
	a.ProductAligned = slices.Contains(keys, "product")
	a.TechAligned = slices.Contains(keys, "tech")
	a.MarketingAligned = slices.Contains(keys, "marketing")
	a.ClientSuccessAligned = slices.Contains(keys, "client_success")
	a.CommercialAligned = slices.Contains(keys, "commercial")
}
