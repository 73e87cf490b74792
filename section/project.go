package section

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rpupo63/site-sections-backend/errs"
)

type ProjectStatus string

const (
	StatusCompleted  ProjectStatus = "COMPLETED"
	StatusInProgress ProjectStatus = "IN PROGRESS"
	StatusOnHold     ProjectStatus = "ON HOLD"
	StatusPlanned    ProjectStatus = "PLANNED"
)

// CanonicalStatus upper-cases a free text status and reports whether it is one
// of the known values. Unknown values are kept as typed.
func CanonicalStatus(status string) (ProjectStatus, bool) {
	normalized := ProjectStatus(strings.Join(strings.Fields(strings.ToUpper(strings.ReplaceAll(status, "_", " "))), " "))
	switch normalized {
	case StatusCompleted, StatusInProgress, StatusOnHold, StatusPlanned:
		return normalized, true
	}
	return ProjectStatus(strings.TrimSpace(status)), false
}

type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
	GithubURL    string   `json:"githubUrl"`
	DemoURL      string   `json:"demoUrl"`
	Technologies string   `json:"technologies"`
	Model        string   `json:"model"`
	Client       string   `json:"client"`
	Location     string   `json:"location"`
	Status       string   `json:"status"`
	Value        string   `json:"value"`
	Architects   string   `json:"architects"`
	Role         string   `json:"role"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
}

func (p Project) Valid() bool {
	return strings.TrimSpace(p.Name) != ""
}

// PendingImage returns the index of the first image that is still an inline
// data URL, or -1.
func (p Project) PendingImage() int {
	for i, img := range p.Images {
		if IsDataURL(img) {
			return i
		}
	}
	return -1
}

type Projects []Project

func (Projects) Kind() Kind { return KindProjects }

// legacyProjectFields is the width of the pipe tuple written before projects
// moved to JSON: name through endDate, without an id.
const legacyProjectFields = 15

var newProjectID = uuid.NewString

// ParseProjects decodes the JSON array of projects. Content in the legacy
// 15-field pipe grammar is mapped positionally, given fresh ids, and reported
// as migrated so the caller rewrites it as JSON. JSON entries without an id
// get a derived one and are reported as migrated too.
func ParseProjects(content string) (items Projects, migrated bool, err error) {
	if strings.TrimSpace(content) == "" {
		return nil, false, nil
	}

	if isJSONDocument(content) {
		decoded, jsonErr := decodeJSONList[Project](content)
		if jsonErr != nil {
			return nil, false, errs.NewMalformedContentError(string(KindProjects), jsonErr)
		}
		items, assigned := normalizeProjects(decoded)
		return items, assigned, nil
	}

	for _, rec := range splitRecords(content) {
		parts := splitFields(rec)
		if len(parts) > legacyProjectFields {
			parts = parts[:legacyProjectFields]
		}
		p := Project{
			ID:           newProjectID(),
			Name:         field(parts, 0),
			Description:  field(parts, 1),
			Images:       splitList(field(parts, 2)),
			GithubURL:    field(parts, 3),
			DemoURL:      field(parts, 4),
			Technologies: field(parts, 5),
			Model:        field(parts, 6),
			Client:       field(parts, 7),
			Location:     field(parts, 8),
			Status:       field(parts, 9),
			Value:        field(parts, 10),
			Architects:   field(parts, 11),
			Role:         field(parts, 12),
			StartDate:    field(parts, 13),
			EndDate:      field(parts, 14),
		}
		if p.Valid() {
			items = append(items, p)
		}
	}
	if len(items) > 0 {
		return items, true, nil
	}
	return nil, false, errs.NewMalformedContentError(string(KindProjects), nil)
}

// normalizeProjects drops invalid entries and names the ones stored without
// an id. assigned reports whether any id was added, so the caller persists it.
func normalizeProjects(in []Project) (out Projects, assigned bool) {
	for i, p := range in {
		if !p.Valid() {
			continue
		}
		if p.ID == "" {
			p.ID = derivedProjectID(i, p)
			assigned = true
		}
		out = append(out, p)
	}
	return out, assigned
}

// derivedProjectID is stable for the same document, so reads made before the
// id is written back agree with each other.
func derivedProjectID(i int, p Project) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "project/%d/%s/%s", i, p.Name, p.Description)).String()
}

func SerializeProjects(items Projects) (string, error) {
	if items == nil {
		items = Projects{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
