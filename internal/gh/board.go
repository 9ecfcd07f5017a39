package gh

import (
	"context"
	"encoding/json"
	"fmt"
)

// BoardItem is one project-board item attached to an issue. An issue may be
// attached to several boards; callers filter on ProjectNumber.
type BoardItem struct {
	ID            string
	ProjectNumber int
}

// StatusField is a project's single-select "Status" field: its identifier
// and the live option-name → option-id mapping discovered from the board.
type StatusField struct {
	ID      string
	Options map[string]string
}

// OptionName looks up the display name for an option id, for progress output.
func (f *StatusField) OptionName(optionID string) string {
	for name, id := range f.Options {
		if id == optionID {
			return name
		}
	}
	return "Unknown"
}

// ItemsForIssue returns the project items an issue is attached to.
func (c *Client) ItemsForIssue(ctx context.Context, number int) ([]BoardItem, error) {
	owner, name, err := c.resolveRepo(ctx)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`query {
  repository(owner: %q, name: %q) {
    issue(number: %d) {
      projectItems(first: 10) {
        nodes {
          id
          project {
            number
          }
        }
      }
    }
  }
}`, owner, name, number)

	out, err := c.run(ctx, "api", "graphql", "-f", "query="+query)
	if err != nil {
		return nil, err
	}
	return parseBoardItems(out)
}

func parseBoardItems(data []byte) ([]BoardItem, error) {
	var payload struct {
		Data struct {
			Repository struct {
				Issue struct {
					ProjectItems struct {
						Nodes []struct {
							ID      string `json:"id"`
							Project struct {
								Number int `json:"number"`
							} `json:"project"`
						} `json:"nodes"`
					} `json:"projectItems"`
				} `json:"issue"`
			} `json:"repository"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parsing project items: %w", err)
	}

	var items []BoardItem
	for _, n := range payload.Data.Repository.Issue.ProjectItems.Nodes {
		items = append(items, BoardItem{ID: n.ID, ProjectNumber: n.Project.Number})
	}
	return items, nil
}

// GetStatusField discovers the project's single-select "Status" field and
// its options. Returns ErrNoStatusField when the project has none.
func (c *Client) GetStatusField(ctx context.Context, projectID string) (*StatusField, error) {
	query := fmt.Sprintf(`query {
  node(id: %q) {
    ... on ProjectV2 {
      fields(first: 20) {
        nodes {
          ... on ProjectV2SingleSelectField {
            id
            name
            options {
              id
              name
            }
          }
        }
      }
    }
  }
}`, projectID)

	out, err := c.run(ctx, "api", "graphql", "-f", "query="+query)
	if err != nil {
		return nil, err
	}
	return parseStatusField(out)
}

func parseStatusField(data []byte) (*StatusField, error) {
	var payload struct {
		Data struct {
			Node struct {
				Fields struct {
					Nodes []struct {
						ID      string `json:"id"`
						Name    string `json:"name"`
						Options []struct {
							ID   string `json:"id"`
							Name string `json:"name"`
						} `json:"options"`
					} `json:"nodes"`
				} `json:"fields"`
			} `json:"node"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parsing status field: %w", err)
	}

	for _, f := range payload.Data.Node.Fields.Nodes {
		if f.Name != "Status" {
			continue
		}
		field := &StatusField{ID: f.ID, Options: make(map[string]string, len(f.Options))}
		for _, opt := range f.Options {
			field.Options[opt.Name] = opt.ID
		}
		return field, nil
	}
	return nil, ErrNoStatusField
}

// UpdateItemStatus sets the status field of one board item to an option.
// Re-applying the current option is a harmless no-op on the board.
func (c *Client) UpdateItemStatus(ctx context.Context, projectID, itemID, fieldID, optionID string) error {
	mutation := fmt.Sprintf(`mutation {
  updateProjectV2ItemFieldValue(
    input: {
      projectId: %q
      itemId: %q
      fieldId: %q
      value: {
        singleSelectOptionId: %q
      }
    }
  ) {
    projectV2Item {
      id
    }
  }
}`, projectID, itemID, fieldID, optionID)

	_, err := c.run(ctx, "api", "graphql", "-f", "query="+mutation)
	return err
}
