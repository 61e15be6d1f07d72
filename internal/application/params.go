package application

import (
	"github.com/openlist-contrib/openlist-bridge/internal/domain"
)

// Typed accessors for Params. Absent keys yield zero values; presence of
// required keys is checked by the action table before run functions execute.

func (p Params) stringField(key string) (string, error) {
	raw, ok := p[key]
	if !ok {
		return "", nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", domain.NewValidationError("parameter %q must be a string", key)
	}
	return value, nil
}

func (p Params) boolField(key string) (bool, error) {
	raw, ok := p[key]
	if !ok {
		return false, nil
	}
	value, ok := raw.(bool)
	if !ok {
		return false, domain.NewValidationError("parameter %q must be a boolean", key)
	}
	return value, nil
}

func (p Params) intField(key string) (int, error) {
	raw, ok := p[key]
	if !ok {
		return 0, nil
	}
	switch value := raw.(type) {
	case int:
		return value, nil
	case int64:
		return int(value), nil
	case float64:
		return int(value), nil
	default:
		return 0, domain.NewValidationError("parameter %q must be an integer", key)
	}
}

// stringListField accepts a []string or a JSON-decoded []any of strings.
func (p Params) stringListField(key string) ([]string, error) {
	raw, ok := p[key]
	if !ok {
		return nil, nil
	}
	switch value := raw.(type) {
	case []string:
		return value, nil
	case []any:
		list := make([]string, 0, len(value))
		for _, item := range value {
			s, ok := item.(string)
			if !ok {
				return nil, domain.NewValidationError("parameter %q must be a list of strings", key)
			}
			list = append(list, s)
		}
		return list, nil
	default:
		return nil, domain.NewValidationError("parameter %q must be a list of strings", key)
	}
}

func (p Params) taskTypeField() (domain.TaskType, error) {
	value, err := p.stringField("task_type")
	if err != nil {
		return "", err
	}
	taskType := domain.TaskType(value)
	if !taskType.Valid() {
		return "", domain.NewValidationError("unsupported task type %q", value)
	}
	return taskType, nil
}

func (p Params) renameObjectsField(key string) ([]domain.RenameObject, error) {
	raw, ok := p[key]
	if !ok {
		return nil, nil
	}
	switch value := raw.(type) {
	case []domain.RenameObject:
		return value, nil
	case []any:
		renames := make([]domain.RenameObject, 0, len(value))
		for _, item := range value {
			entry, ok := item.(map[string]any)
			if !ok {
				return nil, domain.NewValidationError("parameter %q must be a list of {src_name, new_name} objects", key)
			}
			srcName, _ := entry["src_name"].(string)
			newName, _ := entry["new_name"].(string)
			if srcName == "" || newName == "" {
				return nil, domain.NewValidationError("parameter %q entries need both src_name and new_name", key)
			}
			renames = append(renames, domain.RenameObject{SrcName: srcName, NewName: newName})
		}
		return renames, nil
	default:
		return nil, domain.NewValidationError("parameter %q must be a list of {src_name, new_name} objects", key)
	}
}
