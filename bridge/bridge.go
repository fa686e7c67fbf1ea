package bridge

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pellucid-io/scopes/reply"
	"github.com/pellucid-io/scopes/types"
)

// guard converts the error discipline of fn into the boundary's: a
// non-empty string reports failure, and panics never cross.
func guard(fn func() error) (errStr string) {
	defer func() {
		if r := recover(); r != nil {
			errStr = fmt.Sprintf("panic: %v", r)
		}
	}()
	if err := fn(); err != nil {
		return err.Error()
	}
	return ""
}

func searchOf(h Handle) (*reply.SearchReply, error) {
	obj := reg.lookup(h)
	if obj == nil {
		return nil, errors.New("unknown handle")
	}
	if obj.search == nil {
		return nil, errors.New("handle is not a search reply")
	}
	return obj.search, nil
}

func previewOf(h Handle) (*reply.PreviewReply, error) {
	obj := reg.lookup(h)
	if obj == nil {
		return nil, errors.New("unknown handle")
	}
	if obj.preview == nil {
		return nil, errors.New("handle is not a preview reply")
	}
	return obj.preview, nil
}

// SearchReplyRegisterCategory registers a display category.
func SearchReplyRegisterCategory(h Handle, id, title, icon, template string) string {
	return guard(func() error {
		r, err := searchOf(h)
		if err != nil {
			return err
		}
		_, err = r.RegisterCategory(id, title, icon, template)
		return err
	})
}

// SearchReplyRegisterDepartments registers the department tree, passed as
// a JSON document.
func SearchReplyRegisterDepartments(h Handle, departmentsJSON []byte) string {
	return guard(func() error {
		r, err := searchOf(h)
		if err != nil {
			return err
		}
		var root types.Department
		if err := json.Unmarshal(departmentsJSON, &root); err != nil {
			return fmt.Errorf("departments: %w", err)
		}
		return r.RegisterDepartments(&root)
	})
}

// SearchReplyPush pushes one result, passed as a JSON document.
func SearchReplyPush(h Handle, resultJSON []byte) string {
	return guard(func() error {
		r, err := searchOf(h)
		if err != nil {
			return err
		}
		var result types.CategorisedResult
		if err := json.Unmarshal(resultJSON, &result); err != nil {
			return fmt.Errorf("result: %w", err)
		}
		return r.Push(&result)
	})
}

// SearchReplyPushFilters pushes filter definitions and state, both passed
// as JSON documents.
func SearchReplyPushFilters(h Handle, filtersJSON, stateJSON []byte) string {
	return guard(func() error {
		r, err := searchOf(h)
		if err != nil {
			return err
		}
		return r.PushFiltersJSON(filtersJSON, stateJSON)
	})
}

// SearchReplyFinished terminates the search channel normally.
func SearchReplyFinished(h Handle) string {
	return guard(func() error {
		r, err := searchOf(h)
		if err != nil {
			return err
		}
		return r.Finished()
	})
}

// SearchReplyError terminates the search channel with an error message.
func SearchReplyError(h Handle, message string) string {
	return guard(func() error {
		r, err := searchOf(h)
		if err != nil {
			return err
		}
		return r.Error(errors.New(message))
	})
}

// PreviewReplyPushWidgets pushes widget descriptors, each a JSON document.
func PreviewReplyPushWidgets(h Handle, widgetsJSON ...[]byte) string {
	return guard(func() error {
		r, err := previewOf(h)
		if err != nil {
			return err
		}
		widgets := make([]types.PreviewWidget, len(widgetsJSON))
		for i, w := range widgetsJSON {
			widgets[i] = types.PreviewWidget(w)
		}
		return r.PushWidgets(widgets...)
	})
}

// PreviewReplyPushAttr pushes one preview attribute; the value is a JSON
// document.
func PreviewReplyPushAttr(h Handle, key string, valueJSON []byte) string {
	return guard(func() error {
		r, err := previewOf(h)
		if err != nil {
			return err
		}
		return r.PushAttrJSON(key, valueJSON)
	})
}

// PreviewReplyFinished terminates the preview channel normally.
func PreviewReplyFinished(h Handle) string {
	return guard(func() error {
		r, err := previewOf(h)
		if err != nil {
			return err
		}
		return r.Finished()
	})
}

// PreviewReplyError terminates the preview channel with an error message.
func PreviewReplyError(h Handle, message string) string {
	return guard(func() error {
		r, err := previewOf(h)
		if err != nil {
			return err
		}
		return r.Error(errors.New(message))
	})
}
