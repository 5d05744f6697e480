package hooks

import (
	"context"

	json "github.com/goccy/go-json"
	"github.com/jmespath/go-jmespath"

	"siteconf/internal/types"
)

// JMESGuard builds a filter that vetoes a JSON-valued setting unless the
// JMESPath expression evaluates to true over the decoded value. A value
// that is not valid JSON is vetoed too. The value is never rewritten.
func JMESGuard(expression string) Func {
	return func(ctx context.Context, tenantID int64, key, value string) (string, error) {
		var doc any
		if err := json.Unmarshal([]byte(value), &doc); err != nil {
			return "", types.Err(types.ErrValueRejected, err, "setting %q is not valid JSON", key)
		}
		v, err := jmespath.Search(expression, doc)
		if err != nil {
			return "", types.Err(types.ErrValueRejected, err, "jmespath %q", expression)
		}
		if ok, _ := v.(bool); !ok {
			return "", types.Err(types.ErrValueRejected, nil, "setting %q failed guard %q", key, expression)
		}
		return value, nil
	}
}
