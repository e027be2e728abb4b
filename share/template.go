package share

import (
	"fmt"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
)

var (
	TemplateFuncMap = template.FuncMap{
		"fn": func(value interface{}) string {
			switch e := value.(type) {
			case float32:
				return humanize.CommafWithDigits(float64(e), 1)
			case float64:
				return humanize.CommafWithDigits(e, 1)
			case int:
				return humanize.Comma(int64(e))
			case int64:
				return humanize.Comma(e)
			}
			return ""
		},
		"pct": func(value float64) string {
			return fmt.Sprintf("%.2f %%", value)
		},
		"dur": func(ms int64) string {
			return time.Duration(ms * int64(time.Millisecond)).Truncate(time.Second).String()
		},
		"reltime": func(unixSec float64) string {
			return humanize.Time(time.Unix(int64(unixSec), 0))
		},
	}
)
