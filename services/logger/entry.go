package logsvc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/trezcool/coachdesk/core/coach"
	"github.com/trezcool/coachdesk/core/paymethod"
)

const redacted = "[redacted]"

// Values logged under a key containing one of these are never written out.
var sensitiveKeys = []string{"api_key", "apikey", "secret", "token", "password"}

// entry is one log call broken down into what Rollbar understands.
//
// args are read as: coach.Coach (reported as the person), error, map[string]interface{} (fields),
// string key followed by its value, or anything else (kept positionally).
type entry struct {
	msg    string
	err    error
	coach  *coach.Coach
	fields map[string]interface{}
	extra  []interface{}
}

func newEntry(msg string, args []interface{}) entry {
	e := entry{msg: msg, fields: make(map[string]interface{})}
	for i := 0; i < len(args); i++ {
		switch arg := args[i].(type) {
		case coach.Coach:
			e.setCoach(arg)
		case *coach.Coach:
			if arg != nil {
				e.setCoach(*arg)
			}
		case error:
			e.addError("", arg)
		case map[string]interface{}:
			for k, v := range arg {
				e.addField(k, v)
			}
		case string:
			if i+1 < len(args) {
				e.addField(arg, args[i+1])
				i++
				continue
			}
			e.extra = append(e.extra, arg)
		default:
			e.extra = append(e.extra, safeValue(arg))
		}
	}
	return e
}

// only the first coach is reported
func (e *entry) setCoach(c coach.Coach) {
	if e.coach == nil {
		e.coach = &c
	}
}

func (e *entry) addError(key string, err error) {
	if e.err == nil {
		e.err = err
		return
	}
	if key == "" {
		key = fmt.Sprintf("error_%d", len(e.fields))
	}
	e.fields[key] = err.Error()
}

func (e *entry) addField(key string, v interface{}) {
	if isSensitive(key) {
		e.fields[key] = redacted
		return
	}
	if err, ok := v.(error); ok {
		e.addError(key, err)
		return
	}
	e.fields[key] = safeValue(v)
}

// rollbarArgs returns the message, extras and error in the forms rollbar.Log accepts.
func (e entry) rollbarArgs() []interface{} {
	args := []interface{}{e.msg}
	extras := make(map[string]interface{}, len(e.fields)+1)
	for k, v := range e.fields {
		extras[k] = v
	}
	if len(e.extra) > 0 {
		extras["args"] = e.extra
	}
	if len(extras) > 0 {
		args = append(args, extras)
	}
	if e.err != nil {
		args = append(args, e.err)
	}
	return args
}

// String renders the entry on one line: msg key=value... error="..." extra...
func (e entry) String() string {
	var b strings.Builder
	b.WriteString(e.msg)
	if e.coach != nil {
		fmt.Fprintf(&b, " coach=%d", e.coach.ID)
	}

	keys := make([]string, 0, len(e.fields))
	for k := range e.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%+v", k, e.fields[k])
	}

	if e.err != nil {
		fmt.Fprintf(&b, " error=%q", e.err.Error())
	}
	for _, v := range e.extra {
		fmt.Fprintf(&b, " %+v", v)
	}
	return b.String()
}

func isSensitive(key string) bool {
	key = strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(key, s) {
			return true
		}
	}
	return false
}

// safeValue swaps payment methods for their masked description.
func safeValue(v interface{}) interface{} {
	switch m := v.(type) {
	case paymethod.Method:
		return m.String()
	case *paymethod.Method:
		if m == nil {
			return nil
		}
		return m.String()
	case paymethod.SavePaymentMethod:
		return fmt.Sprintf("payment method #%d (%s/%s)", m.ID, m.MethodType, m.Provider)
	case *paymethod.SavePaymentMethod:
		if m == nil {
			return nil
		}
		return fmt.Sprintf("payment method #%d (%s/%s)", m.ID, m.MethodType, m.Provider)
	}
	return v
}
