package uploader

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/any-hub/cacheup/internal/remote"
)

// Kind 是单个条目的最终状态；每个条目只会落到其中一种。
type Kind int

const (
	KindSkipped Kind = iota
	KindEmpty
	KindUploaded
	KindRejected
	KindInvalidJSON
	KindHTTPError
	KindFailed
)

var kindNames = [...]string{
	KindSkipped:     "skipped",
	KindEmpty:       "empty",
	KindUploaded:    "uploaded",
	KindRejected:    "rejected",
	KindInvalidJSON: "invalid_json",
	KindHTTPError:   "http_error",
	KindFailed:      "failed",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Status 返回报告行中的状态列：ok/skip/empty/fail/error。
func (k Kind) Status() string {
	switch k {
	case KindSkipped:
		return "skip"
	case KindEmpty:
		return "empty"
	case KindUploaded:
		return "ok"
	case KindRejected:
		return "fail"
	default:
		return "error"
	}
}

// Failed 报告该状态是否属于需要人工关注的失败。
func (k Kind) Failed() bool {
	switch k {
	case KindRejected, KindInvalidJSON, KindHTTPError, KindFailed:
		return true
	default:
		return false
	}
}

// Outcome 描述一个条目的处理结果。Bytes/Reply/Err 只在对应 Kind 下有意义。
type Outcome struct {
	Kind  Kind
	Key   string
	Bytes int
	Reply *remote.Reply
	Err   error
}

var bytePrinter = message.NewPrinter(language.English)

// Detail 返回报告行末尾的说明文字，skip/empty 没有说明。
func (o Outcome) Detail() string {
	switch o.Kind {
	case KindUploaded:
		return bytePrinter.Sprintf("(%d bytes)", o.Bytes)
	case KindRejected:
		return "→ " + o.Reply.String()
	case KindInvalidJSON:
		return "bad JSON: " + errText(o.Err)
	case KindHTTPError, KindFailed:
		return errText(o.Err)
	default:
		return ""
	}
}

// Line 渲染一行报告，例如 "  ok    ./cache/foo/bar.json  (15 bytes)"。
func (o Outcome) Line() string {
	line := fmt.Sprintf("  %-5s %s", o.Kind.Status(), o.Key)
	if detail := o.Detail(); detail != "" {
		line += "  " + detail
	}
	return line
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
