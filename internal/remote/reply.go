package remote

import "github.com/tidwall/gjson"

// Reply 保存原始响应体，字段按需通过 gjson 读取。
type Reply struct {
	Raw []byte
}

// Result 返回 "result" 字段，不存在时 Exists() 为 false。
func (r *Reply) Result() gjson.Result {
	if r == nil {
		return gjson.Result{}
	}
	return gjson.GetBytes(r.Raw, "result")
}

// ErrorMessage 返回远端 "error" 字段，没有时为空串。
func (r *Reply) ErrorMessage() string {
	if r == nil {
		return ""
	}
	return gjson.GetBytes(r.Raw, "error").String()
}

// OK 仅在 result 为字符串 "OK" 时成立。
func (r *Reply) OK() bool {
	res := r.Result()
	return res.Type == gjson.String && res.Str == "OK"
}

func (r *Reply) String() string {
	if r == nil {
		return ""
	}
	return string(r.Raw)
}
