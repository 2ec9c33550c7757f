package uploader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Canonicalize 校验 raw 是单个 JSON 值并去掉无意义空白。对象键顺序保持原样。
func Canonicalize(raw string) (string, error) {
	var buf bytes.Buffer
	buf.Grow(len(raw))
	if err := json.Compact(&buf, []byte(raw)); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return "", fmt.Errorf("%s (offset %d)", syntaxErr.Error(), syntaxErr.Offset)
		}
		return "", err
	}
	return buf.String(), nil
}
