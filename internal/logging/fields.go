package logging

import "github.com/sirupsen/logrus"

// BaseFields 构建 action + 配置路径等基础字段，便于不同入口复用。
func BaseFields(action, configPath string) logrus.Fields {
	return logrus.Fields{
		"action":     action,
		"configPath": configPath,
	}
}

// EntryFields 提供单个缓存条目的日志字段，run_id 用于串联同一次上传。
func EntryFields(runID, key, status string) logrus.Fields {
	return logrus.Fields{
		"action": "upload_entry",
		"run_id": runID,
		"key":    key,
		"status": status,
	}
}
